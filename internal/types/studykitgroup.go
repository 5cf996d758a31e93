package types

import (
  "time"

  "github.com/google/uuid"
)

type StudyKitGroup struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  UserID              uuid.UUID                 `gorm:"index;not null" json:"userId"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  Name                string                    `gorm:"not null;column:name" json:"name"`
  Description         *string                   `gorm:"column:description" json:"description,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null" json:"updatedAt"`
}

func (StudyKitGroup) TableName() string {
  return "study_kit_group"
}
