package types

import (
  "time"

  "github.com/google/uuid"
)

type Flashcard struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  StudyKitID          uuid.UUID                 `gorm:"index;not null" json:"studyKitId"`
  StudyKit            *StudyKit                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudyKitID;references:ID" json:"-"`

  FrontText           string                    `gorm:"type:text;not null;column:front_text" json:"frontText"`
  BackText            string                    `gorm:"type:text;not null;column:back_text" json:"backText"`

  CreatedAt           time.Time                 `gorm:"not null" json:"createdAt"`
}

func (Flashcard) TableName() string {
  return "flashcard"
}
