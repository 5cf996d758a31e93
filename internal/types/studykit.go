package types

import (
  "time"

  "github.com/google/uuid"
)

type StudyKit struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  GroupID             uuid.UUID                 `gorm:"index;not null" json:"groupId"`
  Group               *StudyKitGroup            `gorm:"constraint:OnDelete:CASCADE;foreignKey:GroupID;references:ID" json:"-"`
  UserID              uuid.UUID                 `gorm:"index;not null" json:"userId"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  Title               string                    `gorm:"not null;column:title" json:"title"`
  Description         *string                   `gorm:"column:description" json:"description,omitempty"`
  ImageURL            *string                   `gorm:"column:image_url" json:"imageUrl,omitempty"`
  CoverBucketKey      string                    `gorm:"column:cover_bucket_key" json:"-"`

  Quizzes             []Quiz                    `gorm:"foreignKey:StudyKitID" json:"quizzes,omitempty"`
  Flashcards          []Flashcard               `gorm:"foreignKey:StudyKitID" json:"flashcards,omitempty"`
  Videos              []Video                   `gorm:"foreignKey:StudyKitID" json:"videos,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null" json:"updatedAt"`
}

func (StudyKit) TableName() string {
  return "study_kit"
}
