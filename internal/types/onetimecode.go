package types

import (
  "time"

  "github.com/google/uuid"
)

// OneTimeCode backs the email-verification flow. Codes are single-use and
// expire; consumed codes are deleted, not flagged.
type OneTimeCode struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey"`
  UserID              uuid.UUID                 `gorm:"index;not null"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`

  Code                string                    `gorm:"not null;column:code"`
  Purpose             string                    `gorm:"not null;column:purpose"`
  ExpiresAt           time.Time                 `gorm:"not null;column:expires_at"`

  CreatedAt           time.Time                 `gorm:"not null"`
}

func (OneTimeCode) TableName() string {
  return "one_time_code"
}
