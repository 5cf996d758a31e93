package types

import (
  "time"

  "github.com/google/uuid"
)

type User struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  Name                string                    `gorm:"not null;column:name" json:"name"`
  Email               string                    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password            string                    `gorm:"not null;column:password" json:"-"`
  EmailVerified       bool                      `gorm:"not null;default:false;column:email_verified" json:"emailVerified"`
  Bio                 *string                   `gorm:"column:bio" json:"bio,omitempty"`
  ImageURL            *string                   `gorm:"column:image_url" json:"imageUrl,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null" json:"createdAt"`
  UpdatedAt           time.Time                 `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
  return "user"
}
