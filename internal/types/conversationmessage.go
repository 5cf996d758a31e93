package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  SpeakerUser      = "user"
  SpeakerAssistant = "assistant"
)

type ConversationMessage struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  ConversationID      uuid.UUID                 `gorm:"index;not null" json:"conversationId"`
  Conversation        *Conversation             `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConversationID;references:ID" json:"-"`

  Speaker             string                    `gorm:"not null;column:speaker" json:"speaker"`
  MessageText         string                    `gorm:"type:text;not null;column:message_text" json:"messageText"`
  // Attachment holds inline-image metadata ({"mimeType": ..., "sizeBytes": ...})
  // for user messages sent with an image. The image bytes themselves are
  // never persisted.
  Attachment          datatypes.JSON            `gorm:"column:attachment" json:"attachment,omitempty"`

  Timestamp           time.Time                 `gorm:"not null;index;column:timestamp" json:"timestamp"`
}

func (ConversationMessage) TableName() string {
  return "conversation_message"
}
