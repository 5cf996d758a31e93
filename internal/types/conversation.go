package types

import (
  "time"

  "github.com/google/uuid"
)

type Conversation struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  StudyKitID          uuid.UUID                 `gorm:"index;not null" json:"studyKitId"`
  StudyKit            *StudyKit                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudyKitID;references:ID" json:"studyKit,omitempty"`
  UserID              uuid.UUID                 `gorm:"index;not null" json:"userId"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  StartedAt           time.Time                 `gorm:"not null;column:started_at" json:"startedAt"`
  LastUpdated         time.Time                 `gorm:"not null;column:last_updated" json:"lastUpdated"`
}

func (Conversation) TableName() string {
  return "conversation"
}

// ConversationState is inferred from history, never stored. A conversation
// moves Empty -> AwaitingReply -> Idle; because the user message and the
// assistant reply are appended in one transaction, AwaitingReply is only
// observable when a history row was written by an older build or by hand.
type ConversationState string

const (
  ConversationStateEmpty          ConversationState = "empty"
  ConversationStateAwaitingReply  ConversationState = "awaiting_reply"
  ConversationStateIdle           ConversationState = "idle"
)

func StateOf(history []*ConversationMessage) ConversationState {
  if len(history) == 0 {
    return ConversationStateEmpty
  }
  last := history[len(history)-1]
  if last.Speaker == SpeakerUser {
    return ConversationStateAwaitingReply
  }
  return ConversationStateIdle
}
