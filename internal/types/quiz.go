package types

import (
  "time"

  "github.com/google/uuid"
)

type Quiz struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  StudyKitID          uuid.UUID                 `gorm:"index;not null" json:"studyKitId"`
  StudyKit            *StudyKit                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudyKitID;references:ID" json:"-"`

  Title               string                    `gorm:"not null;column:title" json:"title"`
  Description         *string                   `gorm:"column:description" json:"description,omitempty"`

  Questions           []QuizQuestion            `gorm:"foreignKey:QuizID" json:"questions,omitempty"`

  CreatedAt           time.Time                 `gorm:"not null" json:"createdAt"`
}

func (Quiz) TableName() string {
  return "quiz"
}

type QuizQuestion struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  QuizID              uuid.UUID                 `gorm:"index;not null" json:"quizId"`
  Quiz                *Quiz                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"-"`

  QuestionText        string                    `gorm:"type:text;not null;column:question_text" json:"questionText"`
  QuestionType        string                    `gorm:"not null;column:question_type" json:"questionType"`

  Answers             []QuizAnswer              `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (QuizQuestion) TableName() string {
  return "quiz_question"
}

type QuizAnswer struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  QuestionID          uuid.UUID                 `gorm:"index;not null" json:"questionId"`
  Question            *QuizQuestion             `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"-"`

  AnswerText          string                    `gorm:"type:text;not null;column:answer_text" json:"answerText"`
  IsCorrect           bool                      `gorm:"not null;default:false;column:is_correct" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
  return "quiz_answer"
}
