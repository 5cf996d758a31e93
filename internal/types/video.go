package types

import (
  "time"

  "github.com/google/uuid"
)

type Video struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  StudyKitID          uuid.UUID                 `gorm:"index;not null" json:"studyKitId"`
  StudyKit            *StudyKit                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudyKitID;references:ID" json:"-"`
  UserID              uuid.UUID                 `gorm:"index;not null" json:"userId"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  Title               string                    `gorm:"not null;column:title" json:"title"`
  Description         *string                   `gorm:"column:description" json:"description,omitempty"`
  URL                 string                    `gorm:"not null;column:url" json:"url"`
  ThumbnailURL        string                    `gorm:"column:thumbnail_url" json:"thumbnailUrl,omitempty"`
  DurationSeconds     float64                   `gorm:"column:duration_seconds" json:"durationSeconds,omitempty"`
  LikeCount           int                       `gorm:"not null;default:0;column:like_count" json:"likeCount"`

  Likes               []VideoLike               `gorm:"foreignKey:VideoID" json:"likes,omitempty"`
  Comments            []VideoComment            `gorm:"foreignKey:VideoID" json:"comments,omitempty"`

  UploadedAt          time.Time                 `gorm:"not null;column:uploaded_at" json:"uploadedAt"`
}

func (Video) TableName() string {
  return "video"
}

type VideoLike struct {
  VideoID             uuid.UUID                 `gorm:"type:uuid;primaryKey;uniqueIndex:idx_video_like_video_user" json:"videoId"`
  Video               *Video                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"-"`
  UserID              uuid.UUID                 `gorm:"type:uuid;primaryKey;uniqueIndex:idx_video_like_video_user" json:"userId"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  LikedAt             time.Time                 `gorm:"not null;column:liked_at" json:"likedAt"`
}

func (VideoLike) TableName() string {
  return "video_like"
}

type VideoComment struct {
  ID                  uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
  VideoID             uuid.UUID                 `gorm:"index;not null" json:"videoId"`
  Video               *Video                    `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"-"`
  UserID              uuid.UUID                 `gorm:"index;not null" json:"userId"`
  User                *User                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  Comment             string                    `gorm:"type:text;not null;column:comment" json:"comment"`

  CreatedAt           time.Time                 `gorm:"not null" json:"createdAt"`
}

func (VideoComment) TableName() string {
  return "video_comment"
}
