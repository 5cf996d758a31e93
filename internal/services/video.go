package services

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/normalization"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/types"
)

type VideoService interface {
  ListVideos(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) ([]*types.Video, error)
  GetVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error)
  UpdateVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, title *string, description *string) (*types.Video, error)
  DeleteVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) error

  LikeVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error)
  UnlikeVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error)

  AddComment(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, comment string) (*types.VideoComment, error)
  ListComments(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) ([]*types.VideoComment, error)
  UpdateComment(ctx context.Context, userID uuid.UUID, commentID uuid.UUID, comment string) (*types.VideoComment, error)
  DeleteComment(ctx context.Context, userID uuid.UUID, commentID uuid.UUID) error
}

type videoService struct {
  db           *gorm.DB
  log          *logger.Logger
  videoRepo    repos.VideoRepo
  studyKitRepo repos.StudyKitRepo
}

func NewVideoService(
  db *gorm.DB,
  log *logger.Logger,
  videoRepo repos.VideoRepo,
  studyKitRepo repos.StudyKitRepo,
) VideoService {
  serviceLog := log.With("service", "VideoService")
  return &videoService{
    db:           db,
    log:          serviceLog,
    videoRepo:    videoRepo,
    studyKitRepo: studyKitRepo,
  }
}

// fetchVideo resolves the video or a 404.
func (vs *videoService) fetchVideo(ctx context.Context, videoID uuid.UUID) (*types.Video, error) {
  video, err := vs.videoRepo.GetByID(ctx, nil, videoID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, errordata.NotFound("Video not found")
    }
    return nil, errordata.Internal("Failed to fetch video", err)
  }
  return video, nil
}

// accessibleVideo additionally requires the caller to own the kit the video
// lives under. Likes and comments skip this: any signed-in user can engage
// with a video they can reach.
func (vs *videoService) accessibleVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error) {
  video, err := vs.fetchVideo(ctx, videoID)
  if err != nil {
    return nil, err
  }
  kits, err := vs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{video.StudyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 {
    return nil, errordata.NotFound("Video not found")
  }
  if kits[0].UserID != userID {
    return nil, errordata.Forbidden("You do not have permission to access this video")
  }
  return video, nil
}

func (vs *videoService) ListVideos(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) ([]*types.Video, error) {
  vs.log.Info("Starting ListVideos now...", "studyKitID", studyKitID)

  kits, err := vs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 || kits[0].UserID != userID {
    return nil, errordata.NotFound("Study Kit not found or you do not have permission to access it")
  }
  videos, err := vs.videoRepo.GetByStudyKitIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch videos", err)
  }
  return videos, nil
}

func (vs *videoService) GetVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error) {
  vs.log.Info("Starting GetVideo now...", "videoID", videoID)
  return vs.accessibleVideo(ctx, userID, videoID)
}

func (vs *videoService) UpdateVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, title *string, description *string) (*types.Video, error) {
  vs.log.Info("Starting UpdateVideo now...", "videoID", videoID)

  video, err := vs.accessibleVideo(ctx, userID, videoID)
  if err != nil {
    return nil, err
  }
  if title != nil {
    cleaned := normalization.ParseInputString(*title)
    if cleaned == "" {
      return nil, errordata.BadRequest("Video title cannot be empty")
    }
    video.Title = cleaned
  }
  if description != nil {
    video.Description = normalization.ParseInputStringPtr(description)
  }
  updated, err := vs.videoRepo.Update(ctx, nil, video)
  if err != nil {
    return nil, errordata.Internal("Failed to update video", err)
  }
  vs.log.Info("UpdateVideo completed successfully :)", "videoID", videoID)
  return updated, nil
}

func (vs *videoService) DeleteVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) error {
  vs.log.Info("Starting DeleteVideo now...", "videoID", videoID)

  video, err := vs.accessibleVideo(ctx, userID, videoID)
  if err != nil {
    return err
  }
  err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return vs.videoRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{video.ID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete video", err)
  }
  vs.log.Info("DeleteVideo completed successfully :)", "videoID", videoID)
  return nil
}

func (vs *videoService) LikeVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error) {
  vs.log.Info("Starting LikeVideo now...", "videoID", videoID, "userID", userID)

  if _, err := vs.fetchVideo(ctx, videoID); err != nil {
    return nil, err
  }
  if err := vs.videoRepo.Like(ctx, nil, videoID, userID); err != nil {
    return nil, errordata.Internal("Failed to like video", err)
  }
  return vs.fetchVideo(ctx, videoID)
}

func (vs *videoService) UnlikeVideo(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) (*types.Video, error) {
  vs.log.Info("Starting UnlikeVideo now...", "videoID", videoID, "userID", userID)

  if _, err := vs.fetchVideo(ctx, videoID); err != nil {
    return nil, err
  }
  if err := vs.videoRepo.Unlike(ctx, nil, videoID, userID); err != nil {
    return nil, errordata.Internal("Failed to unlike video", err)
  }
  return vs.fetchVideo(ctx, videoID)
}

func (vs *videoService) AddComment(ctx context.Context, userID uuid.UUID, videoID uuid.UUID, comment string) (*types.VideoComment, error) {
  vs.log.Info("Starting AddComment now...", "videoID", videoID)

  comment = normalization.ParseInputString(comment)
  if comment == "" {
    return nil, errordata.BadRequest("Comment cannot be empty")
  }
  if _, err := vs.fetchVideo(ctx, videoID); err != nil {
    return nil, err
  }
  created, err := vs.videoRepo.CreateComment(ctx, nil, &types.VideoComment{
    VideoID: videoID,
    UserID:  userID,
    Comment: comment,
  })
  if err != nil {
    return nil, errordata.Internal("Failed to create comment", err)
  }
  vs.log.Info("AddComment completed successfully :)", "commentID", created.ID)
  return created, nil
}

func (vs *videoService) ListComments(ctx context.Context, userID uuid.UUID, videoID uuid.UUID) ([]*types.VideoComment, error) {
  vs.log.Info("Starting ListComments now...", "videoID", videoID)

  if _, err := vs.fetchVideo(ctx, videoID); err != nil {
    return nil, err
  }
  comments, err := vs.videoRepo.GetCommentsByVideoID(ctx, nil, videoID)
  if err != nil {
    return nil, errordata.Internal("Failed to fetch comments", err)
  }
  return comments, nil
}

func (vs *videoService) UpdateComment(ctx context.Context, userID uuid.UUID, commentID uuid.UUID, comment string) (*types.VideoComment, error) {
  vs.log.Info("Starting UpdateComment now...", "commentID", commentID)

  comment = normalization.ParseInputString(comment)
  if comment == "" {
    return nil, errordata.BadRequest("Comment cannot be empty")
  }
  existing, err := vs.videoRepo.GetCommentByID(ctx, nil, commentID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, errordata.NotFound("Comment not found")
    }
    return nil, errordata.Internal("Failed to fetch comment", err)
  }
  if existing.UserID != userID {
    return nil, errordata.Forbidden("You can only edit your own comments")
  }
  existing.Comment = comment
  updated, err := vs.videoRepo.UpdateComment(ctx, nil, existing)
  if err != nil {
    return nil, errordata.Internal("Failed to update comment", err)
  }
  vs.log.Info("UpdateComment completed successfully :)", "commentID", commentID)
  return updated, nil
}

func (vs *videoService) DeleteComment(ctx context.Context, userID uuid.UUID, commentID uuid.UUID) error {
  vs.log.Info("Starting DeleteComment now...", "commentID", commentID)

  comment, err := vs.videoRepo.GetCommentByID(ctx, nil, commentID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return errordata.NotFound("Comment not found")
    }
    return errordata.Internal("Failed to fetch comment", err)
  }
  if comment.UserID != userID {
    return errordata.Forbidden("You can only delete your own comments")
  }
  if err := vs.videoRepo.FullDeleteCommentByID(ctx, nil, commentID); err != nil {
    return errordata.Internal("Failed to delete comment", err)
  }
  vs.log.Info("DeleteComment completed successfully :)", "commentID", commentID)
  return nil
}
