package repos

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type VideoRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error)

    // READ
    GetByID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.Video, error)
    GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Video, error)

    // UPDATE
    Update(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error)

    // LIKES
    // Like records a user's like and bumps the counter. Liking a video the
    // user already likes is a no-op; the count never moves twice for one
    // user. Unlike is the mirror image and absorbs missing likes.
    Like(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, userID uuid.UUID) error
    Unlike(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, userID uuid.UUID) error

    // COMMENTS
    CreateComment(ctx context.Context, tx *gorm.DB, comment *types.VideoComment) (*types.VideoComment, error)
    GetCommentsByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) ([]*types.VideoComment, error)
    GetCommentByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.VideoComment, error)
    UpdateComment(ctx context.Context, tx *gorm.DB, comment *types.VideoComment) (*types.VideoComment, error)
    FullDeleteCommentByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) error

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error
}

type videoRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
    repoLog := baseLog.With("repo", "VideoRepo")
    return &videoRepo{db: db, log: repoLog}
}

func (vr *videoRepo) Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error) {
    vr.log.Info("Starting Create Video now...", "studyKitID", video.StudyKitID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    if video.ID == uuid.Nil {
        video.ID = uuid.New()
    }
    if video.UploadedAt.IsZero() {
        video.UploadedAt = time.Now()
    }
    if err := transaction.WithContext(ctx).Create(video).Error; err != nil {
        vr.log.Error("Failed to create video", "error", err)
        return nil, err
    }
    vr.log.Info("Successfully created video", "videoID", video.ID)
    return video, nil
}

func (vr *videoRepo) GetByID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) (*types.Video, error) {
    vr.log.Info("Starting GetByID for Video now...", "videoID", videoID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    var result types.Video
    if err := transaction.WithContext(ctx).
        Where("id = ?", videoID).
        First(&result).Error; err != nil {
        vr.log.Error("Failed to fetch video by ID", "error", err)
        return nil, err
    }
    return &result, nil
}

func (vr *videoRepo) GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Video, error) {
    vr.log.Info("Starting GetByStudyKitIDs for Videos now...")

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    var results []*types.Video
    if len(kitIDs) == 0 {
        vr.log.Debug("No kitIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("study_kit_id IN ?", kitIDs).
        Order("uploaded_at ASC").
        Find(&results).Error; err != nil {
        vr.log.Error("Failed to fetch videos by kitIDs", "error", err)
        return nil, err
    }
    vr.log.Info("Successfully fetched videos by kitIDs", "count", len(results))
    return results, nil
}

func (vr *videoRepo) Update(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error) {
    vr.log.Info("Starting Update Video now...", "videoID", video.ID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Omit("Likes", "Comments").
        Save(video).Error; err != nil {
        vr.log.Error("Failed to update video", "error", err)
        return nil, err
    }
    vr.log.Info("Successfully updated video", "videoID", video.ID)
    return video, nil
}

func (vr *videoRepo) Like(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, userID uuid.UUID) error {
    vr.log.Info("Starting Like for Video now...", "videoID", videoID, "userID", userID)

    run := func(transaction *gorm.DB) error {
        var count int64
        if err := transaction.WithContext(ctx).
            Model(&types.VideoLike{}).
            Where("video_id = ? AND user_id = ?", videoID, userID).
            Count(&count).Error; err != nil {
            vr.log.Error("Failed to check for existing like", "error", err)
            return err
        }
        if count > 0 {
            vr.log.Debug("User already likes this video, nothing to do", "videoID", videoID, "userID", userID)
            return nil
        }
        like := &types.VideoLike{VideoID: videoID, UserID: userID, LikedAt: time.Now()}
        if err := transaction.WithContext(ctx).Create(like).Error; err != nil {
            // A concurrent like can land between the check and the insert;
            // the unique index makes the second writer a no-op.
            if isDuplicateKeyError(err) {
                vr.log.Debug("Duplicate like absorbed", "videoID", videoID, "userID", userID)
                return nil
            }
            vr.log.Error("Failed to create like", "error", err)
            return err
        }
        if err := transaction.WithContext(ctx).
            Model(&types.Video{}).
            Where("id = ?", videoID).
            Update("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
            vr.log.Error("Failed to increment like count", "error", err)
            return err
        }
        return nil
    }

    if tx != nil {
        return run(tx)
    }
    if err := vr.db.WithContext(ctx).Transaction(run); err != nil {
        return err
    }
    vr.log.Info("Successfully liked video", "videoID", videoID, "userID", userID)
    return nil
}

func (vr *videoRepo) Unlike(ctx context.Context, tx *gorm.DB, videoID uuid.UUID, userID uuid.UUID) error {
    vr.log.Info("Starting Unlike for Video now...", "videoID", videoID, "userID", userID)

    run := func(transaction *gorm.DB) error {
        result := transaction.WithContext(ctx).
            Where("video_id = ? AND user_id = ?", videoID, userID).
            Delete(&types.VideoLike{})
        if result.Error != nil {
            vr.log.Error("Failed to delete like", "error", result.Error)
            return result.Error
        }
        if result.RowsAffected == 0 {
            vr.log.Debug("No like to remove, nothing to do", "videoID", videoID, "userID", userID)
            return nil
        }
        if err := transaction.WithContext(ctx).
            Model(&types.Video{}).
            Where("id = ?", videoID).
            Update("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
            vr.log.Error("Failed to decrement like count", "error", err)
            return err
        }
        return nil
    }

    if tx != nil {
        return run(tx)
    }
    if err := vr.db.WithContext(ctx).Transaction(run); err != nil {
        return err
    }
    vr.log.Info("Successfully unliked video", "videoID", videoID, "userID", userID)
    return nil
}

func (vr *videoRepo) CreateComment(ctx context.Context, tx *gorm.DB, comment *types.VideoComment) (*types.VideoComment, error) {
    vr.log.Info("Starting CreateComment for Video now...", "videoID", comment.VideoID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    if comment.ID == uuid.Nil {
        comment.ID = uuid.New()
    }
    if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
        vr.log.Error("Failed to create video comment", "error", err)
        return nil, err
    }
    vr.log.Info("Successfully created video comment", "commentID", comment.ID)
    return comment, nil
}

func (vr *videoRepo) GetCommentsByVideoID(ctx context.Context, tx *gorm.DB, videoID uuid.UUID) ([]*types.VideoComment, error) {
    vr.log.Info("Starting GetCommentsByVideoID for Video now...", "videoID", videoID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    var results []*types.VideoComment
    if err := transaction.WithContext(ctx).
        Where("video_id = ?", videoID).
        Order("created_at ASC").
        Find(&results).Error; err != nil {
        vr.log.Error("Failed to fetch video comments", "error", err)
        return nil, err
    }
    vr.log.Info("Successfully fetched video comments", "count", len(results))
    return results, nil
}

func (vr *videoRepo) GetCommentByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (*types.VideoComment, error) {
    vr.log.Info("Starting GetCommentByID for Video now...", "commentID", commentID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    var result types.VideoComment
    if err := transaction.WithContext(ctx).
        Where("id = ?", commentID).
        First(&result).Error; err != nil {
        vr.log.Error("Failed to fetch video comment by ID", "error", err)
        return nil, err
    }
    return &result, nil
}

func (vr *videoRepo) UpdateComment(ctx context.Context, tx *gorm.DB, comment *types.VideoComment) (*types.VideoComment, error) {
    vr.log.Info("Starting UpdateComment for Video now...", "commentID", comment.ID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Save(comment).Error; err != nil {
        vr.log.Error("Failed to update video comment", "error", err)
        return nil, err
    }
    vr.log.Info("Successfully updated video comment", "commentID", comment.ID)
    return comment, nil
}

func (vr *videoRepo) FullDeleteCommentByID(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) error {
    vr.log.Info("Starting FullDeleteCommentByID for Video now...", "commentID", commentID)

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Where("id = ?", commentID).
        Delete(&types.VideoComment{}).Error; err != nil {
        vr.log.Error("Failed to hard delete video comment", "error", err)
        return err
    }
    vr.log.Info("Successfully hard deleted video comment", "commentID", commentID)
    return nil
}

func (vr *videoRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error {
    vr.log.Info("Starting FullDeleteByIDs for Videos now...")

    transaction := tx
    if transaction == nil {
        transaction = vr.db
        vr.log.Debug("Transaction is nil, using vr.db", "db", transaction)
    }

    if len(videoIDs) == 0 {
        vr.log.Debug("No videoIDs provided, nothing to delete")
        return nil
    }

    session := transaction.WithContext(ctx)
    if err := session.Where("video_id IN ?", videoIDs).Delete(&types.VideoLike{}).Error; err != nil {
        vr.log.Error("Failed to hard delete video likes", "error", err)
        return err
    }
    if err := session.Where("video_id IN ?", videoIDs).Delete(&types.VideoComment{}).Error; err != nil {
        vr.log.Error("Failed to hard delete video comments", "error", err)
        return err
    }
    if err := session.Where("id IN ?", videoIDs).Delete(&types.Video{}).Error; err != nil {
        vr.log.Error("Failed to hard delete videos", "error", err)
        return err
    }
    vr.log.Info("Successfully hard deleted videos", "count", len(videoIDs))
    return nil
}

func isDuplicateKeyError(err error) bool {
    if errors.Is(err, gorm.ErrDuplicatedKey) {
        return true
    }
    msg := err.Error()
    return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
