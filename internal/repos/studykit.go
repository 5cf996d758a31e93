package repos

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type StudyKitRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, kits []*types.StudyKit) ([]*types.StudyKit, error)

    // READ
    GetByIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.StudyKit, error)
    GetByGroupIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.StudyKit, error)
    GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.StudyKit, error)
    GetWithContentByID(ctx context.Context, tx *gorm.DB, kitID uuid.UUID) (*types.StudyKit, error)

    // UPDATE
    Update(ctx context.Context, tx *gorm.DB, kit *types.StudyKit) (*types.StudyKit, error)

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) error
}

type studyKitRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewStudyKitRepo(db *gorm.DB, baseLog *logger.Logger) StudyKitRepo {
    repoLog := baseLog.With("repo", "StudyKitRepo")
    return &studyKitRepo{db: db, log: repoLog}
}

func (skr *studyKitRepo) Create(ctx context.Context, tx *gorm.DB, kits []*types.StudyKit) ([]*types.StudyKit, error) {
    skr.log.Info("Starting Create StudyKits now...")

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    if len(kits) == 0 {
        skr.log.Debug("Kits array is empty, returning empty slice")
        return []*types.StudyKit{}, nil
    }

    for _, k := range kits {
        if k.ID == uuid.Nil {
            k.ID = uuid.New()
        }
    }
    if err := transaction.WithContext(ctx).Create(&kits).Error; err != nil {
        skr.log.Error("Failed to create study kits", "error", err)
        return nil, err
    }
    skr.log.Info("Successfully created study kits", "count", len(kits))
    return kits, nil
}

func (skr *studyKitRepo) GetByIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.StudyKit, error) {
    skr.log.Info("Starting GetByIDs for StudyKits now...")

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    var results []*types.StudyKit
    if len(kitIDs) == 0 {
        skr.log.Debug("No kitIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("id IN ?", kitIDs).
        Find(&results).Error; err != nil {
        skr.log.Error("Failed to fetch study kits by IDs", "error", err)
        return nil, err
    }
    skr.log.Info("Successfully fetched study kits by IDs", "count", len(results))
    return results, nil
}

func (skr *studyKitRepo) GetByGroupIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.StudyKit, error) {
    skr.log.Info("Starting GetByGroupIDs for StudyKits now...")

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    var results []*types.StudyKit
    if len(groupIDs) == 0 {
        skr.log.Debug("No groupIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("group_id IN ?", groupIDs).
        Order("created_at ASC").
        Find(&results).Error; err != nil {
        skr.log.Error("Failed to fetch study kits by groupIDs", "error", err)
        return nil, err
    }
    skr.log.Info("Successfully fetched study kits by groupIDs", "count", len(results))
    return results, nil
}

func (skr *studyKitRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.StudyKit, error) {
    skr.log.Info("Starting GetByUserIDs for StudyKits now...")

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    var results []*types.StudyKit
    if len(userIDs) == 0 {
        skr.log.Debug("No userIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("user_id IN ?", userIDs).
        Order("created_at ASC").
        Find(&results).Error; err != nil {
        skr.log.Error("Failed to fetch study kits by userIDs", "error", err)
        return nil, err
    }
    skr.log.Info("Successfully fetched study kits by userIDs", "count", len(results))
    return results, nil
}

func (skr *studyKitRepo) GetWithContentByID(ctx context.Context, tx *gorm.DB, kitID uuid.UUID) (*types.StudyKit, error) {
    skr.log.Info("Starting GetWithContentByID for StudyKit now...", "kitID", kitID)

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    var result types.StudyKit
    if err := transaction.WithContext(ctx).
        Preload("Quizzes").
        Preload("Quizzes.Questions").
        Preload("Quizzes.Questions.Answers").
        Preload("Flashcards").
        Preload("Videos").
        Where("id = ?", kitID).
        First(&result).Error; err != nil {
        skr.log.Error("Failed to fetch study kit with content", "error", err)
        return nil, err
    }
    skr.log.Info("Successfully fetched study kit with content", "kitID", kitID)
    return &result, nil
}

func (skr *studyKitRepo) Update(ctx context.Context, tx *gorm.DB, kit *types.StudyKit) (*types.StudyKit, error) {
    skr.log.Info("Starting Update StudyKit now...", "kitID", kit.ID)

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Save(kit).Error; err != nil {
        skr.log.Error("Failed to update study kit", "error", err)
        return nil, err
    }
    skr.log.Info("Successfully updated study kit", "kitID", kit.ID)
    return kit, nil
}

// FullDeleteByIDs removes the kits and every row owned by them, children
// first. Postgres would cascade on its own, the ordering here keeps the
// behavior identical on stores without FK enforcement.
func (skr *studyKitRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) error {
    skr.log.Info("Starting FullDeleteByIDs for StudyKits now...")

    transaction := tx
    if transaction == nil {
        transaction = skr.db
        skr.log.Debug("Transaction is nil, using skr.db", "db", transaction)
    }

    if len(kitIDs) == 0 {
        skr.log.Debug("No kitIDs provided, nothing to delete")
        return nil
    }

    session := transaction.WithContext(ctx)

    quizIDs := session.Model(&types.Quiz{}).Select("id").Where("study_kit_id IN ?", kitIDs)
    questionIDs := session.Model(&types.QuizQuestion{}).Select("id").Where("quiz_id IN (?)", quizIDs)
    if err := session.Where("question_id IN (?)", questionIDs).Delete(&types.QuizAnswer{}).Error; err != nil {
        skr.log.Error("Failed to hard delete quiz answers for study kits", "error", err)
        return err
    }
    if err := session.Where("quiz_id IN (?)", quizIDs).Delete(&types.QuizQuestion{}).Error; err != nil {
        skr.log.Error("Failed to hard delete quiz questions for study kits", "error", err)
        return err
    }
    if err := session.Where("study_kit_id IN ?", kitIDs).Delete(&types.Quiz{}).Error; err != nil {
        skr.log.Error("Failed to hard delete quizzes for study kits", "error", err)
        return err
    }

    if err := session.Where("study_kit_id IN ?", kitIDs).Delete(&types.Flashcard{}).Error; err != nil {
        skr.log.Error("Failed to hard delete flashcards for study kits", "error", err)
        return err
    }

    videoIDs := session.Model(&types.Video{}).Select("id").Where("study_kit_id IN ?", kitIDs)
    if err := session.Where("video_id IN (?)", videoIDs).Delete(&types.VideoLike{}).Error; err != nil {
        skr.log.Error("Failed to hard delete video likes for study kits", "error", err)
        return err
    }
    if err := session.Where("video_id IN (?)", videoIDs).Delete(&types.VideoComment{}).Error; err != nil {
        skr.log.Error("Failed to hard delete video comments for study kits", "error", err)
        return err
    }
    if err := session.Where("study_kit_id IN ?", kitIDs).Delete(&types.Video{}).Error; err != nil {
        skr.log.Error("Failed to hard delete videos for study kits", "error", err)
        return err
    }

    conversationIDs := session.Model(&types.Conversation{}).Select("id").Where("study_kit_id IN ?", kitIDs)
    if err := session.Where("conversation_id IN (?)", conversationIDs).Delete(&types.ConversationMessage{}).Error; err != nil {
        skr.log.Error("Failed to hard delete conversation messages for study kits", "error", err)
        return err
    }
    if err := session.Where("study_kit_id IN ?", kitIDs).Delete(&types.Conversation{}).Error; err != nil {
        skr.log.Error("Failed to hard delete conversations for study kits", "error", err)
        return err
    }

    if err := session.Where("id IN ?", kitIDs).Delete(&types.StudyKit{}).Error; err != nil {
        skr.log.Error("Failed to hard delete study kits", "error", err)
        return err
    }
    skr.log.Info("Successfully hard deleted study kits", "count", len(kitIDs))
    return nil
}
