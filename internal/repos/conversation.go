package repos

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type ConversationRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) (*types.Conversation, error)

    // READ
    GetByIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) ([]*types.Conversation, error)
    GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Conversation, error)
    GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Conversation, error)

    // UPDATE
    TouchLastUpdated(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, at time.Time) error

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) error
}

type conversationRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
    repoLog := baseLog.With("repo", "ConversationRepo")
    return &conversationRepo{db: db, log: repoLog}
}

func (cr *conversationRepo) Create(ctx context.Context, tx *gorm.DB, conversation *types.Conversation) (*types.Conversation, error) {
    cr.log.Info("Starting Create Conversation now...", "studyKitID", conversation.StudyKitID)

    transaction := tx
    if transaction == nil {
        transaction = cr.db
        cr.log.Debug("Transaction is nil, using cr.db", "db", transaction)
    }

    if conversation.ID == uuid.Nil {
        conversation.ID = uuid.New()
    }
    now := time.Now()
    if conversation.StartedAt.IsZero() {
        conversation.StartedAt = now
    }
    if conversation.LastUpdated.IsZero() {
        conversation.LastUpdated = now
    }
    if err := transaction.WithContext(ctx).Create(conversation).Error; err != nil {
        cr.log.Error("Failed to create conversation", "error", err)
        return nil, err
    }
    cr.log.Info("Successfully created conversation", "conversationID", conversation.ID)
    return conversation, nil
}

func (cr *conversationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) ([]*types.Conversation, error) {
    cr.log.Info("Starting GetByIDs for Conversations now...")

    transaction := tx
    if transaction == nil {
        transaction = cr.db
        cr.log.Debug("Transaction is nil, using cr.db", "db", transaction)
    }

    var results []*types.Conversation
    if len(conversationIDs) == 0 {
        cr.log.Debug("No conversationIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("id IN ?", conversationIDs).
        Find(&results).Error; err != nil {
        cr.log.Error("Failed to fetch conversations by IDs", "error", err)
        return nil, err
    }
    cr.log.Info("Successfully fetched conversations by IDs", "count", len(results))
    return results, nil
}

func (cr *conversationRepo) GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Conversation, error) {
    cr.log.Info("Starting GetByStudyKitIDs for Conversations now...")

    transaction := tx
    if transaction == nil {
        transaction = cr.db
        cr.log.Debug("Transaction is nil, using cr.db", "db", transaction)
    }

    var results []*types.Conversation
    if len(kitIDs) == 0 {
        cr.log.Debug("No kitIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("study_kit_id IN ?", kitIDs).
        Order("last_updated DESC").
        Find(&results).Error; err != nil {
        cr.log.Error("Failed to fetch conversations by kitIDs", "error", err)
        return nil, err
    }
    cr.log.Info("Successfully fetched conversations by kitIDs", "count", len(results))
    return results, nil
}

func (cr *conversationRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Conversation, error) {
    cr.log.Info("Starting GetByUserIDs for Conversations now...")

    transaction := tx
    if transaction == nil {
        transaction = cr.db
        cr.log.Debug("Transaction is nil, using cr.db", "db", transaction)
    }

    var results []*types.Conversation
    if len(userIDs) == 0 {
        cr.log.Debug("No userIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("user_id IN ?", userIDs).
        Order("last_updated DESC").
        Find(&results).Error; err != nil {
        cr.log.Error("Failed to fetch conversations by userIDs", "error", err)
        return nil, err
    }
    cr.log.Info("Successfully fetched conversations by userIDs", "count", len(results))
    return results, nil
}

func (cr *conversationRepo) TouchLastUpdated(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, at time.Time) error {
    cr.log.Info("Starting TouchLastUpdated for Conversation now...", "conversationID", conversationID)

    transaction := tx
    if transaction == nil {
        transaction = cr.db
        cr.log.Debug("Transaction is nil, using cr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Model(&types.Conversation{}).
        Where("id = ?", conversationID).
        Update("last_updated", at).Error; err != nil {
        cr.log.Error("Failed to touch conversation last updated", "error", err)
        return err
    }
    return nil
}

func (cr *conversationRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) error {
    cr.log.Info("Starting FullDeleteByIDs for Conversations now...")

    transaction := tx
    if transaction == nil {
        transaction = cr.db
        cr.log.Debug("Transaction is nil, using cr.db", "db", transaction)
    }

    if len(conversationIDs) == 0 {
        cr.log.Debug("No conversationIDs provided, nothing to delete")
        return nil
    }

    session := transaction.WithContext(ctx)
    if err := session.Where("conversation_id IN ?", conversationIDs).Delete(&types.ConversationMessage{}).Error; err != nil {
        cr.log.Error("Failed to hard delete conversation messages", "error", err)
        return err
    }
    if err := session.Where("id IN ?", conversationIDs).Delete(&types.Conversation{}).Error; err != nil {
        cr.log.Error("Failed to hard delete conversations", "error", err)
        return err
    }
    cr.log.Info("Successfully hard deleted conversations", "count", len(conversationIDs))
    return nil
}
