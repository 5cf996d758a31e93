package repos

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type ConversationMessageRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, message *types.ConversationMessage) (*types.ConversationMessage, error)
    // AppendExchange durably writes a user message and the assistant reply
    // as one operation, bumping the conversation's last_updated alongside.
    // Either both messages land or neither does.
    AppendExchange(ctx context.Context, tx *gorm.DB, userMessage *types.ConversationMessage, assistantMessage *types.ConversationMessage) error

    // READ
    GetByConversationID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]*types.ConversationMessage, error)
    GetRecentByConversationID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, limit int) ([]*types.ConversationMessage, error)

    // FULL (HARD) DELETE
    FullDeleteByConversationIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) error
}

type conversationMessageRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewConversationMessageRepo(db *gorm.DB, baseLog *logger.Logger) ConversationMessageRepo {
    repoLog := baseLog.With("repo", "ConversationMessageRepo")
    return &conversationMessageRepo{db: db, log: repoLog}
}

func (cmr *conversationMessageRepo) Create(ctx context.Context, tx *gorm.DB, message *types.ConversationMessage) (*types.ConversationMessage, error) {
    cmr.log.Info("Starting Create ConversationMessage now...", "conversationID", message.ConversationID, "speaker", message.Speaker)

    transaction := tx
    if transaction == nil {
        transaction = cmr.db
        cmr.log.Debug("Transaction is nil, using cmr.db", "db", transaction)
    }

    if message.ID == uuid.Nil {
        message.ID = uuid.New()
    }
    if message.Timestamp.IsZero() {
        message.Timestamp = time.Now()
    }
    if err := transaction.WithContext(ctx).Create(message).Error; err != nil {
        cmr.log.Error("Failed to create conversation message", "error", err)
        return nil, err
    }
    cmr.log.Info("Successfully created conversation message", "messageID", message.ID)
    return message, nil
}

func (cmr *conversationMessageRepo) AppendExchange(ctx context.Context, tx *gorm.DB, userMessage *types.ConversationMessage, assistantMessage *types.ConversationMessage) error {
    cmr.log.Info("Starting AppendExchange for ConversationMessages now...", "conversationID", userMessage.ConversationID)

    run := func(transaction *gorm.DB) error {
        now := time.Now()
        if userMessage.ID == uuid.Nil {
            userMessage.ID = uuid.New()
        }
        if userMessage.Timestamp.IsZero() {
            userMessage.Timestamp = now
        }
        if assistantMessage.ID == uuid.Nil {
            assistantMessage.ID = uuid.New()
        }
        if assistantMessage.Timestamp.IsZero() {
            // The reply sorts strictly after the user turn.
            assistantMessage.Timestamp = userMessage.Timestamp.Add(time.Millisecond)
        }
        if err := transaction.WithContext(ctx).Create(userMessage).Error; err != nil {
            cmr.log.Error("Failed to create user message in exchange", "error", err)
            return err
        }
        if err := transaction.WithContext(ctx).Create(assistantMessage).Error; err != nil {
            cmr.log.Error("Failed to create assistant message in exchange", "error", err)
            return err
        }
        if err := transaction.WithContext(ctx).
            Model(&types.Conversation{}).
            Where("id = ?", userMessage.ConversationID).
            Update("last_updated", assistantMessage.Timestamp).Error; err != nil {
            cmr.log.Error("Failed to bump conversation last updated in exchange", "error", err)
            return err
        }
        return nil
    }

    if tx != nil {
        return run(tx)
    }
    if err := cmr.db.WithContext(ctx).Transaction(run); err != nil {
        return err
    }
    cmr.log.Info("Successfully appended exchange", "conversationID", userMessage.ConversationID)
    return nil
}

func (cmr *conversationMessageRepo) GetByConversationID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) ([]*types.ConversationMessage, error) {
    cmr.log.Info("Starting GetByConversationID for ConversationMessages now...", "conversationID", conversationID)

    transaction := tx
    if transaction == nil {
        transaction = cmr.db
        cmr.log.Debug("Transaction is nil, using cmr.db", "db", transaction)
    }

    var results []*types.ConversationMessage
    if err := transaction.WithContext(ctx).
        Where("conversation_id = ?", conversationID).
        Order("timestamp ASC").
        Find(&results).Error; err != nil {
        cmr.log.Error("Failed to fetch conversation messages", "error", err)
        return nil, err
    }
    cmr.log.Info("Successfully fetched conversation messages", "count", len(results))
    return results, nil
}

// GetRecentByConversationID returns the most recent limit messages in
// chronological order.
func (cmr *conversationMessageRepo) GetRecentByConversationID(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, limit int) ([]*types.ConversationMessage, error) {
    cmr.log.Info("Starting GetRecentByConversationID for ConversationMessages now...", "conversationID", conversationID, "limit", limit)

    transaction := tx
    if transaction == nil {
        transaction = cmr.db
        cmr.log.Debug("Transaction is nil, using cmr.db", "db", transaction)
    }

    var recent []*types.ConversationMessage
    if err := transaction.WithContext(ctx).
        Where("conversation_id = ?", conversationID).
        Order("timestamp DESC").
        Limit(limit).
        Find(&recent).Error; err != nil {
        cmr.log.Error("Failed to fetch recent conversation messages", "error", err)
        return nil, err
    }

    // Flip newest-first into chronological order.
    results := make([]*types.ConversationMessage, len(recent))
    for i, m := range recent {
        results[len(recent)-1-i] = m
    }
    cmr.log.Info("Successfully fetched recent conversation messages", "count", len(results))
    return results, nil
}

func (cmr *conversationMessageRepo) FullDeleteByConversationIDs(ctx context.Context, tx *gorm.DB, conversationIDs []uuid.UUID) error {
    cmr.log.Info("Starting FullDeleteByConversationIDs for ConversationMessages now...")

    transaction := tx
    if transaction == nil {
        transaction = cmr.db
        cmr.log.Debug("Transaction is nil, using cmr.db", "db", transaction)
    }

    if len(conversationIDs) == 0 {
        cmr.log.Debug("No conversationIDs provided, nothing to delete")
        return nil
    }

    if err := transaction.WithContext(ctx).
        Where("conversation_id IN ?", conversationIDs).
        Delete(&types.ConversationMessage{}).Error; err != nil {
        cmr.log.Error("Failed to hard delete conversation messages", "error", err)
        return err
    }
    cmr.log.Info("Successfully hard deleted conversation messages")
    return nil
}
