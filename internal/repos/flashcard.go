package repos

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type FlashcardRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error)

    // READ
    GetByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) ([]*types.Flashcard, error)
    GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Flashcard, error)

    // UPDATE
    Update(ctx context.Context, tx *gorm.DB, card *types.Flashcard) (*types.Flashcard, error)

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) error
}

type flashcardRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewFlashcardRepo(db *gorm.DB, baseLog *logger.Logger) FlashcardRepo {
    repoLog := baseLog.With("repo", "FlashcardRepo")
    return &flashcardRepo{db: db, log: repoLog}
}

func (fr *flashcardRepo) Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error) {
    fr.log.Info("Starting Create Flashcards now...")

    transaction := tx
    if transaction == nil {
        transaction = fr.db
        fr.log.Debug("Transaction is nil, using fr.db", "db", transaction)
    }

    if len(cards) == 0 {
        fr.log.Debug("Cards array is empty, returning empty slice")
        return []*types.Flashcard{}, nil
    }

    for _, c := range cards {
        if c.ID == uuid.Nil {
            c.ID = uuid.New()
        }
    }
    if err := transaction.WithContext(ctx).Create(&cards).Error; err != nil {
        fr.log.Error("Failed to create flashcards", "error", err)
        return nil, err
    }
    fr.log.Info("Successfully created flashcards", "count", len(cards))
    return cards, nil
}

func (fr *flashcardRepo) GetByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) ([]*types.Flashcard, error) {
    fr.log.Info("Starting GetByIDs for Flashcards now...")

    transaction := tx
    if transaction == nil {
        transaction = fr.db
        fr.log.Debug("Transaction is nil, using fr.db", "db", transaction)
    }

    var results []*types.Flashcard
    if len(cardIDs) == 0 {
        fr.log.Debug("No cardIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("id IN ?", cardIDs).
        Find(&results).Error; err != nil {
        fr.log.Error("Failed to fetch flashcards by IDs", "error", err)
        return nil, err
    }
    fr.log.Info("Successfully fetched flashcards by IDs", "count", len(results))
    return results, nil
}

func (fr *flashcardRepo) GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Flashcard, error) {
    fr.log.Info("Starting GetByStudyKitIDs for Flashcards now...")

    transaction := tx
    if transaction == nil {
        transaction = fr.db
        fr.log.Debug("Transaction is nil, using fr.db", "db", transaction)
    }

    var results []*types.Flashcard
    if len(kitIDs) == 0 {
        fr.log.Debug("No kitIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("study_kit_id IN ?", kitIDs).
        Order("created_at ASC").
        Find(&results).Error; err != nil {
        fr.log.Error("Failed to fetch flashcards by kitIDs", "error", err)
        return nil, err
    }
    fr.log.Info("Successfully fetched flashcards by kitIDs", "count", len(results))
    return results, nil
}

func (fr *flashcardRepo) Update(ctx context.Context, tx *gorm.DB, card *types.Flashcard) (*types.Flashcard, error) {
    fr.log.Info("Starting Update Flashcard now...", "cardID", card.ID)

    transaction := tx
    if transaction == nil {
        transaction = fr.db
        fr.log.Debug("Transaction is nil, using fr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Save(card).Error; err != nil {
        fr.log.Error("Failed to update flashcard", "error", err)
        return nil, err
    }
    fr.log.Info("Successfully updated flashcard", "cardID", card.ID)
    return card, nil
}

func (fr *flashcardRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) error {
    fr.log.Info("Starting FullDeleteByIDs for Flashcards now...")

    transaction := tx
    if transaction == nil {
        transaction = fr.db
        fr.log.Debug("Transaction is nil, using fr.db", "db", transaction)
    }

    if len(cardIDs) == 0 {
        fr.log.Debug("No cardIDs provided, nothing to delete")
        return nil
    }

    if err := transaction.WithContext(ctx).
        Where("id IN ?", cardIDs).
        Delete(&types.Flashcard{}).Error; err != nil {
        fr.log.Error("Failed to hard delete flashcards", "error", err)
        return err
    }
    fr.log.Info("Successfully hard deleted flashcards", "count", len(cardIDs))
    return nil
}
