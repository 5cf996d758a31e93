package repos

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type OneTimeCodeRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, code *types.OneTimeCode) (*types.OneTimeCode, error)

    // READ
    GetActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, purpose string, code string) (*types.OneTimeCode, error)

    // FULL (HARD) DELETE
    FullDeleteByUserAndPurpose(ctx context.Context, tx *gorm.DB, userID uuid.UUID, purpose string) error
    FullDeleteExpired(ctx context.Context, tx *gorm.DB) error
}

type oneTimeCodeRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewOneTimeCodeRepo(db *gorm.DB, baseLog *logger.Logger) OneTimeCodeRepo {
    repoLog := baseLog.With("repo", "OneTimeCodeRepo")
    return &oneTimeCodeRepo{db: db, log: repoLog}
}

func (ocr *oneTimeCodeRepo) Create(ctx context.Context, tx *gorm.DB, code *types.OneTimeCode) (*types.OneTimeCode, error) {
    ocr.log.Info("Starting Create OneTimeCode now...", "userID", code.UserID, "purpose", code.Purpose)

    transaction := tx
    if transaction == nil {
        transaction = ocr.db
        ocr.log.Debug("Transaction is nil, using ocr.db", "db", transaction)
    }

    if code.ID == uuid.Nil {
        code.ID = uuid.New()
    }
    if err := transaction.WithContext(ctx).Create(code).Error; err != nil {
        ocr.log.Error("Failed to create one time code", "error", err)
        return nil, err
    }
    ocr.log.Info("Successfully created one time code", "userID", code.UserID)
    return code, nil
}

func (ocr *oneTimeCodeRepo) GetActive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, purpose string, code string) (*types.OneTimeCode, error) {
    ocr.log.Info("Starting GetActive for OneTimeCode now...", "userID", userID, "purpose", purpose)

    transaction := tx
    if transaction == nil {
        transaction = ocr.db
        ocr.log.Debug("Transaction is nil, using ocr.db", "db", transaction)
    }

    var result types.OneTimeCode
    if err := transaction.WithContext(ctx).
        Where("user_id = ? AND purpose = ? AND code = ? AND expires_at > ?", userID, purpose, code, time.Now()).
        First(&result).Error; err != nil {
        ocr.log.Error("Failed to fetch active one time code", "error", err)
        return nil, err
    }
    return &result, nil
}

func (ocr *oneTimeCodeRepo) FullDeleteByUserAndPurpose(ctx context.Context, tx *gorm.DB, userID uuid.UUID, purpose string) error {
    ocr.log.Info("Starting FullDeleteByUserAndPurpose for OneTimeCodes now...", "userID", userID, "purpose", purpose)

    transaction := tx
    if transaction == nil {
        transaction = ocr.db
        ocr.log.Debug("Transaction is nil, using ocr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Where("user_id = ? AND purpose = ?", userID, purpose).
        Delete(&types.OneTimeCode{}).Error; err != nil {
        ocr.log.Error("Failed to hard delete one time codes", "error", err)
        return err
    }
    ocr.log.Info("Successfully hard deleted one time codes")
    return nil
}

func (ocr *oneTimeCodeRepo) FullDeleteExpired(ctx context.Context, tx *gorm.DB) error {
    ocr.log.Info("Starting FullDeleteExpired for OneTimeCodes now...")

    transaction := tx
    if transaction == nil {
        transaction = ocr.db
        ocr.log.Debug("Transaction is nil, using ocr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Where("expires_at < ?", time.Now()).
        Delete(&types.OneTimeCode{}).Error; err != nil {
        ocr.log.Error("Failed to hard delete expired one time codes", "error", err)
        return err
    }
    ocr.log.Info("Successfully hard deleted expired one time codes")
    return nil
}
