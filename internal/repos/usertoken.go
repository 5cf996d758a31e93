package repos

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type UserTokenRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error)

    // READ
    GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error)
    GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error)

    // FULL (HARD) DELETE
    FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
    FullDeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error
    FullDeleteExpired(ctx context.Context, tx *gorm.DB) error
}

type userTokenRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
    repoLog := baseLog.With("repo", "UserTokenRepo")
    return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error) {
    utr.log.Info("Starting Create UserToken now...", "userID", token.UserID)

    transaction := tx
    if transaction == nil {
        transaction = utr.db
        utr.log.Debug("Transaction is nil, using utr.db", "db", transaction)
    }

    if token.ID == uuid.Nil {
        token.ID = uuid.New()
    }
    if err := transaction.WithContext(ctx).Create(token).Error; err != nil {
        utr.log.Error("Failed to create user token", "error", err)
        return nil, err
    }
    utr.log.Info("Successfully created user token", "userID", token.UserID)
    return token, nil
}

func (utr *userTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error) {
    utr.log.Info("Starting GetByAccessToken now...")

    transaction := tx
    if transaction == nil {
        transaction = utr.db
        utr.log.Debug("Transaction is nil, using utr.db", "db", transaction)
    }

    var result types.UserToken
    if err := transaction.WithContext(ctx).
        Where("access_token = ?", accessToken).
        First(&result).Error; err != nil {
        utr.log.Error("Failed to fetch user token by access token", "error", err)
        return nil, err
    }
    return &result, nil
}

func (utr *userTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
    utr.log.Info("Starting GetByRefreshToken now...")

    transaction := tx
    if transaction == nil {
        transaction = utr.db
        utr.log.Debug("Transaction is nil, using utr.db", "db", transaction)
    }

    var result types.UserToken
    if err := transaction.WithContext(ctx).
        Where("refresh_token = ?", refreshToken).
        First(&result).Error; err != nil {
        utr.log.Error("Failed to fetch user token by refresh token", "error", err)
        return nil, err
    }
    return &result, nil
}

func (utr *userTokenRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
    utr.log.Info("Starting FullDeleteByUserIDs for UserTokens now...")

    transaction := tx
    if transaction == nil {
        transaction = utr.db
        utr.log.Debug("Transaction is nil, using utr.db", "db", transaction)
    }

    if len(userIDs) == 0 {
        utr.log.Debug("No userIDs provided, nothing to delete")
        return nil
    }

    if err := transaction.WithContext(ctx).
        Where("user_id IN ?", userIDs).
        Delete(&types.UserToken{}).Error; err != nil {
        utr.log.Error("Failed to hard delete user tokens by userIDs", "error", err)
        return err
    }
    utr.log.Info("Successfully hard deleted user tokens", "count", len(userIDs))
    return nil
}

func (utr *userTokenRepo) FullDeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error {
    utr.log.Info("Starting FullDeleteByAccessToken now...")

    transaction := tx
    if transaction == nil {
        transaction = utr.db
        utr.log.Debug("Transaction is nil, using utr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Where("access_token = ?", accessToken).
        Delete(&types.UserToken{}).Error; err != nil {
        utr.log.Error("Failed to hard delete user token by access token", "error", err)
        return err
    }
    utr.log.Info("Successfully hard deleted user token")
    return nil
}

func (utr *userTokenRepo) FullDeleteExpired(ctx context.Context, tx *gorm.DB) error {
    utr.log.Info("Starting FullDeleteExpired for UserTokens now...")

    transaction := tx
    if transaction == nil {
        transaction = utr.db
        utr.log.Debug("Transaction is nil, using utr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).
        Where("expires_at < ?", time.Now()).
        Delete(&types.UserToken{}).Error; err != nil {
        utr.log.Error("Failed to hard delete expired user tokens", "error", err)
        return err
    }
    utr.log.Info("Successfully hard deleted expired user tokens")
    return nil
}
