package repos

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type StudyKitGroupRepo interface {
    // CREATE
    Create(ctx context.Context, tx *gorm.DB, groups []*types.StudyKitGroup) ([]*types.StudyKitGroup, error)

    // READ
    GetByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.StudyKitGroup, error)
    GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.StudyKitGroup, error)

    // UPDATE
    Update(ctx context.Context, tx *gorm.DB, group *types.StudyKitGroup) (*types.StudyKitGroup, error)

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) error
}

type studyKitGroupRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewStudyKitGroupRepo(db *gorm.DB, baseLog *logger.Logger) StudyKitGroupRepo {
    repoLog := baseLog.With("repo", "StudyKitGroupRepo")
    return &studyKitGroupRepo{db: db, log: repoLog}
}

func (sgr *studyKitGroupRepo) Create(ctx context.Context, tx *gorm.DB, groups []*types.StudyKitGroup) ([]*types.StudyKitGroup, error) {
    sgr.log.Info("Starting Create StudyKitGroups now...")

    transaction := tx
    if transaction == nil {
        transaction = sgr.db
        sgr.log.Debug("Transaction is nil, using sgr.db", "db", transaction)
    }

    if len(groups) == 0 {
        sgr.log.Debug("Groups array is empty, returning empty slice")
        return []*types.StudyKitGroup{}, nil
    }

    for _, g := range groups {
        if g.ID == uuid.Nil {
            g.ID = uuid.New()
        }
    }
    if err := transaction.WithContext(ctx).Create(&groups).Error; err != nil {
        sgr.log.Error("Failed to create study kit groups", "error", err)
        return nil, err
    }
    sgr.log.Info("Successfully created study kit groups", "count", len(groups))
    return groups, nil
}

func (sgr *studyKitGroupRepo) GetByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) ([]*types.StudyKitGroup, error) {
    sgr.log.Info("Starting GetByIDs for StudyKitGroups now...")

    transaction := tx
    if transaction == nil {
        transaction = sgr.db
        sgr.log.Debug("Transaction is nil, using sgr.db", "db", transaction)
    }

    var results []*types.StudyKitGroup
    if len(groupIDs) == 0 {
        sgr.log.Debug("No groupIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("id IN ?", groupIDs).
        Find(&results).Error; err != nil {
        sgr.log.Error("Failed to fetch study kit groups by IDs", "error", err)
        return nil, err
    }
    sgr.log.Info("Successfully fetched study kit groups by IDs", "count", len(results))
    return results, nil
}

func (sgr *studyKitGroupRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.StudyKitGroup, error) {
    sgr.log.Info("Starting GetByUserIDs for StudyKitGroups now...")

    transaction := tx
    if transaction == nil {
        transaction = sgr.db
        sgr.log.Debug("Transaction is nil, using sgr.db", "db", transaction)
    }

    var results []*types.StudyKitGroup
    if len(userIDs) == 0 {
        sgr.log.Debug("No userIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Where("user_id IN ?", userIDs).
        Order("created_at ASC").
        Find(&results).Error; err != nil {
        sgr.log.Error("Failed to fetch study kit groups by userIDs", "error", err)
        return nil, err
    }
    sgr.log.Info("Successfully fetched study kit groups by userIDs", "count", len(results))
    return results, nil
}

func (sgr *studyKitGroupRepo) Update(ctx context.Context, tx *gorm.DB, group *types.StudyKitGroup) (*types.StudyKitGroup, error) {
    sgr.log.Info("Starting Update StudyKitGroup now...", "groupID", group.ID)

    transaction := tx
    if transaction == nil {
        transaction = sgr.db
        sgr.log.Debug("Transaction is nil, using sgr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Save(group).Error; err != nil {
        sgr.log.Error("Failed to update study kit group", "error", err)
        return nil, err
    }
    sgr.log.Info("Successfully updated study kit group", "groupID", group.ID)
    return group, nil
}

func (sgr *studyKitGroupRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, groupIDs []uuid.UUID) error {
    sgr.log.Info("Starting FullDeleteByIDs for StudyKitGroups now...")

    transaction := tx
    if transaction == nil {
        transaction = sgr.db
        sgr.log.Debug("Transaction is nil, using sgr.db", "db", transaction)
    }

    if len(groupIDs) == 0 {
        sgr.log.Debug("No groupIDs provided, nothing to delete")
        return nil
    }

    if err := transaction.WithContext(ctx).
        Where("id IN ?", groupIDs).
        Delete(&types.StudyKitGroup{}).Error; err != nil {
        sgr.log.Error("Failed to hard delete study kit groups", "error", err)
        return err
    }
    sgr.log.Info("Successfully hard deleted study kit groups", "count", len(groupIDs))
    return nil
}
