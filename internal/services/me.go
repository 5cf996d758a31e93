package services

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/normalization"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/types"
)

type MeService interface {
  GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
  UpdateMe(ctx context.Context, userID uuid.UUID, name *string, bio *string, imageURL *string) (*types.User, error)
  DeleteMe(ctx context.Context, userID uuid.UUID) error
}

type meService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  codeRepo      repos.OneTimeCodeRepo
  groupRepo     repos.StudyKitGroupRepo
  studyKitRepo  repos.StudyKitRepo
}

func NewMeService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  codeRepo repos.OneTimeCodeRepo,
  groupRepo repos.StudyKitGroupRepo,
  studyKitRepo repos.StudyKitRepo,
) MeService {
  serviceLog := log.With("service", "MeService")
  return &meService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    codeRepo:      codeRepo,
    groupRepo:     groupRepo,
    studyKitRepo:  studyKitRepo,
  }
}

func (ms *meService) fetchUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  users, err := ms.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch user", err)
  }
  if len(users) == 0 {
    return nil, errordata.NotFound("User not found")
  }
  return users[0], nil
}

func (ms *meService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  ms.log.Info("Starting GetMe now...", "userID", userID)
  return ms.fetchUser(ctx, userID)
}

func (ms *meService) UpdateMe(ctx context.Context, userID uuid.UUID, name *string, bio *string, imageURL *string) (*types.User, error) {
  ms.log.Info("Starting UpdateMe now...", "userID", userID)

  user, err := ms.fetchUser(ctx, userID)
  if err != nil {
    return nil, err
  }
  if name != nil {
    cleaned := normalization.ParseInputString(*name)
    if cleaned == "" {
      return nil, errordata.BadRequest("Name cannot be empty")
    }
    user.Name = cleaned
  }
  if bio != nil {
    user.Bio = normalization.ParseInputStringPtr(bio)
  }
  if imageURL != nil {
    user.ImageURL = normalization.ParseInputStringPtr(imageURL)
  }
  updated, err := ms.userRepo.Update(ctx, nil, user)
  if err != nil {
    return nil, errordata.Internal("Failed to update user", err)
  }
  ms.log.Info("UpdateMe completed successfully :)", "userID", userID)
  return updated, nil
}

// DeleteMe removes the account and everything hanging off it. Study kits go
// first so their quizzes, flashcards, videos, and conversations come down
// with them, then the groups, tokens, codes, and finally the user row.
func (ms *meService) DeleteMe(ctx context.Context, userID uuid.UUID) error {
  ms.log.Info("Starting DeleteMe now...", "userID", userID)

  if _, err := ms.fetchUser(ctx, userID); err != nil {
    return err
  }
  err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    kits, err := ms.studyKitRepo.GetByUserIDs(ctx, tx, []uuid.UUID{userID})
    if err != nil {
      return err
    }
    if len(kits) > 0 {
      kitIDs := make([]uuid.UUID, 0, len(kits))
      for _, kit := range kits {
        kitIDs = append(kitIDs, kit.ID)
      }
      if err := ms.studyKitRepo.FullDeleteByIDs(ctx, tx, kitIDs); err != nil {
        return err
      }
    }
    groups, err := ms.groupRepo.GetByUserIDs(ctx, tx, []uuid.UUID{userID})
    if err != nil {
      return err
    }
    if len(groups) > 0 {
      groupIDs := make([]uuid.UUID, 0, len(groups))
      for _, group := range groups {
        groupIDs = append(groupIDs, group.ID)
      }
      if err := ms.groupRepo.FullDeleteByIDs(ctx, tx, groupIDs); err != nil {
        return err
      }
    }
    if err := ms.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
      return err
    }
    if err := ms.codeRepo.FullDeleteByUserAndPurpose(ctx, tx, userID, purposeEmailVerification); err != nil {
      return err
    }
    return ms.userRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{userID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete user", err)
  }
  ms.log.Info("DeleteMe completed successfully :)", "userID", userID)
  return nil
}
