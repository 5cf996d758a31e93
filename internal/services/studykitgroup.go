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

type StudyKitGroupService interface {
  CreateGroup(ctx context.Context, userID uuid.UUID, name string, description *string) (*types.StudyKitGroup, error)
  ListGroups(ctx context.Context, userID uuid.UUID) ([]*types.StudyKitGroup, error)
  GetGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) (*types.StudyKitGroup, error)
  UpdateGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID, name *string, description *string) (*types.StudyKitGroup, error)
  DeleteGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) error
}

type studyKitGroupService struct {
  db           *gorm.DB
  log          *logger.Logger
  groupRepo    repos.StudyKitGroupRepo
  studyKitRepo repos.StudyKitRepo
}

func NewStudyKitGroupService(
  db *gorm.DB,
  log *logger.Logger,
  groupRepo repos.StudyKitGroupRepo,
  studyKitRepo repos.StudyKitRepo,
) StudyKitGroupService {
  serviceLog := log.With("service", "StudyKitGroupService")
  return &studyKitGroupService{
    db:           db,
    log:          serviceLog,
    groupRepo:    groupRepo,
    studyKitRepo: studyKitRepo,
  }
}

func (sgs *studyKitGroupService) ownedGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) (*types.StudyKitGroup, error) {
  groups, err := sgs.groupRepo.GetByIDs(ctx, nil, []uuid.UUID{groupID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit group", err)
  }
  if len(groups) == 0 || groups[0].UserID != userID {
    return nil, errordata.NotFound("Study kit group not found")
  }
  return groups[0], nil
}

func (sgs *studyKitGroupService) CreateGroup(ctx context.Context, userID uuid.UUID, name string, description *string) (*types.StudyKitGroup, error) {
  sgs.log.Info("Starting CreateGroup now...")

  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, errordata.BadRequest("Group name is required")
  }
  group := &types.StudyKitGroup{
    UserID:      userID,
    Name:        name,
    Description: normalization.ParseInputStringPtr(description),
  }
  created, err := sgs.groupRepo.Create(ctx, nil, []*types.StudyKitGroup{group})
  if err != nil {
    return nil, errordata.Internal("Failed to create study kit group", err)
  }
  sgs.log.Info("CreateGroup completed successfully :)", "groupID", created[0].ID)
  return created[0], nil
}

func (sgs *studyKitGroupService) ListGroups(ctx context.Context, userID uuid.UUID) ([]*types.StudyKitGroup, error) {
  sgs.log.Info("Starting ListGroups now...")

  groups, err := sgs.groupRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, errordata.Internal("Failed to list study kit groups", err)
  }
  return groups, nil
}

func (sgs *studyKitGroupService) GetGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) (*types.StudyKitGroup, error) {
  sgs.log.Info("Starting GetGroup now...", "groupID", groupID)
  return sgs.ownedGroup(ctx, userID, groupID)
}

func (sgs *studyKitGroupService) UpdateGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID, name *string, description *string) (*types.StudyKitGroup, error) {
  sgs.log.Info("Starting UpdateGroup now...", "groupID", groupID)

  group, err := sgs.ownedGroup(ctx, userID, groupID)
  if err != nil {
    return nil, err
  }
  if name != nil {
    cleaned := normalization.ParseInputString(*name)
    if cleaned == "" {
      return nil, errordata.BadRequest("Group name cannot be empty")
    }
    group.Name = cleaned
  }
  if description != nil {
    group.Description = normalization.ParseInputStringPtr(description)
  }
  updated, err := sgs.groupRepo.Update(ctx, nil, group)
  if err != nil {
    return nil, errordata.Internal("Failed to update study kit group", err)
  }
  sgs.log.Info("UpdateGroup completed successfully :)", "groupID", groupID)
  return updated, nil
}

func (sgs *studyKitGroupService) DeleteGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) error {
  sgs.log.Info("Starting DeleteGroup now...", "groupID", groupID)

  group, err := sgs.ownedGroup(ctx, userID, groupID)
  if err != nil {
    return err
  }
  err = sgs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    kits, kErr := sgs.studyKitRepo.GetByGroupIDs(ctx, tx, []uuid.UUID{group.ID})
    if kErr != nil {
      return kErr
    }
    kitIDs := make([]uuid.UUID, 0, len(kits))
    for _, k := range kits {
      kitIDs = append(kitIDs, k.ID)
    }
    if dErr := sgs.studyKitRepo.FullDeleteByIDs(ctx, tx, kitIDs); dErr != nil {
      return dErr
    }
    return sgs.groupRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{group.ID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete study kit group", err)
  }
  sgs.log.Info("DeleteGroup completed successfully :)", "groupID", groupID)
  return nil
}
