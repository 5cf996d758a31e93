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

type StudyKitService interface {
  CreateStudyKit(ctx context.Context, userID uuid.UUID, groupID uuid.UUID, title string, description *string) (*types.StudyKit, error)
  ListStudyKits(ctx context.Context, userID uuid.UUID) ([]*types.StudyKit, error)
  ListStudyKitsByGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) ([]*types.StudyKit, error)
  GetStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) (*types.StudyKit, error)
  GetOverview(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) (*StudyKitOverview, error)
  UpdateStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID, title *string, description *string) (*types.StudyKit, error)
  DeleteStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) error
}

// StudyKitOverview bundles the kit, its content, and each conversation with
// the most recent turn, so the client renders the kit screen off one call.
type StudyKitOverview struct {
  StudyKit       *types.StudyKit        `json:"studyKit"`
  QuizCount      int                    `json:"quizCount"`
  FlashcardCount int                    `json:"flashcardCount"`
  VideoCount     int                    `json:"videoCount"`
  Conversations  []*ConversationSummary `json:"conversations"`
}

type ConversationSummary struct {
  Conversation *types.Conversation        `json:"conversation"`
  LastMessage  *types.ConversationMessage `json:"lastMessage,omitempty"`
}

type studyKitService struct {
  db               *gorm.DB
  log              *logger.Logger
  studyKitRepo     repos.StudyKitRepo
  groupRepo        repos.StudyKitGroupRepo
  conversationRepo repos.ConversationRepo
  messageRepo      repos.ConversationMessageRepo
  coverService     CoverService
}

func NewStudyKitService(
  db *gorm.DB,
  log *logger.Logger,
  studyKitRepo repos.StudyKitRepo,
  groupRepo repos.StudyKitGroupRepo,
  conversationRepo repos.ConversationRepo,
  messageRepo repos.ConversationMessageRepo,
  coverService CoverService,
) StudyKitService {
  serviceLog := log.With("service", "StudyKitService")
  return &studyKitService{
    db:               db,
    log:              serviceLog,
    studyKitRepo:     studyKitRepo,
    groupRepo:        groupRepo,
    conversationRepo: conversationRepo,
    messageRepo:      messageRepo,
    coverService:     coverService,
  }
}

func (sks *studyKitService) ownedStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) (*types.StudyKit, error) {
  kits, err := sks.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{kitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 || kits[0].UserID != userID {
    return nil, errordata.NotFound("Study kit not found")
  }
  return kits[0], nil
}

func (sks *studyKitService) CreateStudyKit(ctx context.Context, userID uuid.UUID, groupID uuid.UUID, title string, description *string) (*types.StudyKit, error) {
  sks.log.Info("Starting CreateStudyKit now...", "groupID", groupID)

  title = normalization.ParseInputString(title)
  if title == "" {
    return nil, errordata.BadRequest("Study kit title is required")
  }

  groups, err := sks.groupRepo.GetByIDs(ctx, nil, []uuid.UUID{groupID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit group", err)
  }
  if len(groups) == 0 || groups[0].UserID != userID {
    return nil, errordata.NotFound("Study kit group not found")
  }

  kit := &types.StudyKit{
    GroupID:     groupID,
    UserID:      userID,
    Title:       title,
    Description: normalization.ParseInputStringPtr(description),
  }
  kit.ID = uuid.New()

  // Cover generation is best effort; a kit without artwork is still a kit.
  if sks.coverService != nil {
    if cErr := sks.coverService.CreateAndUploadStudyKitCover(ctx, kit); cErr != nil {
      sks.log.Warn("Failed to generate study kit cover, continuing without", "error", cErr)
    }
  }

  created, err := sks.studyKitRepo.Create(ctx, nil, []*types.StudyKit{kit})
  if err != nil {
    return nil, errordata.Internal("Failed to create study kit", err)
  }
  sks.log.Info("CreateStudyKit completed successfully :)", "kitID", created[0].ID)
  return created[0], nil
}

func (sks *studyKitService) ListStudyKits(ctx context.Context, userID uuid.UUID) ([]*types.StudyKit, error) {
  sks.log.Info("Starting ListStudyKits now...")

  kits, err := sks.studyKitRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, errordata.Internal("Failed to list study kits", err)
  }
  return kits, nil
}

func (sks *studyKitService) ListStudyKitsByGroup(ctx context.Context, userID uuid.UUID, groupID uuid.UUID) ([]*types.StudyKit, error) {
  sks.log.Info("Starting ListStudyKitsByGroup now...", "groupID", groupID)

  groups, err := sks.groupRepo.GetByIDs(ctx, nil, []uuid.UUID{groupID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit group", err)
  }
  if len(groups) == 0 || groups[0].UserID != userID {
    return nil, errordata.NotFound("Study kit group not found")
  }
  kits, err := sks.studyKitRepo.GetByGroupIDs(ctx, nil, []uuid.UUID{groupID})
  if err != nil {
    return nil, errordata.Internal("Failed to list study kits", err)
  }
  return kits, nil
}

func (sks *studyKitService) GetStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) (*types.StudyKit, error) {
  sks.log.Info("Starting GetStudyKit now...", "kitID", kitID)

  if _, err := sks.ownedStudyKit(ctx, userID, kitID); err != nil {
    return nil, err
  }
  kit, err := sks.studyKitRepo.GetWithContentByID(ctx, nil, kitID)
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit content", err)
  }
  return kit, nil
}

func (sks *studyKitService) GetOverview(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) (*StudyKitOverview, error) {
  sks.log.Info("Starting GetOverview now...", "kitID", kitID)

  if _, err := sks.ownedStudyKit(ctx, userID, kitID); err != nil {
    return nil, err
  }
  kit, err := sks.studyKitRepo.GetWithContentByID(ctx, nil, kitID)
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit content", err)
  }

  conversations, err := sks.conversationRepo.GetByStudyKitIDs(ctx, nil, []uuid.UUID{kitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit conversations", err)
  }
  summaries := make([]*ConversationSummary, 0, len(conversations))
  for _, c := range conversations {
    recent, mErr := sks.messageRepo.GetRecentByConversationID(ctx, nil, c.ID, 1)
    if mErr != nil {
      return nil, errordata.Internal("Failed to fetch conversation messages", mErr)
    }
    summary := &ConversationSummary{Conversation: c}
    if len(recent) > 0 {
      summary.LastMessage = recent[0]
    }
    summaries = append(summaries, summary)
  }

  return &StudyKitOverview{
    StudyKit:       kit,
    QuizCount:      len(kit.Quizzes),
    FlashcardCount: len(kit.Flashcards),
    VideoCount:     len(kit.Videos),
    Conversations:  summaries,
  }, nil
}

func (sks *studyKitService) UpdateStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID, title *string, description *string) (*types.StudyKit, error) {
  sks.log.Info("Starting UpdateStudyKit now...", "kitID", kitID)

  kit, err := sks.ownedStudyKit(ctx, userID, kitID)
  if err != nil {
    return nil, err
  }
  if title != nil {
    cleaned := normalization.ParseInputString(*title)
    if cleaned == "" {
      return nil, errordata.BadRequest("Study kit title cannot be empty")
    }
    kit.Title = cleaned
  }
  if description != nil {
    kit.Description = normalization.ParseInputStringPtr(description)
  }
  updated, err := sks.studyKitRepo.Update(ctx, nil, kit)
  if err != nil {
    return nil, errordata.Internal("Failed to update study kit", err)
  }
  sks.log.Info("UpdateStudyKit completed successfully :)", "kitID", kitID)
  return updated, nil
}

func (sks *studyKitService) DeleteStudyKit(ctx context.Context, userID uuid.UUID, kitID uuid.UUID) error {
  sks.log.Info("Starting DeleteStudyKit now...", "kitID", kitID)

  kit, err := sks.ownedStudyKit(ctx, userID, kitID)
  if err != nil {
    return err
  }
  err = sks.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return sks.studyKitRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{kit.ID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete study kit", err)
  }
  if sks.coverService != nil && kit.CoverBucketKey != "" {
    if dErr := sks.coverService.DeleteStudyKitCover(ctx, kit); dErr != nil {
      sks.log.Warn("Failed to delete study kit cover, continuing", "error", dErr)
    }
  }
  sks.log.Info("DeleteStudyKit completed successfully :)", "kitID", kitID)
  return nil
}
