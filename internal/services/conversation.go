package services

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/types"
)

type ConversationService interface {
  StartConversation(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) (*types.Conversation, error)
  ListConversations(ctx context.Context, userID uuid.UUID) ([]*types.Conversation, error)
  GetConversation(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) (*ConversationDetail, error)
  GetHistory(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) ([]*types.ConversationMessage, error)
  DeleteConversation(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) error
}

type ConversationDetail struct {
  Conversation *types.Conversation          `json:"conversation"`
  State        types.ConversationState      `json:"state"`
  Messages     []*types.ConversationMessage `json:"messages"`
}

type conversationService struct {
  db               *gorm.DB
  log              *logger.Logger
  conversationRepo repos.ConversationRepo
  messageRepo      repos.ConversationMessageRepo
  studyKitRepo     repos.StudyKitRepo
}

func NewConversationService(
  db *gorm.DB,
  log *logger.Logger,
  conversationRepo repos.ConversationRepo,
  messageRepo repos.ConversationMessageRepo,
  studyKitRepo repos.StudyKitRepo,
) ConversationService {
  serviceLog := log.With("service", "ConversationService")
  return &conversationService{
    db:               db,
    log:              serviceLog,
    conversationRepo: conversationRepo,
    messageRepo:      messageRepo,
    studyKitRepo:     studyKitRepo,
  }
}

func (cs *conversationService) ownedConversation(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) (*types.Conversation, error) {
  conversations, err := cs.conversationRepo.GetByIDs(ctx, nil, []uuid.UUID{conversationID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch conversation", err)
  }
  if len(conversations) == 0 || conversations[0].UserID != userID {
    return nil, errordata.NotFound("Conversation not found")
  }
  return conversations[0], nil
}

func (cs *conversationService) StartConversation(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) (*types.Conversation, error) {
  cs.log.Info("Starting StartConversation now...", "studyKitID", studyKitID)

  kits, err := cs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 || kits[0].UserID != userID {
    return nil, errordata.NotFound("Study kit not found")
  }

  conversation := &types.Conversation{
    StudyKitID: studyKitID,
    UserID:     userID,
  }
  created, err := cs.conversationRepo.Create(ctx, nil, conversation)
  if err != nil {
    return nil, errordata.Internal("Failed to create conversation", err)
  }
  cs.log.Info("StartConversation completed successfully :)", "conversationID", created.ID)
  return created, nil
}

func (cs *conversationService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*types.Conversation, error) {
  cs.log.Info("Starting ListConversations now...")

  conversations, err := cs.conversationRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, errordata.Internal("Failed to list conversations", err)
  }
  return conversations, nil
}

func (cs *conversationService) GetConversation(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) (*ConversationDetail, error) {
  cs.log.Info("Starting GetConversation now...", "conversationID", conversationID)

  conversation, err := cs.ownedConversation(ctx, userID, conversationID)
  if err != nil {
    return nil, err
  }
  messages, err := cs.messageRepo.GetByConversationID(ctx, nil, conversation.ID)
  if err != nil {
    return nil, errordata.Internal("Failed to fetch conversation messages", err)
  }
  return &ConversationDetail{
    Conversation: conversation,
    State:        types.StateOf(messages),
    Messages:     messages,
  }, nil
}

func (cs *conversationService) GetHistory(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) ([]*types.ConversationMessage, error) {
  cs.log.Info("Starting GetHistory now...", "conversationID", conversationID)

  conversation, err := cs.ownedConversation(ctx, userID, conversationID)
  if err != nil {
    return nil, err
  }
  messages, err := cs.messageRepo.GetByConversationID(ctx, nil, conversation.ID)
  if err != nil {
    return nil, errordata.Internal("Failed to fetch conversation messages", err)
  }
  return messages, nil
}

func (cs *conversationService) DeleteConversation(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) error {
  cs.log.Info("Starting DeleteConversation now...", "conversationID", conversationID)

  conversation, err := cs.ownedConversation(ctx, userID, conversationID)
  if err != nil {
    return err
  }
  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return cs.conversationRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{conversation.ID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete conversation", err)
  }
  cs.log.Info("DeleteConversation completed successfully :)", "conversationID", conversationID)
  return nil
}
