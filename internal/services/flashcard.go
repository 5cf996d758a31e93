package services

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/normalization"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/types"
)

type FlashcardInput struct {
  FrontText string `json:"frontText"`
  BackText  string `json:"backText"`
}

type FlashcardService interface {
  CreateFlashcards(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID, inputs []FlashcardInput) ([]*types.Flashcard, error)
  ListFlashcards(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) ([]*types.Flashcard, error)
  UpdateFlashcard(ctx context.Context, userID uuid.UUID, cardID uuid.UUID, frontText *string, backText *string) (*types.Flashcard, error)
  DeleteFlashcard(ctx context.Context, userID uuid.UUID, cardID uuid.UUID) error
}

type flashcardService struct {
  db            *gorm.DB
  log           *logger.Logger
  flashcardRepo repos.FlashcardRepo
  studyKitRepo  repos.StudyKitRepo
}

func NewFlashcardService(
  db *gorm.DB,
  log *logger.Logger,
  flashcardRepo repos.FlashcardRepo,
  studyKitRepo repos.StudyKitRepo,
) FlashcardService {
  serviceLog := log.With("service", "FlashcardService")
  return &flashcardService{
    db:            db,
    log:           serviceLog,
    flashcardRepo: flashcardRepo,
    studyKitRepo:  studyKitRepo,
  }
}

func (fs *flashcardService) ownedStudyKit(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) (*types.StudyKit, error) {
  kits, err := fs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 || kits[0].UserID != userID {
    return nil, errordata.NotFound("Study Kit not found or you do not have permission to access it")
  }
  return kits[0], nil
}

// accessibleFlashcard mirrors the quiz rule: missing card is a 404, a card
// under someone else's kit is a 403.
func (fs *flashcardService) accessibleFlashcard(ctx context.Context, userID uuid.UUID, cardID uuid.UUID) (*types.Flashcard, error) {
  cards, err := fs.flashcardRepo.GetByIDs(ctx, nil, []uuid.UUID{cardID})
  if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, errordata.Internal("Failed to fetch flashcard", err)
  }
  if len(cards) == 0 {
    return nil, errordata.NotFound("Flashcard not found")
  }
  card := cards[0]
  kits, err := fs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{card.StudyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 {
    return nil, errordata.NotFound("Flashcard not found")
  }
  if kits[0].UserID != userID {
    return nil, errordata.Forbidden("You do not have permission to access this flashcard")
  }
  return card, nil
}

func (fs *flashcardService) CreateFlashcards(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID, inputs []FlashcardInput) ([]*types.Flashcard, error) {
  fs.log.Info("Starting CreateFlashcards now...", "studyKitID", studyKitID, "count", len(inputs))

  if _, err := fs.ownedStudyKit(ctx, userID, studyKitID); err != nil {
    return nil, err
  }
  if len(inputs) == 0 {
    return nil, errordata.BadRequest("At least one flashcard is required")
  }

  cards := make([]*types.Flashcard, 0, len(inputs))
  for _, in := range inputs {
    front := normalization.ParseInputString(in.FrontText)
    back := normalization.ParseInputString(in.BackText)
    if front == "" || back == "" {
      return nil, errordata.BadRequest("Flashcards need both front and back text")
    }
    cards = append(cards, &types.Flashcard{
      StudyKitID: studyKitID,
      FrontText:  front,
      BackText:   back,
    })
  }
  created, err := fs.flashcardRepo.Create(ctx, nil, cards)
  if err != nil {
    return nil, errordata.Internal("Failed to create flashcards", err)
  }
  fs.log.Info("CreateFlashcards completed successfully :)", "count", len(created))
  return created, nil
}

func (fs *flashcardService) ListFlashcards(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) ([]*types.Flashcard, error) {
  fs.log.Info("Starting ListFlashcards now...", "studyKitID", studyKitID)

  if _, err := fs.ownedStudyKit(ctx, userID, studyKitID); err != nil {
    return nil, err
  }
  cards, err := fs.flashcardRepo.GetByStudyKitIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch flashcards", err)
  }
  return cards, nil
}

func (fs *flashcardService) UpdateFlashcard(ctx context.Context, userID uuid.UUID, cardID uuid.UUID, frontText *string, backText *string) (*types.Flashcard, error) {
  fs.log.Info("Starting UpdateFlashcard now...", "cardID", cardID)

  card, err := fs.accessibleFlashcard(ctx, userID, cardID)
  if err != nil {
    return nil, err
  }
  if frontText != nil {
    cleaned := normalization.ParseInputString(*frontText)
    if cleaned == "" {
      return nil, errordata.BadRequest("Flashcard front text cannot be empty")
    }
    card.FrontText = cleaned
  }
  if backText != nil {
    cleaned := normalization.ParseInputString(*backText)
    if cleaned == "" {
      return nil, errordata.BadRequest("Flashcard back text cannot be empty")
    }
    card.BackText = cleaned
  }
  updated, err := fs.flashcardRepo.Update(ctx, nil, card)
  if err != nil {
    return nil, errordata.Internal("Failed to update flashcard", err)
  }
  fs.log.Info("UpdateFlashcard completed successfully :)", "cardID", cardID)
  return updated, nil
}

func (fs *flashcardService) DeleteFlashcard(ctx context.Context, userID uuid.UUID, cardID uuid.UUID) error {
  fs.log.Info("Starting DeleteFlashcard now...", "cardID", cardID)

  card, err := fs.accessibleFlashcard(ctx, userID, cardID)
  if err != nil {
    return err
  }
  if err := fs.flashcardRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{card.ID}); err != nil {
    return errordata.Internal("Failed to delete flashcard", err)
  }
  fs.log.Info("DeleteFlashcard completed successfully :)", "cardID", cardID)
  return nil
}
