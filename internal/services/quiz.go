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

type QuizInput struct {
  Title       string          `json:"title"`
  Description *string         `json:"description,omitempty"`
  Questions   []QuestionInput `json:"questions"`
}

type QuestionInput struct {
  QuestionText string        `json:"questionText"`
  QuestionType string        `json:"questionType"`
  Answers      []AnswerInput `json:"answers"`
}

type AnswerInput struct {
  AnswerText string `json:"answerText"`
  IsCorrect  bool   `json:"isCorrect"`
}

type QuizService interface {
  CreateQuiz(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID, input QuizInput) (*types.Quiz, error)
  ListQuizzes(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) ([]*types.Quiz, error)
  GetQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID) (*types.Quiz, error)
  UpdateQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID, title *string, description *string) (*types.Quiz, error)
  DeleteQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID) error
  UpdateQuestion(ctx context.Context, userID uuid.UUID, questionID uuid.UUID, questionText *string, questionType *string) (*types.QuizQuestion, error)
  DeleteQuestion(ctx context.Context, userID uuid.UUID, questionID uuid.UUID) error
  UpdateAnswer(ctx context.Context, userID uuid.UUID, answerID uuid.UUID, answerText *string, isCorrect *bool) (*types.QuizAnswer, error)
  DeleteAnswer(ctx context.Context, userID uuid.UUID, answerID uuid.UUID) error
}

type quizService struct {
  db           *gorm.DB
  log          *logger.Logger
  quizRepo     repos.QuizRepo
  studyKitRepo repos.StudyKitRepo
}

func NewQuizService(
  db *gorm.DB,
  log *logger.Logger,
  quizRepo repos.QuizRepo,
  studyKitRepo repos.StudyKitRepo,
) QuizService {
  serviceLog := log.With("service", "QuizService")
  return &quizService{
    db:           db,
    log:          serviceLog,
    quizRepo:     quizRepo,
    studyKitRepo: studyKitRepo,
  }
}

// accessibleQuiz fetches a quiz and checks the owning kit. A quiz that does
// not exist is a 404; one that exists under someone else's kit is a 403.
func (qs *quizService) accessibleQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID) (*types.Quiz, error) {
  quiz, err := qs.quizRepo.GetByID(ctx, nil, quizID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, errordata.NotFound("Quiz not found")
    }
    return nil, errordata.Internal("Failed to fetch quiz", err)
  }
  kits, err := qs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{quiz.StudyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 {
    return nil, errordata.NotFound("Quiz not found")
  }
  if kits[0].UserID != userID {
    return nil, errordata.Forbidden("You do not have permission to access this quiz")
  }
  return quiz, nil
}

func (qs *quizService) ownedStudyKit(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) (*types.StudyKit, error) {
  kits, err := qs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 || kits[0].UserID != userID {
    return nil, errordata.NotFound("Study Kit not found or you do not have permission to access it")
  }
  return kits[0], nil
}

func (qs *quizService) CreateQuiz(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID, input QuizInput) (*types.Quiz, error) {
  qs.log.Info("Starting CreateQuiz now...", "studyKitID", studyKitID)

  if _, err := qs.ownedStudyKit(ctx, userID, studyKitID); err != nil {
    return nil, err
  }
  title := normalization.ParseInputString(input.Title)
  if title == "" {
    return nil, errordata.BadRequest("Quiz title is required")
  }
  if len(input.Questions) == 0 {
    return nil, errordata.BadRequest("Quiz must have at least one question")
  }

  quiz := &types.Quiz{
    StudyKitID:  studyKitID,
    Title:       title,
    Description: normalization.ParseInputStringPtr(input.Description),
  }
  for _, q := range input.Questions {
    if len(q.Answers) == 0 {
      return nil, errordata.BadRequest("Each Question must have at least one answer")
    }
    question := types.QuizQuestion{
      QuestionText: q.QuestionText,
      QuestionType: q.QuestionType,
    }
    for _, a := range q.Answers {
      question.Answers = append(question.Answers, types.QuizAnswer{
        AnswerText: a.AnswerText,
        IsCorrect:  a.IsCorrect,
      })
    }
    quiz.Questions = append(quiz.Questions, question)
  }

  created, err := qs.quizRepo.CreateWithQuestions(ctx, nil, quiz)
  if err != nil {
    return nil, errordata.Internal("Failed to create quiz", err)
  }
  qs.log.Info("CreateQuiz completed successfully :)", "quizID", created.ID)
  return created, nil
}

func (qs *quizService) ListQuizzes(ctx context.Context, userID uuid.UUID, studyKitID uuid.UUID) ([]*types.Quiz, error) {
  qs.log.Info("Starting ListQuizzes now...", "studyKitID", studyKitID)

  if _, err := qs.ownedStudyKit(ctx, userID, studyKitID); err != nil {
    return nil, err
  }
  quizzes, err := qs.quizRepo.GetByStudyKitIDs(ctx, nil, []uuid.UUID{studyKitID})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch quizzes", err)
  }
  return quizzes, nil
}

func (qs *quizService) GetQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID) (*types.Quiz, error) {
  qs.log.Info("Starting GetQuiz now...", "quizID", quizID)
  return qs.accessibleQuiz(ctx, userID, quizID)
}

func (qs *quizService) UpdateQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID, title *string, description *string) (*types.Quiz, error) {
  qs.log.Info("Starting UpdateQuiz now...", "quizID", quizID)

  quiz, err := qs.accessibleQuiz(ctx, userID, quizID)
  if err != nil {
    return nil, err
  }
  if title != nil {
    cleaned := normalization.ParseInputString(*title)
    if cleaned == "" {
      return nil, errordata.BadRequest("Quiz title cannot be empty")
    }
    quiz.Title = cleaned
  }
  if description != nil {
    quiz.Description = normalization.ParseInputStringPtr(description)
  }
  updated, err := qs.quizRepo.Update(ctx, nil, quiz)
  if err != nil {
    return nil, errordata.Internal("Failed to update quiz", err)
  }
  qs.log.Info("UpdateQuiz completed successfully :)", "quizID", quizID)
  return updated, nil
}

func (qs *quizService) DeleteQuiz(ctx context.Context, userID uuid.UUID, quizID uuid.UUID) error {
  qs.log.Info("Starting DeleteQuiz now...", "quizID", quizID)

  quiz, err := qs.accessibleQuiz(ctx, userID, quizID)
  if err != nil {
    return err
  }
  err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return qs.quizRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{quiz.ID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete quiz", err)
  }
  qs.log.Info("DeleteQuiz completed successfully :)", "quizID", quizID)
  return nil
}

// accessibleQuestion walks question -> quiz -> kit so nested edits carry
// the same 404/403 split as the quiz itself.
func (qs *quizService) accessibleQuestion(ctx context.Context, userID uuid.UUID, questionID uuid.UUID) (*types.QuizQuestion, error) {
  question, err := qs.quizRepo.GetQuestionByID(ctx, nil, questionID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, errordata.NotFound("Quiz question not found")
    }
    return nil, errordata.Internal("Failed to fetch quiz question", err)
  }
  if _, err := qs.accessibleQuiz(ctx, userID, question.QuizID); err != nil {
    return nil, err
  }
  return question, nil
}

func (qs *quizService) accessibleAnswer(ctx context.Context, userID uuid.UUID, answerID uuid.UUID) (*types.QuizAnswer, error) {
  answer, err := qs.quizRepo.GetAnswerByID(ctx, nil, answerID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, errordata.NotFound("Quiz answer not found")
    }
    return nil, errordata.Internal("Failed to fetch quiz answer", err)
  }
  if _, err := qs.accessibleQuestion(ctx, userID, answer.QuestionID); err != nil {
    return nil, err
  }
  return answer, nil
}

func (qs *quizService) UpdateQuestion(ctx context.Context, userID uuid.UUID, questionID uuid.UUID, questionText *string, questionType *string) (*types.QuizQuestion, error) {
  qs.log.Info("Starting UpdateQuestion now...", "questionID", questionID)

  question, err := qs.accessibleQuestion(ctx, userID, questionID)
  if err != nil {
    return nil, err
  }
  if questionText != nil {
    cleaned := normalization.ParseInputString(*questionText)
    if cleaned == "" {
      return nil, errordata.BadRequest("Question text cannot be empty")
    }
    question.QuestionText = cleaned
  }
  if questionType != nil {
    cleaned := normalization.ParseInputString(*questionType)
    if cleaned == "" {
      return nil, errordata.BadRequest("Question type cannot be empty")
    }
    question.QuestionType = cleaned
  }
  updated, err := qs.quizRepo.UpdateQuestion(ctx, nil, question)
  if err != nil {
    return nil, errordata.Internal("Failed to update quiz question", err)
  }
  qs.log.Info("UpdateQuestion completed successfully :)", "questionID", questionID)
  return updated, nil
}

func (qs *quizService) DeleteQuestion(ctx context.Context, userID uuid.UUID, questionID uuid.UUID) error {
  qs.log.Info("Starting DeleteQuestion now...", "questionID", questionID)

  question, err := qs.accessibleQuestion(ctx, userID, questionID)
  if err != nil {
    return err
  }
  err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return qs.quizRepo.FullDeleteQuestionsByIDs(ctx, tx, []uuid.UUID{question.ID})
  })
  if err != nil {
    return errordata.Internal("Failed to delete quiz question", err)
  }
  qs.log.Info("DeleteQuestion completed successfully :)", "questionID", questionID)
  return nil
}

func (qs *quizService) UpdateAnswer(ctx context.Context, userID uuid.UUID, answerID uuid.UUID, answerText *string, isCorrect *bool) (*types.QuizAnswer, error) {
  qs.log.Info("Starting UpdateAnswer now...", "answerID", answerID)

  answer, err := qs.accessibleAnswer(ctx, userID, answerID)
  if err != nil {
    return nil, err
  }
  if answerText != nil {
    cleaned := normalization.ParseInputString(*answerText)
    if cleaned == "" {
      return nil, errordata.BadRequest("Answer text cannot be empty")
    }
    answer.AnswerText = cleaned
  }
  if isCorrect != nil {
    answer.IsCorrect = *isCorrect
  }
  updated, err := qs.quizRepo.UpdateAnswer(ctx, nil, answer)
  if err != nil {
    return nil, errordata.Internal("Failed to update quiz answer", err)
  }
  qs.log.Info("UpdateAnswer completed successfully :)", "answerID", answerID)
  return updated, nil
}

func (qs *quizService) DeleteAnswer(ctx context.Context, userID uuid.UUID, answerID uuid.UUID) error {
  qs.log.Info("Starting DeleteAnswer now...", "answerID", answerID)

  answer, err := qs.accessibleAnswer(ctx, userID, answerID)
  if err != nil {
    return err
  }
  if err := qs.quizRepo.FullDeleteAnswersByIDs(ctx, nil, []uuid.UUID{answer.ID}); err != nil {
    return errordata.Internal("Failed to delete quiz answer", err)
  }
  qs.log.Info("DeleteAnswer completed successfully :)", "answerID", answerID)
  return nil
}
