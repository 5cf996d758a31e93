package repos

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/ainstein-org/ainstein-backend/internal/logger"
    "github.com/ainstein-org/ainstein-backend/internal/types"
)

type QuizRepo interface {
    // CREATE
    // CreateWithQuestions persists a quiz, its questions, and all answer
    // rows. Callers pass a transaction when the write must be atomic with
    // other work; with a nil tx the repo opens its own.
    CreateWithQuestions(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)

    // READ
    GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error)
    GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Quiz, error)
    GetQuestionByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.QuizQuestion, error)
    GetAnswerByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.QuizAnswer, error)

    // UPDATE
    Update(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)
    UpdateQuestion(ctx context.Context, tx *gorm.DB, question *types.QuizQuestion) (*types.QuizQuestion, error)
    UpdateAnswer(ctx context.Context, tx *gorm.DB, answer *types.QuizAnswer) (*types.QuizAnswer, error)

    // FULL (HARD) DELETE
    FullDeleteByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) error
    FullDeleteQuestionsByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error
    FullDeleteAnswersByIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) error
}

type quizRepo struct {
    db  *gorm.DB
    log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
    repoLog := baseLog.With("repo", "QuizRepo")
    return &quizRepo{db: db, log: repoLog}
}

func (qr *quizRepo) CreateWithQuestions(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
    qr.log.Info("Starting CreateWithQuestions for Quiz now...", "studyKitID", quiz.StudyKitID, "questionCount", len(quiz.Questions))

    run := func(transaction *gorm.DB) error {
        if quiz.ID == uuid.Nil {
            quiz.ID = uuid.New()
        }
        questions := quiz.Questions
        quiz.Questions = nil
        if err := transaction.WithContext(ctx).Create(quiz).Error; err != nil {
            qr.log.Error("Failed to create quiz row", "error", err)
            return err
        }
        for i := range questions {
            question := &questions[i]
            if question.ID == uuid.Nil {
                question.ID = uuid.New()
            }
            question.QuizID = quiz.ID
            answers := question.Answers
            question.Answers = nil
            if err := transaction.WithContext(ctx).Create(question).Error; err != nil {
                qr.log.Error("Failed to create quiz question row", "error", err)
                return err
            }
            for j := range answers {
                if answers[j].ID == uuid.Nil {
                    answers[j].ID = uuid.New()
                }
                answers[j].QuestionID = question.ID
            }
            if len(answers) > 0 {
                if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
                    qr.log.Error("Failed to create quiz answer rows", "error", err)
                    return err
                }
            }
            question.Answers = answers
        }
        quiz.Questions = questions
        return nil
    }

    if tx != nil {
        if err := run(tx); err != nil {
            return nil, err
        }
        return quiz, nil
    }
    if err := qr.db.WithContext(ctx).Transaction(run); err != nil {
        return nil, err
    }
    qr.log.Info("Successfully created quiz with questions", "quizID", quiz.ID, "questionCount", len(quiz.Questions))
    return quiz, nil
}

func (qr *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error) {
    qr.log.Info("Starting GetByID for Quiz now...", "quizID", quizID)

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    var result types.Quiz
    if err := transaction.WithContext(ctx).
        Preload("Questions").
        Preload("Questions.Answers").
        Where("id = ?", quizID).
        First(&result).Error; err != nil {
        qr.log.Error("Failed to fetch quiz by ID", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully fetched quiz by ID", "quizID", quizID)
    return &result, nil
}

func (qr *quizRepo) GetByStudyKitIDs(ctx context.Context, tx *gorm.DB, kitIDs []uuid.UUID) ([]*types.Quiz, error) {
    qr.log.Info("Starting GetByStudyKitIDs for Quizzes now...")

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    var results []*types.Quiz
    if len(kitIDs) == 0 {
        qr.log.Debug("No kitIDs provided, returning empty slice")
        return results, nil
    }

    if err := transaction.WithContext(ctx).
        Preload("Questions").
        Preload("Questions.Answers").
        Where("study_kit_id IN ?", kitIDs).
        Order("created_at ASC").
        Find(&results).Error; err != nil {
        qr.log.Error("Failed to fetch quizzes by kitIDs", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully fetched quizzes by kitIDs", "count", len(results))
    return results, nil
}

func (qr *quizRepo) GetQuestionByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.QuizQuestion, error) {
    qr.log.Info("Starting GetQuestionByID now...", "questionID", questionID)

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    var result types.QuizQuestion
    if err := transaction.WithContext(ctx).
        Preload("Answers").
        Where("id = ?", questionID).
        First(&result).Error; err != nil {
        qr.log.Error("Failed to fetch quiz question by ID", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully fetched quiz question by ID", "questionID", questionID)
    return &result, nil
}

func (qr *quizRepo) GetAnswerByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.QuizAnswer, error) {
    qr.log.Info("Starting GetAnswerByID now...", "answerID", answerID)

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    var result types.QuizAnswer
    if err := transaction.WithContext(ctx).
        Where("id = ?", answerID).
        First(&result).Error; err != nil {
        qr.log.Error("Failed to fetch quiz answer by ID", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully fetched quiz answer by ID", "answerID", answerID)
    return &result, nil
}

func (qr *quizRepo) Update(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
    qr.log.Info("Starting Update Quiz now...", "quizID", quiz.ID)

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Omit("Questions").Save(quiz).Error; err != nil {
        qr.log.Error("Failed to update quiz", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully updated quiz", "quizID", quiz.ID)
    return quiz, nil
}

func (qr *quizRepo) UpdateQuestion(ctx context.Context, tx *gorm.DB, question *types.QuizQuestion) (*types.QuizQuestion, error) {
    qr.log.Info("Starting UpdateQuestion now...", "questionID", question.ID)

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Omit("Answers").Save(question).Error; err != nil {
        qr.log.Error("Failed to update quiz question", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully updated quiz question", "questionID", question.ID)
    return question, nil
}

func (qr *quizRepo) UpdateAnswer(ctx context.Context, tx *gorm.DB, answer *types.QuizAnswer) (*types.QuizAnswer, error) {
    qr.log.Info("Starting UpdateAnswer now...", "answerID", answer.ID)

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    if err := transaction.WithContext(ctx).Save(answer).Error; err != nil {
        qr.log.Error("Failed to update quiz answer", "error", err)
        return nil, err
    }
    qr.log.Info("Successfully updated quiz answer", "answerID", answer.ID)
    return answer, nil
}

func (qr *quizRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) error {
    qr.log.Info("Starting FullDeleteByIDs for Quizzes now...")

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    if len(quizIDs) == 0 {
        qr.log.Debug("No quizIDs provided, nothing to delete")
        return nil
    }

    session := transaction.WithContext(ctx)
    questionIDs := session.Model(&types.QuizQuestion{}).Select("id").Where("quiz_id IN ?", quizIDs)
    if err := session.Where("question_id IN (?)", questionIDs).Delete(&types.QuizAnswer{}).Error; err != nil {
        qr.log.Error("Failed to hard delete quiz answers", "error", err)
        return err
    }
    if err := session.Where("quiz_id IN ?", quizIDs).Delete(&types.QuizQuestion{}).Error; err != nil {
        qr.log.Error("Failed to hard delete quiz questions", "error", err)
        return err
    }
    if err := session.Where("id IN ?", quizIDs).Delete(&types.Quiz{}).Error; err != nil {
        qr.log.Error("Failed to hard delete quizzes", "error", err)
        return err
    }
    qr.log.Info("Successfully hard deleted quizzes", "count", len(quizIDs))
    return nil
}

func (qr *quizRepo) FullDeleteQuestionsByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error {
    qr.log.Info("Starting FullDeleteQuestionsByIDs now...")

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    if len(questionIDs) == 0 {
        qr.log.Debug("No questionIDs provided, nothing to delete")
        return nil
    }

    session := transaction.WithContext(ctx)
    if err := session.Where("question_id IN ?", questionIDs).Delete(&types.QuizAnswer{}).Error; err != nil {
        qr.log.Error("Failed to hard delete quiz answers", "error", err)
        return err
    }
    if err := session.Where("id IN ?", questionIDs).Delete(&types.QuizQuestion{}).Error; err != nil {
        qr.log.Error("Failed to hard delete quiz questions", "error", err)
        return err
    }
    qr.log.Info("Successfully hard deleted quiz questions", "count", len(questionIDs))
    return nil
}

func (qr *quizRepo) FullDeleteAnswersByIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) error {
    qr.log.Info("Starting FullDeleteAnswersByIDs now...")

    transaction := tx
    if transaction == nil {
        transaction = qr.db
        qr.log.Debug("Transaction is nil, using qr.db", "db", transaction)
    }

    if len(answerIDs) == 0 {
        qr.log.Debug("No answerIDs provided, nothing to delete")
        return nil
    }

    if err := transaction.WithContext(ctx).Where("id IN ?", answerIDs).Delete(&types.QuizAnswer{}).Error; err != nil {
        qr.log.Error("Failed to hard delete quiz answers", "error", err)
        return err
    }
    qr.log.Info("Successfully hard deleted quiz answers", "count", len(answerIDs))
    return nil
}
