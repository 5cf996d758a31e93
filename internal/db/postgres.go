package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/types"
  "github.com/ainstein-org/ainstein-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Get and Set Environment Variables
  log.Info("Attempting to load environment variables for Postgres now...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "ainstein", log)
  log.Info("Environment variables loaded for Postgres :)")

  //2) Construct DSN From Environment Variables
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  //3) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres DB: %w", err)
  }
  log.Info("Successfully Connected to Postgres DB :)")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")

  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.OneTimeCode{},
    &types.StudyKitGroup{},
    &types.StudyKit{},
    &types.Conversation{},
    &types.ConversationMessage{},
    &types.Quiz{},
    &types.QuizQuestion{},
    &types.QuizAnswer{},
    &types.Flashcard{},
    &types.Video{},
    &types.VideoLike{},
    &types.VideoComment{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully for Base Tables :)")

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  // -- UserToken.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "user_token"
      ADD CONSTRAINT "fk_user_token_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_user_token_user_id: %w", err)
  }
  // -- OneTimeCode.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "one_time_code"
      ADD CONSTRAINT "fk_one_time_code_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_one_time_code_user_id: %w", err)
  }
  // -- StudyKitGroup.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "study_kit_group"
      ADD CONSTRAINT "fk_study_kit_group_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_study_kit_group_user_id: %w", err)
  }
  // -- StudyKit.group_id => study_kit_group.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "study_kit"
      ADD CONSTRAINT "fk_study_kit_group_id"
      FOREIGN KEY ("group_id")
      REFERENCES "study_kit_group"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_study_kit_group_id: %w", err)
  }
  // -- StudyKit.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "study_kit"
      ADD CONSTRAINT "fk_study_kit_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_study_kit_user_id: %w", err)
  }
  // -- Conversation.study_kit_id => study_kit.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "conversation"
      ADD CONSTRAINT "fk_conversation_study_kit_id"
      FOREIGN KEY ("study_kit_id")
      REFERENCES "study_kit"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_conversation_study_kit_id: %w", err)
  }
  // -- ConversationMessage.conversation_id => conversation.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "conversation_message"
      ADD CONSTRAINT "fk_conversation_message_conversation_id"
      FOREIGN KEY ("conversation_id")
      REFERENCES "conversation"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_conversation_message_conversation_id: %w", err)
  }
  // -- Quiz.study_kit_id => study_kit.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "quiz"
      ADD CONSTRAINT "fk_quiz_study_kit_id"
      FOREIGN KEY ("study_kit_id")
      REFERENCES "study_kit"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_quiz_study_kit_id: %w", err)
  }
  // -- QuizQuestion.quiz_id => quiz.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "quiz_question"
      ADD CONSTRAINT "fk_quiz_question_quiz_id"
      FOREIGN KEY ("quiz_id")
      REFERENCES "quiz"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_quiz_question_quiz_id: %w", err)
  }
  // -- QuizAnswer.question_id => quiz_question.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "quiz_answer"
      ADD CONSTRAINT "fk_quiz_answer_question_id"
      FOREIGN KEY ("question_id")
      REFERENCES "quiz_question"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_quiz_answer_question_id: %w", err)
  }
  // -- Flashcard.study_kit_id => study_kit.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "flashcard"
      ADD CONSTRAINT "fk_flashcard_study_kit_id"
      FOREIGN KEY ("study_kit_id")
      REFERENCES "study_kit"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_flashcard_study_kit_id: %w", err)
  }
  // -- Video.study_kit_id => study_kit.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "video"
      ADD CONSTRAINT "fk_video_study_kit_id"
      FOREIGN KEY ("study_kit_id")
      REFERENCES "study_kit"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_video_study_kit_id: %w", err)
  }
  // -- VideoLike.video_id => video.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "video_like"
      ADD CONSTRAINT "fk_video_like_video_id"
      FOREIGN KEY ("video_id")
      REFERENCES "video"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_video_like_video_id: %w", err)
  }
  // -- VideoComment.video_id => video.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "video_comment"
      ADD CONSTRAINT "fk_video_comment_video_id"
      FOREIGN KEY ("video_id")
      REFERENCES "video"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_video_comment_video_id: %w", err)
  }
  s.log.Info("Foreign Key Relationships Configured for Base Tables :)")
  return nil
}
