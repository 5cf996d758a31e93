package main

import (
  "context"
  "fmt"
  "os"

  "github.com/ainstein-org/ainstein-backend/internal/db"
  "github.com/ainstein-org/ainstein-backend/internal/handlers"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/middleware"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/server"
  "github.com/ainstein-org/ainstein-backend/internal/services"
  "github.com/ainstein-org/ainstein-backend/internal/utils"
)

func main() {
  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  log.Info("Environment variables loaded for Main :)")

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Fatal error: Cannot init Postgres", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  oneTimeCodeRepo := repos.NewOneTimeCodeRepo(thePG, log)
  groupRepo := repos.NewStudyKitGroupRepo(thePG, log)
  studyKitRepo := repos.NewStudyKitRepo(thePG, log)
  conversationRepo := repos.NewConversationRepo(thePG, log)
  messageRepo := repos.NewConversationMessageRepo(thePG, log)
  quizRepo := repos.NewQuizRepo(thePG, log)
  flashcardRepo := repos.NewFlashcardRepo(thePG, log)
  videoRepo := repos.NewVideoRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Services Setup
  log.Info("Setting up Services from Main now...")
  emailService, err := services.NewEmailService(log)
  if err != nil {
    log.Warn("Could not init EmailService", "error", err)
  }
  bucketService, err := services.NewBucketService(log)
  if err != nil {
    log.Warn("Could not init BucketService", "error", err)
  }
  coverService, err := services.NewCoverService(log, bucketService)
  if err != nil {
    log.Error("Fatal error: Cannot init CoverService", "error", err)
    os.Exit(1)
  }
  geminiService, err := services.NewGeminiService(log)
  if err != nil {
    log.Error("Fatal error: Cannot init GeminiService", "error", err)
    os.Exit(1)
  }
  renderService, err := services.NewRenderService(context.Background(), log)
  if err != nil {
    log.Error("Fatal error: Cannot init RenderService", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, oneTimeCodeRepo, emailService, jwtSecretKey)
  meService := services.NewMeService(thePG, log, userRepo, userTokenRepo, oneTimeCodeRepo, groupRepo, studyKitRepo)
  groupService := services.NewStudyKitGroupService(thePG, log, groupRepo, studyKitRepo)
  studyKitService := services.NewStudyKitService(thePG, log, studyKitRepo, groupRepo, conversationRepo, messageRepo, coverService)
  conversationService := services.NewConversationService(thePG, log, conversationRepo, messageRepo, studyKitRepo)
  generationService := services.NewGenerationService(thePG, log, conversationRepo, messageRepo, studyKitRepo, quizRepo, flashcardRepo, videoRepo, geminiService, renderService)
  quizService := services.NewQuizService(thePG, log, quizRepo, studyKitRepo)
  flashcardService := services.NewFlashcardService(thePG, log, flashcardRepo, studyKitRepo)
  videoService := services.NewVideoService(thePG, log, videoRepo, studyKitRepo)
  log.Info("Services Set Up From Main Successful :)")

  //  Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  authHandler := handlers.NewAuthHandler(authService)
  meHandler := handlers.NewMeHandler(meService)
  groupHandler := handlers.NewStudyKitGroupHandler(groupService)
  studyKitHandler := handlers.NewStudyKitHandler(studyKitService)
  conversationHandler := handlers.NewConversationHandler(conversationService, generationService)
  quizHandler := handlers.NewQuizHandler(quizService)
  flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
  videoHandler := handlers.NewVideoHandler(videoService)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  log.Info("Setting Up Middleware from Main now...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)
  log.Info("Middleware Set Up From Main Successful :)")

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:          authHandler,
    AuthMiddleware:       authMiddleware,
    MeHandler:            meHandler,
    StudyKitGroupHandler: groupHandler,
    StudyKitHandler:      studyKitHandler,
    ConversationHandler:  conversationHandler,
    QuizHandler:          quizHandler,
    FlashcardHandler:     flashcardHandler,
    VideoHandler:         videoHandler,
  })
  log.Info("Router Set Up From Main Successful :)")

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
