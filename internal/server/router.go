package server

import (
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/ainstein-org/ainstein-backend/internal/handlers"
  "github.com/ainstein-org/ainstein-backend/internal/middleware"
  "github.com/ainstein-org/ainstein-backend/internal/utils"
)

type RouterConfig struct {
  AuthHandler          *handlers.AuthHandler
  AuthMiddleware       *middleware.AuthMiddleware
  MeHandler            *handlers.MeHandler
  StudyKitGroupHandler *handlers.StudyKitGroupHandler
  StudyKitHandler      *handlers.StudyKitHandler
  ConversationHandler  *handlers.ConversationHandler
  QuizHandler          *handlers.QuizHandler
  FlashcardHandler     *handlers.FlashcardHandler
  VideoHandler         *handlers.VideoHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  allowedOrigins := strings.Split(utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000", nil), ",")
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowedOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Refresh-Token"},
    AllowCredentials: true,
  }))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/healthz", handlers.Healthz)

  //-----------------------------------------
  // Public Routes
  //-----------------------------------------
  api := router.Group("/api")
  {
    api.POST("/auth/register", cfg.AuthHandler.Register)
    api.POST("/auth/verify-email", cfg.AuthHandler.VerifyEmail)
    api.POST("/auth/resend-code", cfg.AuthHandler.ResendCode)
    api.POST("/auth/login", cfg.AuthHandler.Login)
    api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
  }

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/auth/logout", cfg.AuthHandler.Logout)

  //Me
  protected.GET("/me", cfg.MeHandler.GetMe)
  protected.PATCH("/me", cfg.MeHandler.UpdateMe)
  protected.DELETE("/me", cfg.MeHandler.DeleteMe)

  //Study Kit Groups
  protected.POST("/study-kit-group", cfg.StudyKitGroupHandler.Create)
  protected.GET("/study-kit-group", cfg.StudyKitGroupHandler.List)
  protected.GET("/study-kit-group/:groupID", cfg.StudyKitGroupHandler.Get)
  protected.PATCH("/study-kit-group/:groupID", cfg.StudyKitGroupHandler.Update)
  protected.DELETE("/study-kit-group/:groupID", cfg.StudyKitGroupHandler.Delete)

  //Study Kits
  protected.POST("/study-kit", cfg.StudyKitHandler.Create)
  protected.GET("/study-kit", cfg.StudyKitHandler.List)
  protected.GET("/study-kit/:studyKitID", cfg.StudyKitHandler.Get)
  protected.GET("/study-kit/:studyKitID/overview", cfg.StudyKitHandler.Overview)
  protected.PATCH("/study-kit/:studyKitID", cfg.StudyKitHandler.Update)
  protected.DELETE("/study-kit/:studyKitID", cfg.StudyKitHandler.Delete)

  //Conversations + Generation
  protected.POST("/conversation/start", cfg.ConversationHandler.Start)
  protected.GET("/conversation/list", cfg.ConversationHandler.List)
  protected.GET("/conversation/:conversationID", cfg.ConversationHandler.Get)
  protected.GET("/conversation/:conversationID/history", cfg.ConversationHandler.History)
  protected.DELETE("/conversation/:conversationID", cfg.ConversationHandler.Delete)
  protected.POST("/conversation/:conversationID/message", cfg.ConversationHandler.SendMessage)
  protected.POST("/conversation/:conversationID/quiz", cfg.ConversationHandler.GenerateQuiz)
  protected.POST("/conversation/:conversationID/flashcard", cfg.ConversationHandler.GenerateFlashcards)
  protected.POST("/conversation/:conversationID/video", cfg.ConversationHandler.GenerateVideo)

  //Quizzes
  protected.POST("/quiz", cfg.QuizHandler.Create)
  protected.GET("/quiz", cfg.QuizHandler.List)
  protected.GET("/quiz/:quizID", cfg.QuizHandler.Get)
  protected.PATCH("/quiz/:quizID", cfg.QuizHandler.Update)
  protected.DELETE("/quiz/:quizID", cfg.QuizHandler.Delete)
  protected.PATCH("/quiz/question/:questionID", cfg.QuizHandler.UpdateQuestion)
  protected.DELETE("/quiz/question/:questionID", cfg.QuizHandler.DeleteQuestion)
  protected.PATCH("/quiz/answer/:answerID", cfg.QuizHandler.UpdateAnswer)
  protected.DELETE("/quiz/answer/:answerID", cfg.QuizHandler.DeleteAnswer)

  //Flashcards
  protected.POST("/flashcard", cfg.FlashcardHandler.Create)
  protected.GET("/flashcard", cfg.FlashcardHandler.List)
  protected.PATCH("/flashcard/:flashcardID", cfg.FlashcardHandler.Update)
  protected.DELETE("/flashcard/:flashcardID", cfg.FlashcardHandler.Delete)

  //Videos
  protected.GET("/video", cfg.VideoHandler.List)
  protected.GET("/video/:videoID", cfg.VideoHandler.Get)
  protected.PATCH("/video/:videoID", cfg.VideoHandler.Update)
  protected.DELETE("/video/:videoID", cfg.VideoHandler.Delete)
  protected.POST("/video/:videoID/like", cfg.VideoHandler.Like)
  protected.DELETE("/video/:videoID/like", cfg.VideoHandler.Unlike)
  protected.POST("/video/:videoID/comment", cfg.VideoHandler.AddComment)
  protected.GET("/video/:videoID/comment", cfg.VideoHandler.ListComments)
  protected.PATCH("/video/comment/:commentID", cfg.VideoHandler.UpdateComment)
  protected.DELETE("/video/comment/:commentID", cfg.VideoHandler.DeleteComment)

  return router
}
