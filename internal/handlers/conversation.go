package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type ConversationHandler struct {
  conversationService services.ConversationService
  generationService   services.GenerationService
}

func NewConversationHandler(
  conversationService services.ConversationService,
  generationService services.GenerationService,
) *ConversationHandler {
  return &ConversationHandler{
    conversationService: conversationService,
    generationService:   generationService,
  }
}

func (ch *ConversationHandler) Start(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    StudyKitID string `json:"studyKitId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  kitID, err := uuid.Parse(req.StudyKitID)
  if err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid studyKitId"))
    return
  }
  conversation, err := ch.conversationService.StartConversation(c.Request.Context(), userID, kitID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Conversation started successfully", conversation)
}

func (ch *ConversationHandler) List(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversations, err := ch.conversationService.ListConversations(c.Request.Context(), userID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Conversations fetched successfully", conversations)
}

func (ch *ConversationHandler) Get(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  detail, err := ch.conversationService.GetConversation(c.Request.Context(), userID, conversationID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Conversation fetched successfully", detail)
}

func (ch *ConversationHandler) History(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  messages, err := ch.conversationService.GetHistory(c.Request.Context(), userID, conversationID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Conversation history fetched successfully", messages)
}

func (ch *ConversationHandler) Delete(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := ch.conversationService.DeleteConversation(c.Request.Context(), userID, conversationID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Conversation deleted successfully", nil)
}

func (ch *ConversationHandler) SendMessage(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Message    string                       `json:"message"`
    Attachment *services.MessageAttachment  `json:"attachment"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  result, err := ch.generationService.SendMessage(c.Request.Context(), userID, conversationID, req.Message, req.Attachment)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Message sent successfully", result)
}

func (ch *ConversationHandler) GenerateQuiz(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Topic         string `json:"topic"`
    QuestionCount int    `json:"questionCount"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  result, err := ch.generationService.GenerateQuiz(c.Request.Context(), userID, conversationID, req.Topic, req.QuestionCount)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Quiz generated successfully", result)
}

func (ch *ConversationHandler) GenerateFlashcards(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Topic     string `json:"topic"`
    CardCount int    `json:"cardCount"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  result, err := ch.generationService.GenerateFlashcards(c.Request.Context(), userID, conversationID, req.Topic, req.CardCount)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Flashcards generated successfully", result)
}

func (ch *ConversationHandler) GenerateVideo(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  conversationID, err := parseIDParam(c, "conversationID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req services.VideoGenerationInput
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  result, err := ch.generationService.GenerateVideo(c.Request.Context(), userID, conversationID, req)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Video generated successfully", result)
}
