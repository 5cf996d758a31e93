package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type FlashcardHandler struct {
  flashcardService services.FlashcardService
}

func NewFlashcardHandler(flashcardService services.FlashcardService) *FlashcardHandler {
  return &FlashcardHandler{flashcardService: flashcardService}
}

func (fh *FlashcardHandler) Create(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    StudyKitID string                    `json:"studyKitId"`
    Cards      []services.FlashcardInput `json:"cards"`
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
  cards, err := fh.flashcardService.CreateFlashcards(c.Request.Context(), userID, kitID, req.Cards)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Flashcards created successfully", cards)
}

func (fh *FlashcardHandler) List(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  kitID, err := uuid.Parse(c.Query("studyKitId"))
  if err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid studyKitId parameter"))
    return
  }
  cards, err := fh.flashcardService.ListFlashcards(c.Request.Context(), userID, kitID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Flashcards fetched successfully", cards)
}

func (fh *FlashcardHandler) Update(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  cardID, err := parseIDParam(c, "flashcardID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    FrontText *string `json:"frontText"`
    BackText  *string `json:"backText"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  card, err := fh.flashcardService.UpdateFlashcard(c.Request.Context(), userID, cardID, req.FrontText, req.BackText)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Flashcard updated successfully", card)
}

func (fh *FlashcardHandler) Delete(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  cardID, err := parseIDParam(c, "flashcardID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := fh.flashcardService.DeleteFlashcard(c.Request.Context(), userID, cardID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Flashcard deleted successfully", nil)
}
