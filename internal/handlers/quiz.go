package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type QuizHandler struct {
  quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
  return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Create(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    StudyKitID string `json:"studyKitId"`
    services.QuizInput
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
  quiz, err := qh.quizService.CreateQuiz(c.Request.Context(), userID, kitID, req.QuizInput)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Quiz created successfully", quiz)
}

func (qh *QuizHandler) List(c *gin.Context) {
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
  quizzes, err := qh.quizService.ListQuizzes(c.Request.Context(), userID, kitID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quizzes fetched successfully", quizzes)
}

func (qh *QuizHandler) Get(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  quizID, err := parseIDParam(c, "quizID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  quiz, err := qh.quizService.GetQuiz(c.Request.Context(), userID, quizID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz fetched successfully", quiz)
}

func (qh *QuizHandler) Update(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  quizID, err := parseIDParam(c, "quizID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Title       *string `json:"title"`
    Description *string `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  quiz, err := qh.quizService.UpdateQuiz(c.Request.Context(), userID, quizID, req.Title, req.Description)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz updated successfully", quiz)
}

func (qh *QuizHandler) Delete(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  quizID, err := parseIDParam(c, "quizID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := qh.quizService.DeleteQuiz(c.Request.Context(), userID, quizID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz deleted successfully", nil)
}

func (qh *QuizHandler) UpdateQuestion(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  questionID, err := parseIDParam(c, "questionID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    QuestionText *string `json:"questionText"`
    QuestionType *string `json:"questionType"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  question, err := qh.quizService.UpdateQuestion(c.Request.Context(), userID, questionID, req.QuestionText, req.QuestionType)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz question updated successfully", question)
}

func (qh *QuizHandler) DeleteQuestion(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  questionID, err := parseIDParam(c, "questionID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := qh.quizService.DeleteQuestion(c.Request.Context(), userID, questionID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz question deleted successfully", nil)
}

func (qh *QuizHandler) UpdateAnswer(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  answerID, err := parseIDParam(c, "answerID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    AnswerText *string `json:"answerText"`
    IsCorrect  *bool   `json:"isCorrect"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  answer, err := qh.quizService.UpdateAnswer(c.Request.Context(), userID, answerID, req.AnswerText, req.IsCorrect)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz answer updated successfully", answer)
}

func (qh *QuizHandler) DeleteAnswer(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  answerID, err := parseIDParam(c, "answerID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := qh.quizService.DeleteAnswer(c.Request.Context(), userID, answerID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Quiz answer deleted successfully", nil)
}
