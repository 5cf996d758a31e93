package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/requestdata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  user, err := ah.authService.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "User registered successfully. Check your email for a verification code.", user)
}

func (ah *AuthHandler) VerifyEmail(c *gin.Context) {
  var req struct {
    Email string `json:"email"`
    Code  string `json:"code"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  if err := ah.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Email verified successfully", nil)
}

func (ah *AuthHandler) ResendCode(c *gin.Context) {
  var req struct {
    Email string `json:"email"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  if err := ah.authService.ResendVerificationCode(c.Request.Context(), req.Email); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Verification code sent", nil)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  pair, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Logged in successfully", pair)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  var req struct {
    AccessToken  string `json:"accessToken"`
    RefreshToken string `json:"refreshToken"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  pair, err := ah.authService.Refresh(c.Request.Context(), req.AccessToken, req.RefreshToken)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Tokens refreshed successfully", pair)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.TokenString == "" {
    apires.Fail(c, errordata.Unauthorized("missing or invalid token"))
    return
  }
  if err := ah.authService.Logout(c.Request.Context(), rd.TokenString); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Logged out successfully", nil)
}
