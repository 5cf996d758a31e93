package middleware

import (
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/requestdata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLog := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractBearerToken(c)
    if tokenString == "" {
      abortUnauthorized(c)
      return
    }
    claims, err := am.authService.ParseToken(tokenString)
    if err != nil {
      am.log.Debug("Token did not parse", "error", err)
      abortUnauthorized(c)
      return
    }
    userID, err := uuid.Parse(claims.Subject)
    if err != nil || userID == uuid.Nil {
      abortUnauthorized(c)
      return
    }
    rd := &requestdata.RequestData{
      TokenString:  tokenString,
      RefreshToken: c.GetHeader("X-Refresh-Token"),
      UserID:       userID,
      Email:        claims.Email,
    }
    c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    c.Next()
  }
}

// abortUnauthorized rejects the request with the same envelope every
// handler emits.
func abortUnauthorized(c *gin.Context) {
  apires.Fail(c, errordata.Unauthorized("Missing or invalid token"))
  c.Abort()
}

func extractBearerToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
