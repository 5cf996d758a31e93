package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/requestdata"
)

// principal pulls the authenticated user id out of the request context.
// RequireAuth guarantees it is set on protected routes.
func principal(c *gin.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    return uuid.Nil, errordata.Unauthorized("missing or invalid token")
  }
  return rd.UserID, nil
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    return uuid.Nil, errordata.BadRequest("Invalid " + name + " parameter")
  }
  return id, nil
}
