package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type MeHandler struct {
  meService services.MeService
}

func NewMeHandler(meService services.MeService) *MeHandler {
  return &MeHandler{meService: meService}
}

func (mh *MeHandler) GetMe(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  user, err := mh.meService.GetMe(c.Request.Context(), userID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "User fetched successfully", user)
}

func (mh *MeHandler) UpdateMe(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Name     *string `json:"name"`
    Bio      *string `json:"bio"`
    ImageURL *string `json:"imageUrl"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  user, err := mh.meService.UpdateMe(c.Request.Context(), userID, req.Name, req.Bio, req.ImageURL)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "User updated successfully", user)
}

func (mh *MeHandler) DeleteMe(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := mh.meService.DeleteMe(c.Request.Context(), userID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "User deleted successfully", nil)
}
