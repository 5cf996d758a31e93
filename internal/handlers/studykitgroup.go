package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type StudyKitGroupHandler struct {
  groupService services.StudyKitGroupService
}

func NewStudyKitGroupHandler(groupService services.StudyKitGroupService) *StudyKitGroupHandler {
  return &StudyKitGroupHandler{groupService: groupService}
}

func (gh *StudyKitGroupHandler) Create(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Name        string  `json:"name"`
    Description *string `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  group, err := gh.groupService.CreateGroup(c.Request.Context(), userID, req.Name, req.Description)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Study Kit Group created successfully", group)
}

func (gh *StudyKitGroupHandler) List(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  groups, err := gh.groupService.ListGroups(c.Request.Context(), userID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit Groups fetched successfully", groups)
}

func (gh *StudyKitGroupHandler) Get(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  groupID, err := parseIDParam(c, "groupID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  group, err := gh.groupService.GetGroup(c.Request.Context(), userID, groupID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit Group fetched successfully", group)
}

func (gh *StudyKitGroupHandler) Update(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  groupID, err := parseIDParam(c, "groupID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Name        *string `json:"name"`
    Description *string `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  group, err := gh.groupService.UpdateGroup(c.Request.Context(), userID, groupID, req.Name, req.Description)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit Group updated successfully", group)
}

func (gh *StudyKitGroupHandler) Delete(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  groupID, err := parseIDParam(c, "groupID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := gh.groupService.DeleteGroup(c.Request.Context(), userID, groupID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit Group deleted successfully", nil)
}
