package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type StudyKitHandler struct {
  studyKitService services.StudyKitService
}

func NewStudyKitHandler(studyKitService services.StudyKitService) *StudyKitHandler {
  return &StudyKitHandler{studyKitService: studyKitService}
}

func (kh *StudyKitHandler) Create(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    GroupID     string  `json:"groupId"`
    Title       string  `json:"title"`
    Description *string `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  groupID, err := uuid.Parse(req.GroupID)
  if err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid groupId"))
    return
  }
  kit, err := kh.studyKitService.CreateStudyKit(c.Request.Context(), userID, groupID, req.Title, req.Description)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Study Kit created successfully", kit)
}

func (kh *StudyKitHandler) List(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  // An optional groupId query narrows the listing to one group.
  if rawGroupID := c.Query("groupId"); rawGroupID != "" {
    groupID, err := uuid.Parse(rawGroupID)
    if err != nil {
      apires.Fail(c, errordata.BadRequest("Invalid groupId parameter"))
      return
    }
    kits, err := kh.studyKitService.ListStudyKitsByGroup(c.Request.Context(), userID, groupID)
    if err != nil {
      apires.Fail(c, err)
      return
    }
    apires.OK(c, http.StatusOK, "Study Kits fetched successfully", kits)
    return
  }
  kits, err := kh.studyKitService.ListStudyKits(c.Request.Context(), userID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kits fetched successfully", kits)
}

func (kh *StudyKitHandler) Get(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  kitID, err := parseIDParam(c, "studyKitID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  kit, err := kh.studyKitService.GetStudyKit(c.Request.Context(), userID, kitID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit fetched successfully", kit)
}

func (kh *StudyKitHandler) Overview(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  kitID, err := parseIDParam(c, "studyKitID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  overview, err := kh.studyKitService.GetOverview(c.Request.Context(), userID, kitID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit overview fetched successfully", overview)
}

func (kh *StudyKitHandler) Update(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  kitID, err := parseIDParam(c, "studyKitID")
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
  kit, err := kh.studyKitService.UpdateStudyKit(c.Request.Context(), userID, kitID, req.Title, req.Description)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit updated successfully", kit)
}

func (kh *StudyKitHandler) Delete(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  kitID, err := parseIDParam(c, "studyKitID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := kh.studyKitService.DeleteStudyKit(c.Request.Context(), userID, kitID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Study Kit deleted successfully", nil)
}
