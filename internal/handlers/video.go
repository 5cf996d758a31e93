package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/ainstein-org/ainstein-backend/internal/apires"
  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/services"
)

type VideoHandler struct {
  videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService) *VideoHandler {
  return &VideoHandler{videoService: videoService}
}

func (vh *VideoHandler) List(c *gin.Context) {
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
  videos, err := vh.videoService.ListVideos(c.Request.Context(), userID, kitID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Videos fetched successfully", videos)
}

func (vh *VideoHandler) Get(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  video, err := vh.videoService.GetVideo(c.Request.Context(), userID, videoID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Video fetched successfully", video)
}

func (vh *VideoHandler) Update(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
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
  video, err := vh.videoService.UpdateVideo(c.Request.Context(), userID, videoID, req.Title, req.Description)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Video updated successfully", video)
}

func (vh *VideoHandler) Delete(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := vh.videoService.DeleteVideo(c.Request.Context(), userID, videoID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Video deleted successfully", nil)
}

func (vh *VideoHandler) Like(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  video, err := vh.videoService.LikeVideo(c.Request.Context(), userID, videoID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Video liked successfully", video)
}

func (vh *VideoHandler) Unlike(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  video, err := vh.videoService.UnlikeVideo(c.Request.Context(), userID, videoID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Video unliked successfully", video)
}

func (vh *VideoHandler) AddComment(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Comment string `json:"comment"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  comment, err := vh.videoService.AddComment(c.Request.Context(), userID, videoID, req.Comment)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusCreated, "Comment added successfully", comment)
}

func (vh *VideoHandler) ListComments(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  videoID, err := parseIDParam(c, "videoID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  comments, err := vh.videoService.ListComments(c.Request.Context(), userID, videoID)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Comments fetched successfully", comments)
}

func (vh *VideoHandler) UpdateComment(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  commentID, err := parseIDParam(c, "commentID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  var req struct {
    Comment string `json:"comment"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    apires.Fail(c, errordata.BadRequest("Invalid request body"))
    return
  }
  comment, err := vh.videoService.UpdateComment(c.Request.Context(), userID, commentID, req.Comment)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Comment updated successfully", comment)
}

func (vh *VideoHandler) DeleteComment(c *gin.Context) {
  userID, err := principal(c)
  if err != nil {
    apires.Fail(c, err)
    return
  }
  commentID, err := parseIDParam(c, "commentID")
  if err != nil {
    apires.Fail(c, err)
    return
  }
  if err := vh.videoService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
    apires.Fail(c, err)
    return
  }
  apires.OK(c, http.StatusOK, "Comment deleted successfully", nil)
}
