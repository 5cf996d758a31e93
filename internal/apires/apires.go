package apires

import (
  "github.com/gin-gonic/gin"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
)

// Envelope is the uniform response body. The HTTP status always mirrors Code.
type Envelope struct {
  Success bool        `json:"success"`
  Message string      `json:"message"`
  Data    interface{} `json:"data,omitempty"`
  Error   string      `json:"error,omitempty"`
  Code    int         `json:"code"`
}

func OK(c *gin.Context, code int, message string, data interface{}) {
  c.JSON(code, Envelope{
    Success: true,
    Message: message,
    Data:    data,
    Code:    code,
  })
}

func Fail(c *gin.Context, err error) {
  apiErr := errordata.From(err)
  env := Envelope{
    Success: false,
    Message: apiErr.Message,
    Code:    apiErr.Code,
  }
  if apiErr.Err != nil {
    env.Error = apiErr.Err.Error()
  }
  c.JSON(apiErr.Code, env)
}
