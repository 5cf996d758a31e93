package errordata

import (
  "errors"
  "fmt"
  "net/http"
)

// APIError is the failure half of the response envelope. Every service
// returns one of these (or nil) so route handlers can pass the code straight
// through without guessing at status mapping.
type APIError struct {
  Code    int
  Message string
  Err     error
}

func (e *APIError) Error() string {
  if e.Err != nil {
    return fmt.Sprintf("%s: %v", e.Message, e.Err)
  }
  return e.Message
}

func (e *APIError) Unwrap() error {
  return e.Err
}

func NotFound(message string) *APIError {
  return &APIError{Code: http.StatusNotFound, Message: message}
}

func Forbidden(message string) *APIError {
  return &APIError{Code: http.StatusForbidden, Message: message}
}

func BadRequest(message string) *APIError {
  return &APIError{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *APIError {
  return &APIError{Code: http.StatusUnauthorized, Message: message}
}

func Internal(message string, err error) *APIError {
  return &APIError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// FormatError marks model output that failed to parse as the demanded
// structure. Same 500 class as Internal but kept distinct for logging.
func FormatError(message string, err error) *APIError {
  return &APIError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// Upstream marks a generation or render provider failure.
func Upstream(message string, err error) *APIError {
  return &APIError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// From returns err as an *APIError, wrapping unclassified errors as a 500.
func From(err error) *APIError {
  if err == nil {
    return nil
  }
  var apiErr *APIError
  if errors.As(err, &apiErr) {
    return apiErr
  }
  return Internal("unexpected error", err)
}
