package requestdata

import (
  "context"

  "github.com/google/uuid"
)

type key struct{}

var requestDataKey key

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// RequestData carries the authenticated principal for the life of one
// request. Handlers read it from context and pass the user id explicitly
// into services; nothing below the handler layer reaches into gin or
// ambient context for the caller's identity.
type RequestData struct {
  TokenString     string
  RefreshToken    string
  UserID          uuid.UUID
  Email           string
}
