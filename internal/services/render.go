package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"

  awsconfig "github.com/aws/aws-sdk-go-v2/config"
  "github.com/aws/aws-sdk-go-v2/service/lambda"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
)

// RenderService is the external render port: hand over a script, wait
// inline for the finished asset. A queue-backed implementation can slot in
// behind the same interface later.
type RenderService interface {
  Render(ctx context.Context, sourceCode string) (*RenderResult, error)
}

type RenderResult struct {
  VideoURL        string
  ThumbnailURL    string
  DurationSeconds float64
}

type lambdaInvoker interface {
  Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type renderService struct {
  log          *logger.Logger
  client       lambdaInvoker
  functionName string
}

func NewRenderService(ctx context.Context, log *logger.Logger) (RenderService, error) {
  serviceLog := log.With("service", "RenderService")
  cfg, err := awsconfig.LoadDefaultConfig(ctx)
  if err != nil {
    return nil, fmt.Errorf("Failed to load AWS config: %w", err)
  }
  functionName := os.Getenv("LAMBDA_FUNCTION_NAME")
  if functionName == "" {
    serviceLog.Warn("LAMBDA_FUNCTION_NAME not set; using fallback ainstein-dev")
    functionName = "ainstein-dev"
  }
  return &renderService{
    log:          serviceLog,
    client:       lambda.NewFromConfig(cfg),
    functionName: functionName,
  }, nil
}

// NewRenderServiceWithInvoker wires an explicit invoker. Tests use it to
// stub out the lambda call.
func NewRenderServiceWithInvoker(log *logger.Logger, client lambdaInvoker, functionName string) RenderService {
  serviceLog := log.With("service", "RenderService")
  return &renderService{
    log:          serviceLog,
    client:       client,
    functionName: functionName,
  }
}

type renderRequestPayload struct {
  Code string `json:"code"`
}

type renderResponseEnvelope struct {
  StatusCode int    `json:"statusCode"`
  Body       string `json:"body"`
}

type renderResponseBody struct {
  VideoURL     string  `json:"videoUrl"`
  ThumbnailURL string  `json:"thumbnailUrl"`
  Duration     float64 `json:"duration"`
}

func (rs *renderService) Render(ctx context.Context, sourceCode string) (*RenderResult, error) {
  rs.log.Info("Starting Render now...", "function", rs.functionName, "scriptLength", len(sourceCode))

  payload, err := json.Marshal(renderRequestPayload{Code: sourceCode})
  if err != nil {
    rs.log.Error("Failed to marshal render payload", "error", err)
    return nil, err
  }

  out, err := rs.client.Invoke(ctx, &lambda.InvokeInput{
    FunctionName: &rs.functionName,
    Payload:      payload,
  })
  if err != nil {
    rs.log.Error("Render function invocation failed", "error", err)
    return nil, errordata.Upstream("Video rendering failed", err)
  }
  if out.FunctionError != nil {
    rs.log.Error("Render function reported an error", "functionError", *out.FunctionError, "payload", string(out.Payload))
    return nil, errordata.Upstream("Video rendering failed", fmt.Errorf("lambda function error: %s", *out.FunctionError))
  }

  var envelope renderResponseEnvelope
  if err := json.Unmarshal(out.Payload, &envelope); err != nil {
    rs.log.Error("Failed to unmarshal render response envelope", "error", err, "payload", string(out.Payload))
    return nil, errordata.Upstream("Video rendering failed", err)
  }
  if envelope.StatusCode != 200 {
    rs.log.Error("Render function responded with non-200", "statusCode", envelope.StatusCode, "body", envelope.Body)
    return nil, errordata.Upstream("Video rendering failed", fmt.Errorf("render status %d: %s", envelope.StatusCode, envelope.Body))
  }

  var body renderResponseBody
  if err := json.Unmarshal([]byte(envelope.Body), &body); err != nil {
    rs.log.Error("Failed to unmarshal render response body", "error", err, "body", envelope.Body)
    return nil, errordata.Upstream("Video rendering failed", err)
  }

  result := &RenderResult{
    VideoURL:        body.VideoURL,
    ThumbnailURL:    body.ThumbnailURL,
    DurationSeconds: body.Duration,
  }
  rs.log.Info("Render completed successfully :)", "videoURL", result.VideoURL, "duration", result.DurationSeconds)
  return result, nil
}
