package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/ainstein-org/ainstein-backend/internal/logger"
)

const DefaultGeminiModel = "gemini-2.0-flash-001"

// TextGenerator is the hosted-model port. Everything downstream of prompt
// assembly talks to this, so pipelines can run against a fake in tests.
type TextGenerator interface {
  Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type GenerateRequest struct {
  SystemInstruction string
  Contents          []GeminiContent
  Temperature       float64
  MaxOutputTokens   int
}

type GeminiContent struct {
  Role  string       `json:"role,omitempty"`
  Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
  Text       string            `json:"text,omitempty"`
  InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
  MimeType string `json:"mime_type"`
  Data     string `json:"data"`
}

type geminiService struct {
  log     *logger.Logger
  client  *http.Client
  baseURL string
  apiKey  string
  model   string
}

func NewGeminiService(log *logger.Logger) (TextGenerator, error) {
  serviceLog := log.With("service", "GeminiService")
  apiKey := os.Getenv("GEMINI_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing GEMINI_API_KEY environment variable")
  }
  baseURL := os.Getenv("GEMINI_API_URL")
  if baseURL == "" {
    baseURL = "https://generativelanguage.googleapis.com"
  }
  model := os.Getenv("GEMINI_MODEL")
  if model == "" {
    model = DefaultGeminiModel
  }
  httpClient := &http.Client{
    Timeout: 90 * time.Second,
  }
  return &geminiService{
    log:     serviceLog,
    client:  httpClient,
    baseURL: baseURL,
    apiKey:  apiKey,
    model:   model,
  }, nil
}

// NewGeminiServiceWithClient wires an explicit http client and endpoint.
// Tests use it to point the service at a stub server.
func NewGeminiServiceWithClient(log *logger.Logger, client *http.Client, baseURL string, apiKey string, model string) TextGenerator {
  serviceLog := log.With("service", "GeminiService")
  if model == "" {
    model = DefaultGeminiModel
  }
  return &geminiService{
    log:     serviceLog,
    client:  client,
    baseURL: baseURL,
    apiKey:  apiKey,
    model:   model,
  }
}

type geminiRequestBody struct {
  SystemInstruction *GeminiContent         `json:"system_instruction,omitempty"`
  Contents          []GeminiContent        `json:"contents"`
  GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
  Temperature     float64 `json:"temperature"`
  MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponseBody struct {
  Candidates []struct {
    Content struct {
      Parts []struct {
        Text string `json:"text"`
      } `json:"parts"`
    } `json:"content"`
  } `json:"candidates"`
}

func (gs *geminiService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
  body := geminiRequestBody{
    Contents: req.Contents,
    GenerationConfig: geminiGenerationConfig{
      Temperature:     req.Temperature,
      MaxOutputTokens: req.MaxOutputTokens,
    },
  }
  if req.SystemInstruction != "" {
    body.SystemInstruction = &GeminiContent{
      Parts: []GeminiPart{{Text: req.SystemInstruction}},
    }
  }
  payload, err := json.Marshal(body)
  if err != nil {
    gs.log.Warn("failed to marshal gemini request body", "error", err)
    return "", err
  }

  reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", gs.baseURL, gs.model, gs.apiKey)
  httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
  if err != nil {
    gs.log.Warn("failed to build gemini request", "error", err)
    return "", err
  }
  httpReq.Header.Set("Content-Type", "application/json")

  resp, err := gs.client.Do(httpReq)
  if err != nil {
    gs.log.Warn("failed to call gemini", "error", err)
    return "", err
  }
  defer resp.Body.Close()

  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    bodyBytes, _ := io.ReadAll(resp.Body)
    gs.log.Warn("gemini responded with non-2xx", "statusCode", resp.StatusCode, "body", string(bodyBytes))
    return "", fmt.Errorf("gemini HTTP %d: %s", resp.StatusCode, string(bodyBytes))
  }
  bodyBytes, err := io.ReadAll(resp.Body)
  if err != nil {
    gs.log.Warn("failed to read gemini response body", "error", err)
    return "", err
  }
  var parsed geminiResponseBody
  if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
    gs.log.Warn("failed to unmarshal gemini response body", "error", err)
    return "", err
  }
  if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
    gs.log.Warn("gemini returned no candidates", "body", string(bodyBytes))
    return "", fmt.Errorf("gemini returned no candidates")
  }
  var sb strings.Builder
  for _, part := range parsed.Candidates[0].Content.Parts {
    sb.WriteString(part.Text)
  }
  text := sb.String()
  gs.log.Info("Gemini call success", "model", gs.model, "responseLength", len(text))
  return text, nil
}
