package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ainstein-org/ainstein-backend/internal/logger"
)

func TestGeminiServiceGenerate(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "Halo! "}, {"text": "Ada yang bisa saya bantu?"}]}}
			]
		}`))
	}))
	defer server.Close()

	svc := NewGeminiServiceWithClient(logger.NewNop(), server.Client(), server.URL, "test-key", "")

	text, err := svc.Generate(context.Background(), GenerateRequest{
		SystemInstruction: "You are a tutor.",
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: "halo"}}},
		},
		Temperature:     0.7,
		MaxOutputTokens: 1000,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Halo! Ada yang bisa saya bantu?" {
		t.Fatalf("text = %q", text)
	}

	if want := "/v1beta/models/" + DefaultGeminiModel + ":generateContent"; gotPath != want {
		t.Fatalf("path = %q, want %q", gotPath, want)
	}
	if _, ok := gotBody["system_instruction"]; !ok {
		t.Fatalf("request body missing system_instruction")
	}
	cfg, ok := gotBody["generationConfig"].(map[string]interface{})
	if !ok {
		t.Fatalf("request body missing generationConfig")
	}
	if cfg["temperature"] != 0.7 {
		t.Fatalf("temperature = %v, want 0.7", cfg["temperature"])
	}
	if cfg["maxOutputTokens"] != float64(1000) {
		t.Fatalf("maxOutputTokens = %v, want 1000", cfg["maxOutputTokens"])
	}
}

func TestGeminiServiceGenerateNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	svc := NewGeminiServiceWithClient(logger.NewNop(), server.Client(), server.URL, "test-key", "")

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Contents: []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: "halo"}}}},
	})
	if err == nil {
		t.Fatalf("expected error on HTTP 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should carry the status code, got %v", err)
	}
}

func TestGeminiServiceGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	svc := NewGeminiServiceWithClient(logger.NewNop(), server.Client(), server.URL, "test-key", "")

	_, err := svc.Generate(context.Background(), GenerateRequest{
		Contents: []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: "halo"}}}},
	})
	if err == nil {
		t.Fatalf("expected error when no candidates come back")
	}
}
