package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
)

type fakeLambdaInvoker struct {
	output *lambda.InvokeOutput
	err    error
	calls  int
	input  *lambda.InvokeInput
}

func (f *fakeLambdaInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.calls++
	f.input = params
	return f.output, f.err
}

func lambdaPayload(t *testing.T, statusCode int, body interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	payload, err := json.Marshal(renderResponseEnvelope{StatusCode: statusCode, Body: string(raw)})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return payload
}

func TestRenderServiceHappyPath(t *testing.T) {
	invoker := &fakeLambdaInvoker{
		output: &lambda.InvokeOutput{
			Payload: lambdaPayload(t, 200, renderResponseBody{
				VideoURL:     "https://cdn.example.com/video.mp4",
				ThumbnailURL: "https://cdn.example.com/thumb.png",
				Duration:     42.5,
			}),
		},
	}
	svc := NewRenderServiceWithInvoker(testutil.Logger(t), invoker, "render-fn")

	result, err := svc.Render(context.Background(), "from manim import *")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if invoker.calls != 1 {
		t.Fatalf("invoker calls = %d, want 1", invoker.calls)
	}
	if got := *invoker.input.FunctionName; got != "render-fn" {
		t.Fatalf("function name = %q", got)
	}
	var req renderRequestPayload
	if err := json.Unmarshal(invoker.input.Payload, &req); err != nil {
		t.Fatalf("unmarshal request payload: %v", err)
	}
	if req.Code != "from manim import *" {
		t.Fatalf("request code = %q", req.Code)
	}
	if result.VideoURL != "https://cdn.example.com/video.mp4" {
		t.Fatalf("video url = %q", result.VideoURL)
	}
	if result.DurationSeconds != 42.5 {
		t.Fatalf("duration = %v", result.DurationSeconds)
	}
}

func TestRenderServiceFunctionError(t *testing.T) {
	fnErr := "Unhandled"
	invoker := &fakeLambdaInvoker{
		output: &lambda.InvokeOutput{
			FunctionError: &fnErr,
			Payload:       []byte(`{"errorMessage":"boom"}`),
		},
	}
	svc := NewRenderServiceWithInvoker(testutil.Logger(t), invoker, "render-fn")

	_, err := svc.Render(context.Background(), "print('hi')")
	assertCode(t, err, http.StatusInternalServerError)
}

func TestRenderServiceNon200Envelope(t *testing.T) {
	invoker := &fakeLambdaInvoker{
		output: &lambda.InvokeOutput{
			Payload: lambdaPayload(t, 500, map[string]string{"error": "render crashed"}),
		},
	}
	svc := NewRenderServiceWithInvoker(testutil.Logger(t), invoker, "render-fn")

	_, err := svc.Render(context.Background(), "print('hi')")
	assertCode(t, err, http.StatusInternalServerError)
}

func TestClampCounts(t *testing.T) {
	if got := clampQuestionCount(0); got != defaultQuestionCount {
		t.Fatalf("clampQuestionCount(0) = %d", got)
	}
	if got := clampQuestionCount(100); got != maxQuestionCount {
		t.Fatalf("clampQuestionCount(100) = %d", got)
	}
	if got := clampQuestionCount(7); got != 7 {
		t.Fatalf("clampQuestionCount(7) = %d", got)
	}
	if got := clampCardCount(-3); got != defaultCardCount {
		t.Fatalf("clampCardCount(-3) = %d", got)
	}
	if got := clampCardCount(200); got != maxCardCount {
		t.Fatalf("clampCardCount(200) = %d", got)
	}
}
