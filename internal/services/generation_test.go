package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ainstein-org/ainstein-backend/internal/errordata"
	"github.com/ainstein-org/ainstein-backend/internal/repos"
	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
	last  GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeRenderer struct {
	result *RenderResult
	err    error
	calls  int
}

func (f *fakeRenderer) Render(ctx context.Context, sourceCode string) (*RenderResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type generationFixture struct {
	db           *gorm.DB
	svc          GenerationService
	generator    *fakeGenerator
	renderer     *fakeRenderer
	owner        *types.User
	stranger     *types.User
	kit          *types.StudyKit
	conversation *types.Conversation
	messageRepo  repos.ConversationMessageRepo
	quizRepo     repos.QuizRepo
}

func newGenerationFixture(t *testing.T, generator *fakeGenerator, renderer *fakeRenderer) *generationFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	stranger := testutil.SeedUser(t, ctx, db, "stranger@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	conversation := testutil.SeedConversation(t, ctx, db, kit.ID, owner.ID)

	messageRepo := repos.NewConversationMessageRepo(db, log)
	quizRepo := repos.NewQuizRepo(db, log)
	svc := NewGenerationService(
		db, log,
		repos.NewConversationRepo(db, log),
		messageRepo,
		repos.NewStudyKitRepo(db, log),
		quizRepo,
		repos.NewFlashcardRepo(db, log),
		repos.NewVideoRepo(db, log),
		generator,
		renderer,
	)
	return &generationFixture{
		db:           db,
		svc:          svc,
		generator:    generator,
		renderer:     renderer,
		owner:        owner,
		stranger:     stranger,
		kit:          kit,
		conversation: conversation,
		messageRepo:  messageRepo,
		quizRepo:     quizRepo,
	}
}

func (fx *generationFixture) seedExchange(t *testing.T) {
	t.Helper()
	err := fx.messageRepo.AppendExchange(context.Background(), nil,
		&types.ConversationMessage{ConversationID: fx.conversation.ID, Speaker: types.SpeakerUser, MessageText: "jelaskan fotosintesis"},
		&types.ConversationMessage{ConversationID: fx.conversation.ID, Speaker: types.SpeakerAssistant, MessageText: "Fotosintesis adalah proses tumbuhan membuat makanan."},
	)
	if err != nil {
		t.Fatalf("seed exchange: %v", err)
	}
}

func assertCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", wantCode)
	}
	var apiErr *errordata.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Code != wantCode {
		t.Fatalf("code = %d, want %d (%v)", apiErr.Code, wantCode, err)
	}
}

func TestSendMessageRejectsForeignConversationBeforeModelCall(t *testing.T) {
	generator := &fakeGenerator{reply: "hello"}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})

	_, err := fx.svc.SendMessage(context.Background(), fx.stranger.ID, fx.conversation.ID, "hi", nil)
	assertCode(t, err, http.StatusNotFound)
	if generator.calls != 0 {
		t.Fatalf("model must not be called for a conversation the user does not own")
	}

	_, err = fx.svc.SendMessage(context.Background(), fx.owner.ID, uuid.New(), "hi", nil)
	assertCode(t, err, http.StatusNotFound)
	if generator.calls != 0 {
		t.Fatalf("model must not be called for a missing conversation")
	}
}

func TestSendMessagePersistsExchange(t *testing.T) {
	generator := &fakeGenerator{reply: "Fotosintesis mengubah cahaya menjadi energi."}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})

	result, err := fx.svc.SendMessage(context.Background(), fx.owner.ID, fx.conversation.ID, "jelaskan fotosintesis", nil)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if result.UserMessage.MessageText != "jelaskan fotosintesis" {
		t.Fatalf("user message text = %q", result.UserMessage.MessageText)
	}
	if result.AssistantMessage.MessageText != generator.reply {
		t.Fatalf("assistant message text = %q", result.AssistantMessage.MessageText)
	}

	history, err := fx.messageRepo.GetByConversationID(context.Background(), nil, fx.conversation.ID)
	if err != nil {
		t.Fatalf("GetByConversationID: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d messages, want 2", len(history))
	}

	// The outgoing turn carries history plus the new message as final turn.
	last := generator.last.Contents[len(generator.last.Contents)-1]
	if last.Role != "user" || last.Parts[0].Text != "jelaskan fotosintesis" {
		t.Fatalf("final model turn should be the new user message, got %+v", last)
	}
	if generator.last.SystemInstruction == "" {
		t.Fatalf("chat call must carry the tutor system instruction")
	}
}

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	generator := &fakeGenerator{reply: "hello"}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})

	_, err := fx.svc.SendMessage(context.Background(), fx.owner.ID, fx.conversation.ID, "   ", nil)
	assertCode(t, err, http.StatusBadRequest)
	if generator.calls != 0 {
		t.Fatalf("model must not be called for an empty message")
	}
}

func TestGenerateQuizRoundTrip(t *testing.T) {
	generator := &fakeGenerator{reply: "```json\n" + `{
		"title": "Kuis Fotosintesis",
		"description": "Menguji pemahaman fotosintesis",
		"questions": [
			{
				"questionText": "Apa hasil fotosintesis?",
				"questionType": "multiple_choice",
				"answers": [
					{"answerText": "Oksigen dan glukosa", "isCorrect": true},
					{"answerText": "Karbon dioksida", "isCorrect": false},
					{"answerText": "Nitrogen", "isCorrect": false}
				]
			},
			{
				"questionText": "Di organel mana fotosintesis terjadi?",
				"questionType": "multiple_choice",
				"answers": [
					{"answerText": "Kloroplas", "isCorrect": true},
					{"answerText": "Mitokondria", "isCorrect": false}
				]
			}
		]
	}` + "\n```"}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})
	fx.seedExchange(t)

	result, err := fx.svc.GenerateQuiz(context.Background(), fx.owner.ID, fx.conversation.ID, "", 2)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if result.Title != "Kuis Fotosintesis" || result.QuestionCount != 2 {
		t.Fatalf("result = %+v", result)
	}

	stored, err := fx.quizRepo.GetByID(context.Background(), nil, result.QuizID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.Questions) != 2 {
		t.Fatalf("stored questions = %d, want 2", len(stored.Questions))
	}
	if len(stored.Questions[0].Answers)+len(stored.Questions[1].Answers) != 5 {
		t.Fatalf("answer rows did not all land")
	}
	if stored.StudyKitID != fx.kit.ID {
		t.Fatalf("quiz landed under the wrong kit")
	}
}

func TestGenerateQuizUnparseableOutput(t *testing.T) {
	generator := &fakeGenerator{reply: "Maaf, saya tidak bisa membuat kuis sekarang."}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})
	fx.seedExchange(t)

	_, err := fx.svc.GenerateQuiz(context.Background(), fx.owner.ID, fx.conversation.ID, "", 5)
	assertCode(t, err, http.StatusInternalServerError)
}

func TestGenerateQuizRejectsAmbiguousCorrectAnswers(t *testing.T) {
	generator := &fakeGenerator{reply: `{
		"title": "Kuis",
		"questions": [
			{
				"questionText": "Pilih semua yang benar",
				"answers": [
					{"answerText": "A", "isCorrect": true},
					{"answerText": "B", "isCorrect": true}
				]
			}
		]
	}`}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})
	fx.seedExchange(t)

	_, err := fx.svc.GenerateQuiz(context.Background(), fx.owner.ID, fx.conversation.ID, "", 1)
	assertCode(t, err, http.StatusInternalServerError)
}

func TestGenerateQuizEmptyConversation(t *testing.T) {
	generator := &fakeGenerator{reply: "{}"}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})

	_, err := fx.svc.GenerateQuiz(context.Background(), fx.owner.ID, fx.conversation.ID, "", 5)
	assertCode(t, err, http.StatusBadRequest)
	if generator.calls != 0 {
		t.Fatalf("model must not be called for an empty conversation")
	}
}

func TestGenerateFlashcardsRoundTrip(t *testing.T) {
	generator := &fakeGenerator{reply: `[
		{"frontText": "Fotosintesis", "backText": "Proses tumbuhan membuat makanan dari cahaya"},
		{"frontText": "Kloroplas", "backText": "Organel tempat fotosintesis"},
		{"frontText": "Klorofil", "backText": "Pigmen hijau penyerap cahaya"}
	]`}
	fx := newGenerationFixture(t, generator, &fakeRenderer{})
	fx.seedExchange(t)

	result, err := fx.svc.GenerateFlashcards(context.Background(), fx.owner.ID, fx.conversation.ID, "", 3)
	if err != nil {
		t.Fatalf("GenerateFlashcards: %v", err)
	}
	if result.Count != 3 || len(result.FlashcardIDs) != 3 {
		t.Fatalf("result = %+v", result)
	}

	var n int64
	if err := fx.db.Model(&types.Flashcard{}).Where("study_kit_id = ?", fx.kit.ID).Count(&n).Error; err != nil {
		t.Fatalf("count flashcards: %v", err)
	}
	if n != 3 {
		t.Fatalf("stored flashcards = %d, want 3", n)
	}
}

func TestGenerateVideoRoundTrip(t *testing.T) {
	generator := &fakeGenerator{reply: "```python\nfrom manim import *\n\nclass Lesson(Scene):\n    def construct(self):\n        pass\n```"}
	renderer := &fakeRenderer{result: &RenderResult{
		VideoURL:        "https://cdn.example.com/lesson.mp4",
		ThumbnailURL:    "https://cdn.example.com/lesson.png",
		DurationSeconds: 42.5,
	}}
	fx := newGenerationFixture(t, generator, renderer)
	fx.seedExchange(t)

	result, err := fx.svc.GenerateVideo(context.Background(), fx.owner.ID, fx.conversation.ID, VideoGenerationInput{})
	if err != nil {
		t.Fatalf("GenerateVideo: %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("renderer calls = %d, want 1", renderer.calls)
	}
	if result.URL != renderer.result.VideoURL || result.DurationSeconds != 42.5 {
		t.Fatalf("result = %+v", result)
	}
	// No explicit title: the kit title feeds the default.
	if result.Title == "" {
		t.Fatalf("default title must be derived from the kit")
	}

	var stored types.Video
	if err := fx.db.Where("id = ?", result.VideoID).First(&stored).Error; err != nil {
		t.Fatalf("load stored video: %v", err)
	}
	if stored.StudyKitID != fx.kit.ID || stored.UserID != fx.owner.ID {
		t.Fatalf("video stored with wrong ownership: %+v", stored)
	}
}

func TestGenerateVideoRenderFailure(t *testing.T) {
	generator := &fakeGenerator{reply: "```python\nprint('hi')\n```"}
	renderer := &fakeRenderer{err: errordata.Upstream("Video rendering failed", errors.New("lambda timed out"))}
	fx := newGenerationFixture(t, generator, renderer)
	fx.seedExchange(t)

	_, err := fx.svc.GenerateVideo(context.Background(), fx.owner.ID, fx.conversation.ID, VideoGenerationInput{Title: "judul"})
	assertCode(t, err, http.StatusInternalServerError)

	var n int64
	if err := fx.db.Model(&types.Video{}).Count(&n).Error; err != nil {
		t.Fatalf("count videos: %v", err)
	}
	if n != 0 {
		t.Fatalf("no video row should exist after a render failure, got %d", n)
	}
}
