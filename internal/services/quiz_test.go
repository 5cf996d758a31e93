package services

import (
	"context"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/ainstein-org/ainstein-backend/internal/repos"
	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

type quizFixture struct {
	svc      QuizService
	db       *gorm.DB
	owner    *types.User
	stranger *types.User
	kit      *types.StudyKit
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	stranger := testutil.SeedUser(t, ctx, db, "stranger@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)

	svc := NewQuizService(db, log, repos.NewQuizRepo(db, log), repos.NewStudyKitRepo(db, log))
	return &quizFixture{svc: svc, db: db, owner: owner, stranger: stranger, kit: kit}
}

func (fx *quizFixture) createQuiz(t *testing.T) *types.Quiz {
	t.Helper()
	quiz, err := fx.svc.CreateQuiz(context.Background(), fx.owner.ID, fx.kit.ID, QuizInput{
		Title: "Fotosintesis",
		Questions: []QuestionInput{
			{
				QuestionText: "Di mana fotosintesis terjadi?",
				QuestionType: "multiple_choice",
				Answers: []AnswerInput{
					{AnswerText: "Kloroplas", IsCorrect: true},
					{AnswerText: "Mitokondria", IsCorrect: false},
				},
			},
			{
				QuestionText: "Apa hasil utama fotosintesis?",
				QuestionType: "multiple_choice",
				Answers: []AnswerInput{
					{AnswerText: "Glukosa", IsCorrect: true},
					{AnswerText: "Protein", IsCorrect: false},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	return quiz
}

func TestQuizServiceOwnershipSplit(t *testing.T) {
	fx := newQuizFixture(t)
	ctx := context.Background()
	quiz := fx.createQuiz(t)

	// The owner reaches the quiz, a stranger sees a 403.
	if _, err := fx.svc.GetQuiz(ctx, fx.owner.ID, quiz.ID); err != nil {
		t.Fatalf("GetQuiz as owner: %v", err)
	}
	_, err := fx.svc.GetQuiz(ctx, fx.stranger.ID, quiz.ID)
	assertCode(t, err, http.StatusForbidden)

	// Listing under the stranger's view of the kit is a 404.
	_, err = fx.svc.ListQuizzes(ctx, fx.stranger.ID, fx.kit.ID)
	assertCode(t, err, http.StatusNotFound)
}

func TestQuizServiceNestedQuestionEdit(t *testing.T) {
	fx := newQuizFixture(t)
	ctx := context.Background()
	quiz := fx.createQuiz(t)
	question := quiz.Questions[0]

	text := "Organel mana yang melakukan fotosintesis?"
	updated, err := fx.svc.UpdateQuestion(ctx, fx.owner.ID, question.ID, &text, nil)
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.QuestionText != text {
		t.Fatalf("question text = %q", updated.QuestionText)
	}

	// Nested edits carry the quiz's 403 split for foreign users.
	_, err = fx.svc.UpdateQuestion(ctx, fx.stranger.ID, question.ID, &text, nil)
	assertCode(t, err, http.StatusForbidden)

	if err := fx.svc.DeleteQuestion(ctx, fx.owner.ID, question.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	var answers int64
	if err := fx.db.Model(&types.QuizAnswer{}).Where("question_id = ?", question.ID).Count(&answers).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answers != 0 {
		t.Fatalf("answer rows = %d after question delete, want 0", answers)
	}

	remaining, err := fx.svc.GetQuiz(ctx, fx.owner.ID, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if len(remaining.Questions) != 1 {
		t.Fatalf("question count = %d, want 1", len(remaining.Questions))
	}
}

func TestQuizServiceNestedAnswerEdit(t *testing.T) {
	fx := newQuizFixture(t)
	ctx := context.Background()
	quiz := fx.createQuiz(t)
	answer := quiz.Questions[0].Answers[1]

	correct := true
	updated, err := fx.svc.UpdateAnswer(ctx, fx.owner.ID, answer.ID, nil, &correct)
	if err != nil {
		t.Fatalf("UpdateAnswer: %v", err)
	}
	if !updated.IsCorrect {
		t.Fatalf("answer should be marked correct")
	}

	if err := fx.svc.DeleteAnswer(ctx, fx.owner.ID, answer.ID); err != nil {
		t.Fatalf("DeleteAnswer: %v", err)
	}
	var n int64
	if err := fx.db.Model(&types.QuizAnswer{}).Where("id = ?", answer.ID).Count(&n).Error; err != nil {
		t.Fatalf("count answer: %v", err)
	}
	if n != 0 {
		t.Fatalf("answer row still present after delete")
	}

	err = fx.svc.DeleteAnswer(ctx, fx.owner.ID, answer.ID)
	assertCode(t, err, http.StatusNotFound)
}
