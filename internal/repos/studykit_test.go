package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

func TestStudyKitRepoFullDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	studyKitRepo := NewStudyKitRepo(db, testutil.Logger(t))
	quizRepo := NewQuizRepo(db, testutil.Logger(t))
	flashcardRepo := NewFlashcardRepo(db, testutil.Logger(t))
	videoRepo := NewVideoRepo(db, testutil.Logger(t))
	messageRepo := NewConversationMessageRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)

	quiz := &types.Quiz{
		StudyKitID: kit.ID,
		Title:      "quiz",
		Questions: []types.QuizQuestion{
			{
				QuestionText: "2 + 2?",
				QuestionType: "multiple_choice",
				Answers: []types.QuizAnswer{
					{AnswerText: "4", IsCorrect: true},
					{AnswerText: "5", IsCorrect: false},
				},
			},
		},
	}
	if _, err := quizRepo.CreateWithQuestions(ctx, nil, quiz); err != nil {
		t.Fatalf("CreateWithQuestions: %v", err)
	}
	if _, err := flashcardRepo.Create(ctx, nil, []*types.Flashcard{
		{StudyKitID: kit.ID, FrontText: "front", BackText: "back"},
	}); err != nil {
		t.Fatalf("Create flashcards: %v", err)
	}
	video := testutil.SeedVideo(t, ctx, db, kit.ID, owner.ID)
	if err := videoRepo.Like(ctx, nil, video.ID, owner.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	conversation := testutil.SeedConversation(t, ctx, db, kit.ID, owner.ID)
	if err := messageRepo.AppendExchange(ctx, nil,
		&types.ConversationMessage{ConversationID: conversation.ID, Speaker: types.SpeakerUser, MessageText: "q"},
		&types.ConversationMessage{ConversationID: conversation.ID, Speaker: types.SpeakerAssistant, MessageText: "a"},
	); err != nil {
		t.Fatalf("AppendExchange: %v", err)
	}

	if err := studyKitRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{kit.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}

	counts := map[string]interface{}{
		"quiz":                 &types.Quiz{},
		"quiz_question":        &types.QuizQuestion{},
		"quiz_answer":          &types.QuizAnswer{},
		"flashcard":            &types.Flashcard{},
		"video":                &types.Video{},
		"video_like":           &types.VideoLike{},
		"conversation":         &types.Conversation{},
		"conversation_message": &types.ConversationMessage{},
		"study_kit":            &types.StudyKit{},
	}
	for table, model := range counts {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Fatalf("%s rows remaining after kit delete: %d", table, n)
		}
	}

	kits, err := studyKitRepo.GetByGroupIDs(ctx, nil, []uuid.UUID{group.ID})
	if err != nil {
		t.Fatalf("GetByGroupIDs: %v", err)
	}
	if len(kits) != 0 {
		t.Fatalf("group should have no kits left, got %d", len(kits))
	}
}

func TestStudyKitRepoGetWithContent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	studyKitRepo := NewStudyKitRepo(db, testutil.Logger(t))
	quizRepo := NewQuizRepo(db, testutil.Logger(t))
	flashcardRepo := NewFlashcardRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)

	quiz := &types.Quiz{
		StudyKitID: kit.ID,
		Title:      "quiz",
		Questions: []types.QuizQuestion{
			{
				QuestionText: "capital of France?",
				QuestionType: "multiple_choice",
				Answers: []types.QuizAnswer{
					{AnswerText: "Paris", IsCorrect: true},
					{AnswerText: "Lyon", IsCorrect: false},
				},
			},
		},
	}
	if _, err := quizRepo.CreateWithQuestions(ctx, nil, quiz); err != nil {
		t.Fatalf("CreateWithQuestions: %v", err)
	}
	if _, err := flashcardRepo.Create(ctx, nil, []*types.Flashcard{
		{StudyKitID: kit.ID, FrontText: "front", BackText: "back"},
		{StudyKitID: kit.ID, FrontText: "front2", BackText: "back2"},
	}); err != nil {
		t.Fatalf("Create flashcards: %v", err)
	}
	testutil.SeedVideo(t, ctx, db, kit.ID, owner.ID)

	loaded, err := studyKitRepo.GetWithContentByID(ctx, nil, kit.ID)
	if err != nil {
		t.Fatalf("GetWithContentByID: %v", err)
	}
	if len(loaded.Quizzes) != 1 {
		t.Fatalf("quizzes = %d, want 1", len(loaded.Quizzes))
	}
	if len(loaded.Quizzes[0].Questions) != 1 || len(loaded.Quizzes[0].Questions[0].Answers) != 2 {
		t.Fatalf("quiz content not preloaded")
	}
	if len(loaded.Flashcards) != 2 {
		t.Fatalf("flashcards = %d, want 2", len(loaded.Flashcards))
	}
	if len(loaded.Videos) != 1 {
		t.Fatalf("videos = %d, want 1", len(loaded.Videos))
	}
}
