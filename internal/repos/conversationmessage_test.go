package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

func TestConversationMessageRepoAppendExchange(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	conversationRepo := NewConversationRepo(db, testutil.Logger(t))
	messageRepo := NewConversationMessageRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	conversation := testutil.SeedConversation(t, ctx, db, kit.ID, owner.ID)
	before := conversation.LastUpdated

	userMsg := &types.ConversationMessage{
		ConversationID: conversation.ID,
		Speaker:        types.SpeakerUser,
		MessageText:    "what is a derivative?",
	}
	assistantMsg := &types.ConversationMessage{
		ConversationID: conversation.ID,
		Speaker:        types.SpeakerAssistant,
		MessageText:    "A derivative measures the rate of change.",
	}
	if err := messageRepo.AppendExchange(ctx, nil, userMsg, assistantMsg); err != nil {
		t.Fatalf("AppendExchange: %v", err)
	}

	history, err := messageRepo.GetByConversationID(ctx, nil, conversation.ID)
	if err != nil {
		t.Fatalf("GetByConversationID: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d messages, want 2", len(history))
	}
	if history[0].Speaker != types.SpeakerUser || history[1].Speaker != types.SpeakerAssistant {
		t.Fatalf("history out of order: %s then %s", history[0].Speaker, history[1].Speaker)
	}
	if !history[1].Timestamp.After(history[0].Timestamp) {
		t.Fatalf("assistant timestamp must sort after user timestamp")
	}

	conversations, err := conversationRepo.GetByIDs(ctx, nil, []uuid.UUID{conversation.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("conversations = %d, want 1", len(conversations))
	}
	if !conversations[0].LastUpdated.After(before) {
		t.Fatalf("AppendExchange must bump last_updated")
	}
}

func TestConversationMessageRepoRecentHistory(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	messageRepo := NewConversationMessageRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	conversation := testutil.SeedConversation(t, ctx, db, kit.ID, owner.ID)

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 6; i++ {
		speaker := types.SpeakerUser
		if i%2 == 1 {
			speaker = types.SpeakerAssistant
		}
		msg := &types.ConversationMessage{
			ConversationID: conversation.ID,
			Speaker:        speaker,
			MessageText:    "message",
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := messageRepo.Create(ctx, nil, msg); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	recent, err := messageRepo.GetRecentByConversationID(ctx, nil, conversation.ID, 4)
	if err != nil {
		t.Fatalf("GetRecentByConversationID: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("recent = %d messages, want 4", len(recent))
	}
	// The window is the newest N messages, returned oldest first.
	for i := 1; i < len(recent); i++ {
		if recent[i].Timestamp.Before(recent[i-1].Timestamp) {
			t.Fatalf("recent history not in chronological order")
		}
	}
	if !recent[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("window should start at the third message, got %v", recent[0].Timestamp)
	}
}

func TestConversationStateOf(t *testing.T) {
	if got := types.StateOf(nil); got != types.ConversationStateEmpty {
		t.Fatalf("StateOf(nil) = %s, want empty", got)
	}

	userTurn := []*types.ConversationMessage{
		{Speaker: types.SpeakerUser, MessageText: "hi"},
	}
	if got := types.StateOf(userTurn); got != types.ConversationStateAwaitingReply {
		t.Fatalf("StateOf(user turn) = %s, want awaiting_reply", got)
	}

	exchange := append(userTurn, &types.ConversationMessage{
		Speaker: types.SpeakerAssistant, MessageText: "hello",
	})
	if got := types.StateOf(exchange); got != types.ConversationStateIdle {
		t.Fatalf("StateOf(exchange) = %s, want idle", got)
	}
}
