package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ainstein-org/ainstein-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:            uuid.New(),
		Name:          "Test User",
		Email:         email,
		Password:      "pw",
		EmailVerified: true,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedGroup(tb testing.TB, ctx context.Context, db *gorm.DB, userID uuid.UUID) *types.StudyKitGroup {
	tb.Helper()
	g := &types.StudyKitGroup{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "group",
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed group: %v", err)
	}
	return g
}

func SeedStudyKit(tb testing.TB, ctx context.Context, db *gorm.DB, groupID uuid.UUID, userID uuid.UUID) *types.StudyKit {
	tb.Helper()
	k := &types.StudyKit{
		ID:      uuid.New(),
		GroupID: groupID,
		UserID:  userID,
		Title:   "kit",
	}
	if err := db.WithContext(ctx).Create(k).Error; err != nil {
		tb.Fatalf("seed study kit: %v", err)
	}
	return k
}

func SeedConversation(tb testing.TB, ctx context.Context, db *gorm.DB, kitID uuid.UUID, userID uuid.UUID) *types.Conversation {
	tb.Helper()
	started := time.Now().UTC().Add(-time.Minute)
	c := &types.Conversation{
		ID:          uuid.New(),
		StudyKitID:  kitID,
		UserID:      userID,
		StartedAt:   started,
		LastUpdated: started,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed conversation: %v", err)
	}
	return c
}

func SeedVideo(tb testing.TB, ctx context.Context, db *gorm.DB, kitID uuid.UUID, userID uuid.UUID) *types.Video {
	tb.Helper()
	v := &types.Video{
		ID:         uuid.New(),
		StudyKitID: kitID,
		UserID:     userID,
		Title:      "video",
		URL:        "https://cdn.example.com/v.mp4",
		UploadedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}
