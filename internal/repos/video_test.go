package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

func TestVideoRepoLikes(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewVideoRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	other := testutil.SeedUser(t, ctx, db, "other@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	video := testutil.SeedVideo(t, ctx, db, kit.ID, owner.ID)

	likeCount := func() int {
		t.Helper()
		v, err := repo.GetByID(ctx, nil, video.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		return v.LikeCount
	}

	if err := repo.Like(ctx, nil, video.ID, owner.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if got := likeCount(); got != 1 {
		t.Fatalf("like count after first like = %d, want 1", got)
	}

	// Liking again from the same user must not move the counter.
	if err := repo.Like(ctx, nil, video.ID, owner.ID); err != nil {
		t.Fatalf("Like (repeat): %v", err)
	}
	if got := likeCount(); got != 1 {
		t.Fatalf("like count after repeat like = %d, want 1", got)
	}

	if err := repo.Like(ctx, nil, video.ID, other.ID); err != nil {
		t.Fatalf("Like (second user): %v", err)
	}
	if got := likeCount(); got != 2 {
		t.Fatalf("like count after second user = %d, want 2", got)
	}

	if err := repo.Unlike(ctx, nil, video.ID, owner.ID); err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if got := likeCount(); got != 1 {
		t.Fatalf("like count after unlike = %d, want 1", got)
	}

	// Unliking a video that was never liked (or already unliked) is a no-op.
	if err := repo.Unlike(ctx, nil, video.ID, owner.ID); err != nil {
		t.Fatalf("Unlike (repeat): %v", err)
	}
	if got := likeCount(); got != 1 {
		t.Fatalf("like count after repeat unlike = %d, want 1", got)
	}
}

func TestVideoRepoComments(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewVideoRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	video := testutil.SeedVideo(t, ctx, db, kit.ID, owner.ID)

	first, err := repo.CreateComment(ctx, nil, &types.VideoComment{
		VideoID: video.ID,
		UserID:  owner.ID,
		Comment: "first",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	second, err := repo.CreateComment(ctx, nil, &types.VideoComment{
		VideoID: video.ID,
		UserID:  owner.ID,
		Comment: "second",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	comments, err := repo.GetCommentsByVideoID(ctx, nil, video.ID)
	if err != nil {
		t.Fatalf("GetCommentsByVideoID: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(comments))
	}

	got, err := repo.GetCommentByID(ctx, nil, first.ID)
	if err != nil {
		t.Fatalf("GetCommentByID: %v", err)
	}
	if got.Comment != "first" {
		t.Fatalf("comment text = %q, want %q", got.Comment, "first")
	}

	if err := repo.FullDeleteCommentByID(ctx, nil, first.ID); err != nil {
		t.Fatalf("FullDeleteCommentByID: %v", err)
	}
	comments, err = repo.GetCommentsByVideoID(ctx, nil, video.ID)
	if err != nil {
		t.Fatalf("GetCommentsByVideoID: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != second.ID {
		t.Fatalf("expected only the second comment to remain")
	}
}

func TestVideoRepoFullDeleteTakesLikesAndComments(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewVideoRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	video := testutil.SeedVideo(t, ctx, db, kit.ID, owner.ID)

	if err := repo.Like(ctx, nil, video.ID, owner.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if _, err := repo.CreateComment(ctx, nil, &types.VideoComment{
		VideoID: video.ID,
		UserID:  owner.ID,
		Comment: "gone soon",
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := repo.FullDeleteByIDs(ctx, nil, []uuid.UUID{video.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}

	if _, err := repo.GetByID(ctx, nil, video.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found after delete, got %v", err)
	}
	var likeCount, commentCount int64
	if err := db.Model(&types.VideoLike{}).Where("video_id = ?", video.ID).Count(&likeCount).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if err := db.Model(&types.VideoComment{}).Where("video_id = ?", video.ID).Count(&commentCount).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if likeCount != 0 || commentCount != 0 {
		t.Fatalf("expected orphan rows to be gone, likes=%d comments=%d", likeCount, commentCount)
	}
}
