package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/ainstein-org/ainstein-backend/internal/repos"
	"github.com/ainstein-org/ainstein-backend/internal/repos/testutil"
	"github.com/ainstein-org/ainstein-backend/internal/types"
)

func TestVideoServiceCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	owner := testutil.SeedUser(t, ctx, db, "owner@example.com")
	viewer := testutil.SeedUser(t, ctx, db, "viewer@example.com")
	group := testutil.SeedGroup(t, ctx, db, owner.ID)
	kit := testutil.SeedStudyKit(t, ctx, db, group.ID, owner.ID)
	video := testutil.SeedVideo(t, ctx, db, kit.ID, owner.ID)

	svc := NewVideoService(db, log, repos.NewVideoRepo(db, log), repos.NewStudyKitRepo(db, log))

	// Any signed-in user can comment on a reachable video.
	comment, err := svc.AddComment(ctx, viewer.ID, video.ID, "Penjelasannya bagus!")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	updated, err := svc.UpdateComment(ctx, viewer.ID, comment.ID, "Penjelasannya sangat bagus!")
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if updated.Comment != "Penjelasannya sangat bagus!" {
		t.Fatalf("comment = %q", updated.Comment)
	}

	// Only the author edits or deletes, even the video owner cannot.
	_, err = svc.UpdateComment(ctx, owner.ID, comment.ID, "disunting orang lain")
	assertCode(t, err, http.StatusForbidden)
	err = svc.DeleteComment(ctx, owner.ID, comment.ID)
	assertCode(t, err, http.StatusForbidden)

	_, err = svc.UpdateComment(ctx, viewer.ID, comment.ID, "   ")
	assertCode(t, err, http.StatusBadRequest)

	if err := svc.DeleteComment(ctx, viewer.ID, comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	var n int64
	if err := db.Model(&types.VideoComment{}).Count(&n).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if n != 0 {
		t.Fatalf("comment rows = %d, want 0", n)
	}
}
