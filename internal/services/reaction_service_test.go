package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
	"github.com/openresidents/go-noticeboard-backend/internal/repo"
)

func newReactionSvcDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:reaction_svc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Announcement{}, &domain.Reaction{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	a := domain.Announcement{ID: "a1", Title: "t", Status: domain.StatusActive}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed announcement: %v", err)
	}
	return db
}

func TestReact_InvalidType(t *testing.T) {
	svc := &ReactionService{DB: newReactionSvcDB(t)}
	for _, typ := range []string{"", "like", "UP"} {
		if _, err := svc.React(context.Background(), "a1", "u1", typ, ""); !errors.Is(err, ErrInvalidReactionType) {
			t.Fatalf("type %q: expected ErrInvalidReactionType, got %v", typ, err)
		}
	}
}

func TestReact_UnknownAnnouncement(t *testing.T) {
	svc := &ReactionService{DB: newReactionSvcDB(t)}
	if _, err := svc.React(context.Background(), "missing", "u1", domain.ReactionUp, ""); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestReact_UpsertOverwritesInPlace(t *testing.T) {
	svc := &ReactionService{DB: newReactionSvcDB(t)}
	ctx := context.Background()

	first, err := svc.React(ctx, "a1", "u1", domain.ReactionUp, "")
	if err != nil {
		t.Fatalf("first React: %v", err)
	}
	second, err := svc.React(ctx, "a1", "u1", domain.ReactionDown, "")
	if err != nil {
		t.Fatalf("second React: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("re-reacting must keep the same record, ids %q vs %q", second.ID, first.ID)
	}
	if second.Type != domain.ReactionDown {
		t.Fatalf("type not overwritten: %q", second.Type)
	}
}

func TestReact_IdempotentReplayIsVerbatim(t *testing.T) {
	db := newReactionSvcDB(t)
	svc := &ReactionService{DB: db}
	ctx := context.Background()

	orig, err := svc.React(ctx, "a1", "u1", domain.ReactionUp, "key-1")
	if err != nil {
		t.Fatalf("original React: %v", err)
	}

	// Replay with a different payload AND a nonexistent announcement: the
	// gate is a pure memo over the key, so neither is looked at — the stored
	// result comes back identical and no second write happens.
	replay, err := svc.React(ctx, "other-ann", "other-user", domain.ReactionHeart, "key-1")
	if err != nil {
		t.Fatalf("replay React: %v", err)
	}
	if replay.ID != orig.ID || replay.Type != orig.Type ||
		replay.AnnouncementID != orig.AnnouncementID || replay.UserID != orig.UserID ||
		!replay.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("replay differs from original:\n got %+v\nwant %+v", replay, orig)
	}

	var n int64
	if err := db.Model(&domain.Reaction{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("replay must not create rows, got %d", n)
	}
}

func TestReact_ExpiredKeyExecutesAgain(t *testing.T) {
	db := newReactionSvcDB(t)
	svc := &ReactionService{DB: db, IdempotencyTTL: time.Minute}
	ctx := context.Background()

	if _, err := svc.React(ctx, "a1", "u1", domain.ReactionUp, "key-1"); err != nil {
		t.Fatalf("original React: %v", err)
	}

	// Force the record into the past; the next call with the same key must
	// execute fully instead of replaying.
	if err := db.Model(&domain.Idempotency{}).
		Where("key = ?", "key-1").
		Update("expires_at", time.Now().UTC().Add(-time.Second)).Error; err != nil {
		t.Fatalf("expire record: %v", err)
	}

	got, err := svc.React(ctx, "a1", "u1", domain.ReactionHeart, "key-1")
	if err != nil {
		t.Fatalf("post-expiry React: %v", err)
	}
	if got.Type != domain.ReactionHeart {
		t.Fatalf("expected a fresh execution, got replayed %q", got.Type)
	}

	// The key was re-recorded with the new result.
	rec, err := repo.GetIdempotency(ctx, db, "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if rec.ReactionType != domain.ReactionHeart {
		t.Fatalf("memo not refreshed: %+v", rec)
	}
}

func TestReact_FailedWriteIsNotMemoized(t *testing.T) {
	db := newReactionSvcDB(t)
	svc := &ReactionService{DB: db}
	ctx := context.Background()

	// Unknown announcement → the call fails and nothing is stored under the key.
	if _, err := svc.React(ctx, "missing", "u1", domain.ReactionUp, "key-x"); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
	if _, err := repo.GetIdempotency(ctx, db, "key-x", time.Now().UTC()); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("failed calls must not be memoized, got %v", err)
	}
}

func TestRemove_Semantics(t *testing.T) {
	svc := &ReactionService{DB: newReactionSvcDB(t)}
	ctx := context.Background()

	if err := svc.Remove(ctx, "a1", "u1"); !errors.Is(err, ErrReactionNotFound) {
		t.Fatalf("expected ErrReactionNotFound, got %v", err)
	}

	if _, err := svc.React(ctx, "a1", "u1", domain.ReactionUp, ""); err != nil {
		t.Fatalf("seed React: %v", err)
	}
	if err := svc.Remove(ctx, "a1", "u1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(ctx, "a1", "u1"); !errors.Is(err, ErrReactionNotFound) {
		t.Fatalf("second Remove must report not found, got %v", err)
	}
}

func TestReactionTTLDefault(t *testing.T) {
	svc := &ReactionService{}
	if got := svc.ttl(); got != DefaultIdempotencyTTL {
		t.Fatalf("zero TTL must fall back to default, got %v", got)
	}
	svc.IdempotencyTTL = time.Hour
	if got := svc.ttl(); got != time.Hour {
		t.Fatalf("configured TTL ignored, got %v", got)
	}
}
