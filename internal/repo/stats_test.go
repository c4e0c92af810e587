package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

func newStatsDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:stats_repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Announcement{}, &domain.Comment{}, &domain.Reaction{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	a := domain.Announcement{ID: "a1", Title: "t", Status: domain.StatusActive}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed announcement: %v", err)
	}
	return db
}

func TestCommentStats_EmptyFeed(t *testing.T) {
	db := newStatsDB(t)

	count, latest, err := CommentStats(context.Background(), db, "a1")
	if err != nil {
		t.Fatalf("CommentStats: %v", err)
	}
	if count != 0 || latest != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, latest)
	}
}

func TestCommentStats_CountAndLatest(t *testing.T) {
	db := newStatsDB(t)

	t1 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	for i, at := range []time.Time{t1, t2} {
		c := domain.Comment{
			ID:             fmt.Sprintf("c%d", i+1),
			AnnouncementID: "a1",
			AuthorName:     "r",
			Text:           "x",
			CreatedAt:      at,
		}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	// A comment on another announcement must not count.
	other := domain.Announcement{ID: "a2", Title: "t", Status: domain.StatusActive}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed a2: %v", err)
	}
	cx := domain.Comment{ID: "cx", AnnouncementID: "a2", AuthorName: "r", Text: "x", CreatedAt: t2.Add(time.Hour)}
	if err := db.Create(&cx).Error; err != nil {
		t.Fatalf("seed cx: %v", err)
	}

	count, latest, err := CommentStats(context.Background(), db, "a1")
	if err != nil {
		t.Fatalf("CommentStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 comments, got %d", count)
	}
	if latest == nil || !latest.Equal(t2) {
		t.Fatalf("expected latest %v, got %v", t2, latest)
	}
}

func TestReactionTally_ZeroFilledWhenEmpty(t *testing.T) {
	db := newStatsDB(t)

	tally, err := ReactionTally(context.Background(), db, "a1")
	if err != nil {
		t.Fatalf("ReactionTally: %v", err)
	}
	for _, rt := range domain.ReactionTypes {
		if v, ok := tally[rt]; !ok || v != 0 {
			t.Fatalf("type %q must be present at 0, got %v (present=%v)", rt, v, ok)
		}
	}
}

func TestReactionTally_CountsPerType(t *testing.T) {
	db := newStatsDB(t)
	ctx := context.Background()

	for i, typ := range []string{domain.ReactionUp, domain.ReactionUp, domain.ReactionHeart} {
		r := domain.Reaction{
			ID:             fmt.Sprintf("r%d", i+1),
			AnnouncementID: "a1",
			UserID:         fmt.Sprintf("u%d", i+1),
			Type:           typ,
			CreatedAt:      time.Now().UTC(),
		}
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	tally, err := ReactionTally(ctx, db, "a1")
	if err != nil {
		t.Fatalf("ReactionTally: %v", err)
	}
	if tally[domain.ReactionUp] != 2 || tally[domain.ReactionHeart] != 1 || tally[domain.ReactionDown] != 0 {
		t.Fatalf("unexpected tally: %+v", tally)
	}
}
