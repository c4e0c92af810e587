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

func newAnnSvcDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ann_svc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Announcement{}, &domain.Comment{}, &domain.Reaction{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAnnouncementCreate_NormalizesTitle(t *testing.T) {
	svc := &AnnouncementService{DB: newAnnSvcDB(t)}

	a, err := svc.Create(context.Background(), "  Pool   closed \n tomorrow ", "  details  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Title != "Pool closed tomorrow" {
		t.Fatalf("title not normalized: %q", a.Title)
	}
	if a.Description != "details" {
		t.Fatalf("description not trimmed: %q", a.Description)
	}
	if a.Status != domain.StatusActive {
		t.Fatalf("expected active, got %q", a.Status)
	}
}

func TestAnnouncementCreate_RejectsBlankTitle(t *testing.T) {
	svc := &AnnouncementService{DB: newAnnSvcDB(t)}

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(context.Background(), title, ""); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestAnnouncementList_AggregatesEngagement(t *testing.T) {
	db := newAnnSvcDB(t)
	svc := &AnnouncementService{DB: db}
	ctx := context.Background()

	// "Pool closed" with one comment after creation; reactions present but
	// they must not move last activity.
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	ann := domain.Announcement{ID: "a1", Title: "Pool closed", Status: domain.StatusActive, CreatedAt: created}
	if err := db.Create(&ann).Error; err != nil {
		t.Fatalf("seed announcement: %v", err)
	}

	commentAt := created.Add(2 * time.Hour)
	cm := domain.Comment{ID: "c1", AnnouncementID: "a1", AuthorName: "Sam", Text: "ok", CreatedAt: commentAt}
	if err := db.Create(&cm).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	reactAt := commentAt.Add(3 * time.Hour)
	rx := domain.Reaction{ID: "r1", AnnouncementID: "a1", UserID: "u1", Type: domain.ReactionUp, CreatedAt: reactAt}
	if err := db.Create(&rx).Error; err != nil {
		t.Fatalf("seed reaction: %v", err)
	}

	items, etag, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if etag == "" {
		t.Fatalf("expected a fingerprint")
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.CommentCount != 1 {
		t.Fatalf("expected commentCount 1, got %d", it.CommentCount)
	}
	if it.Reactions[domain.ReactionUp] != 1 || it.Reactions[domain.ReactionDown] != 0 || it.Reactions[domain.ReactionHeart] != 0 {
		t.Fatalf("expected zero-filled tally with one up, got %+v", it.Reactions)
	}
	if !it.LastActivityAt.Equal(commentAt) {
		t.Fatalf("last activity must be the comment time (not the reaction): %v", it.LastActivityAt)
	}
}

func TestAnnouncementList_NoComments_LastActivityIsCreation(t *testing.T) {
	db := newAnnSvcDB(t)
	svc := &AnnouncementService{DB: db}

	created := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	ann := domain.Announcement{ID: "a1", Title: "quiet", Status: domain.StatusActive, CreatedAt: created}
	if err := db.Create(&ann).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	items, _, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !items[0].LastActivityAt.Equal(created) {
		t.Fatalf("expected creation time, got %v", items[0].LastActivityAt)
	}
	if items[0].CommentCount != 0 {
		t.Fatalf("expected 0 comments, got %d", items[0].CommentCount)
	}
}

func TestAnnouncementList_FingerprintTracksEngagement(t *testing.T) {
	db := newAnnSvcDB(t)
	svc := &AnnouncementService{DB: db}
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Bike room", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, etag1, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List 1: %v", err)
	}
	_, etag2, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List 2: %v", err)
	}
	if etag1 != etag2 {
		t.Fatalf("fingerprint must be stable on an unchanged board: %q vs %q", etag1, etag2)
	}

	// A new comment changes no announcement field, but must change the
	// fingerprint because the hash covers the aggregated view.
	var a domain.Announcement
	if err := db.First(&a).Error; err != nil {
		t.Fatalf("load announcement: %v", err)
	}
	if _, err := repo.CreateComment(ctx, db, a.ID, "Sam", "hi"); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	_, etag3, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List 3: %v", err)
	}
	if etag3 == etag1 {
		t.Fatalf("fingerprint must change after a new comment")
	}
}

func TestAnnouncementUpdateStatus(t *testing.T) {
	db := newAnnSvcDB(t)
	svc := &AnnouncementService{DB: db}
	ctx := context.Background()

	a, err := svc.Create(ctx, "Laundry", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.UpdateStatus(ctx, a.ID, domain.StatusClosed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != domain.StatusClosed {
		t.Fatalf("expected closed, got %q", got.Status)
	}

	if _, err := svc.UpdateStatus(ctx, a.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", domain.StatusClosed); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	items := []domain.AnnouncementWithCounts{
		{
			Announcement:   domain.Announcement{ID: "a1", Title: "t", Status: domain.StatusActive},
			CommentCount:   3,
			Reactions:      domain.ZeroTally(),
			LastActivityAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	f1, err := Fingerprint(items)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	f2, err := Fingerprint(items)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("same input must hash identically: %q vs %q", f1, f2)
	}
	if len(f1) < 3 || f1[0] != '"' || f1[len(f1)-1] != '"' {
		t.Fatalf("fingerprint must be a quoted entity tag, got %q", f1)
	}

	items[0].CommentCount = 4
	f3, err := Fingerprint(items)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if f3 == f1 {
		t.Fatalf("changed input must hash differently")
	}
}
