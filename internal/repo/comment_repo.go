// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model, including the cursor-paginated feed.
//
// Feed order is CreatedAt DESC with Seq ASC as the tie-break. Because
// comments are immutable and never deleted, a comment's position relative to
// older comments never changes once it has been emitted, which is what makes
// id-based cursors stable across pages.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

// CreateComment appends a new comment to an announcement's feed with a fresh
// UUID and a UTC timestamp. Announcement existence is the caller's concern
// (see services.CommentService).
func CreateComment(ctx context.Context, db *gorm.DB, announcementID, authorName, text string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:             uuid.NewString(),
		AnnouncementID: announcementID,
		AuthorName:     authorName,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns the full comment feed for an announcement, newest
// first. Intended for small feeds and tests; request paths use ListCommentsPage.
func ListComments(ctx context.Context, db *gorm.DB, announcementID string) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Order("created_at DESC, seq ASC").
		Find(&out).Error
	return out, err
}

// ListCommentsPage returns one page of an announcement's comment feed.
//
// Cursor semantics:
//   - cursor == "": the first `limit` comments of the feed.
//   - cursor set but not found in this announcement's feed: an empty page and
//     no error. A stale or malformed cursor means "fully consumed", never a
//     failure, because comments are immutable and cannot disappear.
//   - cursor found: the `limit` comments strictly after it in feed order.
//
// The caller is responsible for clamping limit; values <= 0 are coerced to 1
// here as a last line of defense.
func ListCommentsPage(ctx context.Context, db *gorm.DB, announcementID, cursor string, limit int) ([]domain.Comment, error) {
	if limit <= 0 {
		limit = 1
	}

	q := db.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Order("created_at DESC, seq ASC").
		Limit(limit)

	if cursor != "" {
		var pivot domain.Comment
		err := db.WithContext(ctx).
			Where("id = ? AND announcement_id = ?", cursor, announcementID).
			First(&pivot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.Comment{}, nil
		}
		if err != nil {
			return nil, err
		}
		// Everything strictly after the pivot in (created_at DESC, seq ASC)
		// order: older comments, or same-instant comments inserted later.
		q = q.Where(
			"created_at < ? OR (created_at = ? AND seq > ?)",
			pivot.CreatedAt, pivot.CreatedAt, pivot.Seq,
		)
	}

	var out []domain.Comment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Comment{}
	}
	return out, nil
}
