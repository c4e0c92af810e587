// Package services – CommentService
//
// This file implements the CommentService, which appends comments to an
// announcement's feed and serves the cursor-paginated read path. Comments are
// immutable once written; the service enforces referential integrity (the
// announcement must exist) and the 1–500 character body constraint, and
// clamps page sizes to the [1, 50] window.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
	"github.com/openresidents/go-noticeboard-backend/internal/repo"
	"github.com/openresidents/go-noticeboard-backend/internal/utils"
)

// Comment pagination bounds. DefaultPageSize applies when the caller leaves
// the page size unset; any configured default is clamped to the same window.
const (
	MinPageSize     = 1
	MaxPageSize     = 50
	DefaultPageSize = 10
)

// CommentService implements the use-cases around announcement comments.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// PageSize is the page size used when the caller does not specify one.
	// Zero means DefaultPageSize; out-of-range values are clamped.
	PageSize int
}

// Append adds a comment to announcementID's feed.
//
// Validation:
//   - announcementID must exist; otherwise ErrAnnouncementNotFound.
//   - authorName must be non-blank and text 1–500 characters (by rune count);
//     otherwise ErrInvalidComment.
func (s *CommentService) Append(ctx context.Context, announcementID, authorName, text string) (*domain.Comment, error) {
	authorName = strings.TrimSpace(authorName)
	if authorName == "" {
		return nil, ErrInvalidComment
	}
	if n := utf8.RuneCountInString(text); n < 1 || n > 500 {
		return nil, ErrInvalidComment
	}

	if _, err := repo.GetAnnouncement(ctx, s.DB, announcementID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return repo.CreateComment(ctx, s.DB, announcementID, authorName, text)
}

// ListPage returns one page of the announcement's comment feed, newest first.
//
// The cursor is the id of a previously returned comment; an empty cursor
// yields the head of the feed and an unmatched cursor yields an empty page
// (never an error). limit is clamped to [1, 50]; zero or negative means the
// service default. The page is exhausted when fewer than limit items come
// back.
func (s *CommentService) ListPage(ctx context.Context, announcementID, cursor string, limit int) ([]domain.Comment, error) {
	if limit <= 0 {
		limit = s.defaultPageSize()
	}
	limit = utils.ClampInt(limit, MinPageSize, MaxPageSize)
	return repo.ListCommentsPage(ctx, s.DB, announcementID, cursor, limit)
}

// defaultPageSize resolves the configured default, clamped into range.
func (s *CommentService) defaultPageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return utils.ClampInt(s.PageSize, MinPageSize, MaxPageSize)
}
