// Package services – AnnouncementService
//
// This file implements the AnnouncementService, which manages the lifecycle
// of announcements and produces the aggregated listing consumed by polling
// clients. Engagement figures (comment counts, reaction tallies, last
// activity) are recomputed from the store on every listing call, and the
// listing carries a content fingerprint so unchanged results can be served as
// a conditional-read short circuit.
//
// Service-level errors (e.g., ErrAnnouncementNotFound, ErrInvalidStatus) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
	"github.com/openresidents/go-noticeboard-backend/internal/repo"
)

// AnnouncementService provides announcement-level operations: creation,
// the aggregated listing with change detection, and status transitions.
type AnnouncementService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create inserts a new announcement with status "active". The title is
// normalized (trimmed, inner whitespace collapsed) and must be non-empty.
func (s *AnnouncementService) Create(ctx context.Context, title, description string) (*domain.Announcement, error) {
	title = normalizeTitle(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return repo.CreateAnnouncement(ctx, s.DB, title, strings.TrimSpace(description))
}

// List returns every announcement ordered most recent first, each enriched
// with engagement figures computed fresh from the store, together with the
// fingerprint of the whole listing.
//
// LastActivityAt is the later of the announcement's own CreatedAt and the
// newest comment's CreatedAt; reactions do not move it. Reaction tallies
// always contain all three types, zero-filled when absent.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.AnnouncementWithCounts, string, error) {
	anns, err := repo.ListAnnouncements(ctx, s.DB)
	if err != nil {
		return nil, "", err
	}

	out := make([]domain.AnnouncementWithCounts, 0, len(anns))
	for _, a := range anns {
		count, latest, err := repo.CommentStats(ctx, s.DB, a.ID)
		if err != nil {
			return nil, "", err
		}
		tally, err := repo.ReactionTally(ctx, s.DB, a.ID)
		if err != nil {
			return nil, "", err
		}

		lastActivity := a.CreatedAt
		if latest != nil && latest.After(lastActivity) {
			lastActivity = *latest
		}

		out = append(out, domain.AnnouncementWithCounts{
			Announcement:   a,
			CommentCount:   count,
			Reactions:      tally,
			LastActivityAt: lastActivity,
		})
	}

	etag, err := Fingerprint(out)
	if err != nil {
		return nil, "", err
	}
	return out, etag, nil
}

// UpdateStatus transitions an announcement between active and closed.
// Returns ErrInvalidStatus for values outside the closed set and
// ErrAnnouncementNotFound when id is unknown.
func (s *AnnouncementService) UpdateStatus(ctx context.Context, id, status string) (*domain.Announcement, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	a, err := repo.UpdateAnnouncementStatus(ctx, s.DB, id, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}

// Fingerprint computes the deterministic content hash of an aggregated
// listing: SHA-256 over its JSON serialization, rendered as a quoted hex
// ETag. Because the hash covers the post-aggregation view, a new comment or
// reaction changes the fingerprint even when no announcement field did.
// Comparison is exact string equality; there is no weak/strong distinction.
func Fingerprint(items []domain.AnnouncementWithCounts) (string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf(`"%x"`, sum), nil
}

// normalizeTitle trims whitespace and collapses multiple spaces to one.
func normalizeTitle(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
