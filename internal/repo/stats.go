// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the
// engagement view: per-announcement comment counts, latest comment
// timestamps, and reaction tallies. Each function is context-aware and reads
// fresh on every call — no counters are cached anywhere.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

// CommentStats returns the number of comments on an announcement and the
// CreatedAt of the most recent one. When the feed is empty the count is 0 and
// latest is nil.
//
// The latest timestamp is fetched with ORDER BY ... LIMIT 1 rather than
// MAX(created_at), because SQLite's MAX() collapses DATETIME to TEXT and
// breaks scanning into time.Time.
func CommentStats(ctx context.Context, db *gorm.DB, announcementID string) (count int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Comment{}).Where("announcement_id = ?", announcementID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}

// ReactionTally returns the per-type reaction counts for an announcement with
// every type of the closed set present, zero-filled when absent.
func ReactionTally(ctx context.Context, db *gorm.DB, announcementID string) (domain.ReactionTally, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := db.WithContext(ctx).Model(&domain.Reaction{}).
		Select("type, COUNT(*) AS count").
		Where("announcement_id = ?", announcementID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tally := domain.ZeroTally()
	for _, r := range rows {
		tally[r.Type] = r.Count
	}
	return tally, nil
}
