// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to implement safe-retry semantics for reaction writes.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

// GetIdempotency returns the non-expired record stored under key, or
// ErrNotFound. Expired rows are treated exactly like absent ones (lazy
// expiry); nothing sweeps them, they are simply skipped here and overwritten
// by the next PutIdempotency for the same key.
func GetIdempotency(ctx context.Context, db *gorm.DB, key string, now time.Time) (*domain.Idempotency, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PutIdempotency stores the result of a successful reaction write under key
// with a fresh TTL. An existing row for the key (typically an expired one) is
// overwritten rather than duplicated.
func PutIdempotency(ctx context.Context, db *gorm.DB, key string, r *domain.Reaction, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		Key:               key,
		CreatedAt:         now,
		ExpiresAt:         now.Add(ttl),
		ReactionID:        r.ID,
		AnnouncementID:    r.AnnouncementID,
		UserID:            r.UserID,
		ReactionType:      r.Type,
		ReactionCreatedAt: r.CreatedAt,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		return nil, err
	}
	return rec, nil
}
