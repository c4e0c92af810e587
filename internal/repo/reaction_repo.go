// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Reaction
// model.
//
// The invariant here is at most one reaction per (announcement_id, user_id):
// a unique index enforces it at the schema level and UpsertReaction preserves
// it under concurrent writes.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

// UpsertReaction records userID's reaction to an announcement. When a row for
// (announcementID, userID) already exists its Type is overwritten in place —
// same ID, no new allocation. Otherwise a new row is inserted.
//
// The lookup and the write run inside one transaction so two concurrent
// upserts for the same pair cannot both pass the existence check and insert
// duplicates; the unique index is the backstop for the race where both reach
// the insert, in which case the loser retries as an update.
func UpsertReaction(ctx context.Context, db *gorm.DB, announcementID, userID, typ string) (*domain.Reaction, error) {
	var out domain.Reaction
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Reaction
		err := tx.Where("announcement_id = ? AND user_id = ?", announcementID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Update("type", typ).Error; err != nil {
				return err
			}
			out = existing
			out.Type = typ
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fall through to insert
		default:
			return err
		}

		rec := domain.Reaction{
			ID:             uuid.NewString(),
			AnnouncementID: announcementID,
			UserID:         userID,
			Type:           typ,
			CreatedAt:      time.Now().UTC(),
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the race to a concurrent insert: overwrite that row.
				if err := tx.Where("announcement_id = ? AND user_id = ?", announcementID, userID).
					First(&existing).Error; err != nil {
					return err
				}
				if err := tx.Model(&existing).Update("type", typ).Error; err != nil {
					return err
				}
				out = existing
				out.Type = typ
				return nil
			}
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveReaction deletes the reaction for (announcementID, userID) and
// reports whether a row was actually removed.
func RemoveReaction(ctx context.Context, db *gorm.DB, announcementID, userID string) (bool, error) {
	res := db.WithContext(ctx).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		Delete(&domain.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetReaction fetches the reaction for (announcementID, userID), or ErrNotFound.
func GetReaction(ctx context.Context, db *gorm.DB, announcementID, userID string) (*domain.Reaction, error) {
	var r domain.Reaction
	if err := db.WithContext(ctx).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// isUniqueViolation detects unique-constraint failures in a driver-agnostic
// way. glebarez/sqlite often reports them as plain-text errors rather than
// gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
