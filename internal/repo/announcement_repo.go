// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Announcement model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an announcement is not found, functions return
//     gorm.ErrRecordNotFound (also exported here as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAnnouncement inserts a new announcement row with a UUID primary key,
// a UTC creation timestamp, and status "active".
func CreateAnnouncement(ctx context.Context, db *gorm.DB, title, description string) (*domain.Announcement, error) {
	a := &domain.Announcement{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      domain.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnnouncements returns every announcement ordered most recent first
// (CreatedAt DESC). Seq ASC breaks ties so records created within the same
// clock tick keep their insertion order, matching a stable descending sort.
func ListAnnouncements(ctx context.Context, db *gorm.DB) ([]domain.Announcement, error) {
	var out []domain.Announcement
	err := db.WithContext(ctx).
		Order("created_at DESC, seq ASC").
		Find(&out).Error
	return out, err
}

// GetAnnouncement fetches a single announcement by ID, or ErrNotFound.
func GetAnnouncement(ctx context.Context, db *gorm.DB, id string) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAnnouncementStatus mutates the status of an existing announcement in
// place and returns the updated row. Returns ErrNotFound when id is unknown.
func UpdateAnnouncementStatus(ctx context.Context, db *gorm.DB, id, status string) (*domain.Announcement, error) {
	var a domain.Announcement
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			return err
		}
		if err := tx.Model(&a).Update("status", status).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
