// Package domain defines the core persistence models for the application.
// These types are used by GORM for schema mapping and are shared across the
// repository and service layers.
package domain

import "time"

// Idempotency memoizes the result of a previously processed reaction write,
// keyed by the literal client-supplied token. It enables safe retries of
// POST reactions: a replay within the TTL window returns the originally
// produced reaction without re-executing the upsert (or re-validating the
// announcement). The cache is a pure memo over Key; it does not care whether
// the replayed payload matches the original one.
type Idempotency struct {
	Key       string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`

	// Snapshot of the reaction produced by the original call, stored inline
	// so a replay can be served verbatim without touching the reactions table.
	ReactionID        string    `gorm:"type:TEXT NOT NULL"`
	AnnouncementID    string    `gorm:"type:TEXT NOT NULL"`
	UserID            string    `gorm:"type:TEXT NOT NULL"`
	ReactionType      string    `gorm:"type:TEXT NOT NULL"`
	ReactionCreatedAt time.Time `gorm:"type:DATETIME NOT NULL"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }

// Reaction reconstructs the cached reaction result exactly as it was first
// returned, so replays are bit-identical to the original response.
func (i *Idempotency) Reaction() *Reaction {
	return &Reaction{
		ID:             i.ReactionID,
		AnnouncementID: i.AnnouncementID,
		UserID:         i.UserID,
		Type:           i.ReactionType,
		CreatedAt:      i.ReactionCreatedAt,
	}
}
