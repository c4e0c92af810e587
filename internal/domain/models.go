// Package domain defines the persistence models for announcements, comments,
// and reactions. These types are mapped with GORM and form the core data layer
// of the noticeboard application.
package domain

import "time"

// Announcement statuses. The status set is closed: an announcement is either
// open for engagement ("active") or archived ("closed").
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// ValidStatus reports whether s is a member of the closed status set.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusClosed
}

// Announcement represents a single notice posted to the board. Announcements
// are created once, may have their status flipped between active and closed,
// and are never deleted.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Seq: monotonically increasing insertion counter. Listing order is
//     CreatedAt descending with Seq as the tie-break, which preserves
//     insertion order for records created within the same clock tick.
//   - Title: non-empty headline of the notice.
//   - Description: optional free-form body.
//   - Status: "active" or "closed" (enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Announcement struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Seq         int64     `json:"-"           gorm:"autoIncrement;uniqueIndex"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Status      string    `json:"status"      gorm:"type:varchar(16);not null;default:'active';check:status IN ('active','closed')"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"index:idx_ann_created"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName returns the database table name for Announcement.
func (Announcement) TableName() string { return "announcements" }

// Comment is a single remark appended to an announcement's feed. Comments are
// immutable once written and are never deleted, which keeps pagination cursors
// stable for the lifetime of the process.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Seq: insertion counter used as the deterministic tie-break when several
//     comments share a CreatedAt value.
//   - AnnouncementID: foreign key to the owning announcement (indexed).
//   - AuthorName: display name supplied by the poster.
//   - Text: comment body, 1–500 characters (validated at the service layer).
//   - CreatedAt: timestamp managed by GORM.
type Comment struct {
	ID             string    `json:"id"             gorm:"type:char(36);primaryKey"`
	Seq            int64     `json:"-"              gorm:"autoIncrement;uniqueIndex"`
	AnnouncementID string    `json:"announcementId" gorm:"type:char(36);not null;index:idx_comment_feed,priority:1"`
	AuthorName     string    `json:"authorName"     gorm:"type:varchar(128);not null"`
	Text           string    `json:"text"           gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"createdAt"      gorm:"index:idx_comment_feed,priority:2"`

	// Announcement is the parent notice. Comments reference it for integrity
	// but are never cascade-deleted because announcements are never removed.
	Announcement Announcement `json:"-" gorm:"foreignKey:AnnouncementID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Reaction records a single user's reaction to an announcement. A user holds
// at most one reaction per announcement (unique index); reacting again with a
// different type overwrites the existing row in place, keeping the same ID.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - AnnouncementID: target announcement (unique per user).
//   - UserID: opaque user identifier (unique per announcement).
//   - Type: "up", "down", or "heart".
//   - CreatedAt: set when the row was first created; an overwrite of Type
//     does not move it.
type Reaction struct {
	ID             string    `json:"id"             gorm:"type:char(36);primaryKey"`
	AnnouncementID string    `json:"announcementId" gorm:"type:char(36);not null;index;uniqueIndex:ux_reaction_ann_user,priority:1"`
	UserID         string    `json:"userId"         gorm:"type:varchar(64);not null;uniqueIndex:ux_reaction_ann_user,priority:2"`
	Type           string    `json:"type"           gorm:"type:varchar(16);not null;check:type IN ('up','down','heart')"`
	CreatedAt      time.Time `json:"createdAt"`

	Announcement Announcement `json:"-" gorm:"foreignKey:AnnouncementID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Reaction.
func (Reaction) TableName() string { return "reactions" }
