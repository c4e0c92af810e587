// Package services defines the business logic for announcements, comments,
// and reactions. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrAnnouncementNotFound indicates that the referenced announcement
	// does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrEmptyTitle is returned when a request to create an announcement
	// carries a blank title.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrInvalidStatus is returned when a status value is outside the
	// allowed set (active, closed).
	ErrInvalidStatus = errors.New("status must be active or closed")

	// ErrInvalidComment is returned when a comment body is empty or exceeds
	// the 500-character limit, or when the author name is blank.
	ErrInvalidComment = errors.New("comment requires an author and 1-500 characters of text")

	// ErrInvalidReactionType is returned when a reaction type is outside the
	// allowed set (up, down, heart).
	ErrInvalidReactionType = errors.New("reaction type must be up, down, or heart")

	// ErrReactionNotFound indicates that no reaction exists for the given
	// announcement and user.
	ErrReactionNotFound = errors.New("reaction not found")
)
