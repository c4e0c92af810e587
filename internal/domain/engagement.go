// Package domain defines the core persistence models for the application.
// This file holds the closed reaction-type set and the derived, read-only
// engagement view returned by the announcement listing.
package domain

import "time"

// Reaction types form a closed set. Aggregation zero-fills every member so a
// listing never omits a type that simply has no reactions yet.
const (
	ReactionUp    = "up"
	ReactionDown  = "down"
	ReactionHeart = "heart"
)

// ReactionTypes enumerates the closed reaction-type set in canonical order.
var ReactionTypes = []string{ReactionUp, ReactionDown, ReactionHeart}

// ValidReactionType reports whether t is a member of the reaction-type set.
func ValidReactionType(t string) bool {
	switch t {
	case ReactionUp, ReactionDown, ReactionHeart:
		return true
	}
	return false
}

// ReactionTally maps each reaction type to its count for one announcement.
type ReactionTally map[string]int64

// ZeroTally returns a tally with every reaction type present at zero.
func ZeroTally() ReactionTally {
	t := make(ReactionTally, len(ReactionTypes))
	for _, rt := range ReactionTypes {
		t[rt] = 0
	}
	return t
}

// AnnouncementWithCounts is the derived listing view: the announcement itself
// plus engagement figures computed fresh at read time. It is never persisted,
// so it is always consistent with the store at the moment of the read.
//
// LastActivityAt is the later of the announcement's own CreatedAt and the most
// recent comment's CreatedAt. Reactions deliberately do not move it.
type AnnouncementWithCounts struct {
	Announcement

	CommentCount   int64         `json:"commentCount"`
	Reactions      ReactionTally `json:"reactions"`
	LastActivityAt time.Time     `json:"lastActivityAt"`
}
