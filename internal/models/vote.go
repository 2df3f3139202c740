package models

import "time"

// Vote kinds as they arrive on the wire (?type=upvote|downvote).
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote is one ledger entry: at most one row per (post, voter), enforced by
// the composite unique index.
type Vote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	PostID     int       `gorm:"uniqueIndex:idx_votes_post_voter;not null" json:"post_id"`
	VoterEmail string    `gorm:"uniqueIndex:idx_votes_post_voter;not null" json:"email"`
	Kind       string    `gorm:"not null" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
