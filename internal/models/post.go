package models

import "time"

type Post struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Tag         string `gorm:"index" json:"tag"`

	// Author snapshot at authorship time. Kept denormalized on purpose so
	// historical posts keep the name/avatar the author had when posting.
	AuthorEmail string `gorm:"index;not null" json:"authorEmail"`
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage"`

	// Cached projections of the vote ledger. Only ever written inside the
	// vote transaction, alongside the matching ledger row.
	UpVoteCount   int `gorm:"default:0" json:"upVoteCount"`
	DownVoteCount int `gorm:"default:0" json:"downVoteCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	AuthorImage string `json:"authorImage"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// PostView is a post joined with its derived ranking fields.
type PostView struct {
	Post
	CommentCount   int `json:"commentsCount"`
	VoteDifference int `json:"voteDifference"`
}
