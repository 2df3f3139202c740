package models

import "time"

// Announcement is an admin-authored broadcast; never mutated after creation.
type Announcement struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateAnnouncementRequest struct {
	AuthorImage string `json:"authorImage"`
	AuthorName  string `json:"authorName"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}
