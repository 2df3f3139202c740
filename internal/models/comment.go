package models

import "time"

type Comment struct {
	ID     int `gorm:"primaryKey" json:"id"`
	PostID int `gorm:"index;not null" json:"postId"`

	// Author snapshot, same denormalization as Post.
	UserEmail string `gorm:"index" json:"userEmail"`
	UserName  string `json:"userName"`

	Text string `gorm:"not null" json:"text"`

	// Moderation sub-state: feedback is only ever set while reported is true.
	Reported bool   `gorm:"default:false;index" json:"reported"`
	Feedback string `gorm:"default:''" json:"feedback"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

type ReportCommentRequest struct {
	Feedback string `json:"feedback"`
}
