package models

import "time"

// Role values stored on User.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Badge tiers. Every user starts at bronze; gold is granted on payment.
const (
	BadgeBronze = "bronze"
	BadgeGold   = "gold"
)

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `gorm:"default:member" json:"role"`
	Badge    string `gorm:"default:bronze" json:"badge"`
	Banned   bool   `gorm:"default:false" json:"banned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type BanRequest struct {
	// Pointer so a missing field is distinguishable from an explicit false.
	Banned *bool `json:"banned"`
}
