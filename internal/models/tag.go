package models

// Tag is a name-only catalog entry used for suggestions and filtering.
type Tag struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}
