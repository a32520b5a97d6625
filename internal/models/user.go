// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered author or reader in the Inkwell application.
// Users are never hard-deleted; posts keep a valid author reference for their
// whole lifetime.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"unique;not null" json:"username"`
	Email            string    `gorm:"unique;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	Bio              string    `json:"bio"`
	ImageData        []byte    `gorm:"column:image_data" json:"-"`
	ImageContentType string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`

	// Image is the inline data URI projection of ImageData; computed at
	// read time, never persisted.
	Image string `gorm:"-" json:"image,omitempty"`
	// TotalPosts is computed at query time for the profile endpoint.
	TotalPosts int64 `gorm:"-" json:"total_posts,omitempty"`
}
