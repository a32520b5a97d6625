package models

import (
	"time"
)

// Comment represents one entry in a post's ordered comment sequence.
// Comments are append-only: there is no edit or delete operation.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Username is the resolved commenter display name; computed at read
	// time, never persisted. Falls back to a placeholder when the user
	// record cannot be resolved.
	Username string `gorm:"-" json:"username,omitempty"`
}
