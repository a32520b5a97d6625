package models

import (
	"time"
)

// DefaultCategory is assigned when a post is created without a category.
const DefaultCategory = "All"

// Post represents a blog article with its embedded engagement data.
//
// AuthorID is set once at creation and never reassigned. Posts have no soft
// delete: owner-initiated deletion is permanent and removes likes and
// comments with it.
type Post struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	SubTitle         string    `json:"sub_title,omitempty"`
	Category         string    `gorm:"not null;default:All" json:"category"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	ImageData        []byte    `gorm:"column:image_data" json:"-"`
	ImageContentType string    `json:"-"`
	IsPublished      bool      `gorm:"not null;default:false" json:"is_published"`
	AuthorID         uint      `gorm:"not null;index" json:"author_id"`
	Author           User      `gorm:"foreignKey:AuthorID" json:"author"`
	Shares           uint      `gorm:"not null;default:0" json:"shares"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	// Image is the inline data URI projection of ImageData; computed at
	// read time, never persisted.
	Image string `gorm:"-" json:"image,omitempty"`
}

// LikedBy returns the ids of all users currently in the like set.
func (p *Post) LikedBy() []uint {
	ids := make([]uint, 0, len(p.Likes))
	for _, l := range p.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// TopicCount is one row of the per-category dashboard aggregation.
type TopicCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
