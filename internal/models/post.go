package models

import (
	"fmt"
	"time"
)

const previewLength = 50

// Post represents a post in the feed.
// LikesCount, CommentsCount and SharesCount are denormalized counters kept in
// step with the likes, comments and shares tables by the repository layer.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AuthorID      uint      `gorm:"not null;index:idx_posts_author_created,priority:1" json:"author_id"`
	Author        User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ImageURL      *string   `json:"image_url"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int       `gorm:"not null;default:0" json:"shares_count"`
	CreatedAt     time.Time `gorm:"index:idx_posts_created,sort:desc;index:idx_posts_author_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
	Shares   []Share   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"shares,omitempty"`
}

// String renders the post as "<username>: <first 50 characters>".
func (p Post) String() string {
	return fmt.Sprintf("%s: %s", p.Author.Username, truncate(p.Content, previewLength))
}

// ContentPreview returns the first 50 characters of the content, with an
// ellipsis appended when the content is longer.
func (p Post) ContentPreview() string {
	return preview(p.Content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func preview(s string) string {
	if len([]rune(s)) > previewLength {
		return truncate(s, previewLength) + "..."
	}
	return s
}
