package models

import (
	"fmt"
	"time"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_comments_post_created,priority:1" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created,priority:2,sort:desc" json:"created_at"`
}

func (c Comment) String() string {
	return fmt.Sprintf("%s on post %d", c.Author.Username, c.PostID)
}

// ContentPreview returns the first 50 characters of the comment.
func (c Comment) ContentPreview() string {
	return preview(c.Content)
}
