package models

import (
	"fmt"
	"time"
)

// Like represents a user's like on a post.
// The combination of PostID and UserID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user,priority:1" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user,priority:2;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func (l Like) String() string {
	return fmt.Sprintf("%s likes post %d", l.User.Username, l.PostID)
}

// LikeToggle tags which branch a like toggle took.
type LikeToggle int

const (
	// LikeCreated means no like existed and one was inserted.
	LikeCreated LikeToggle = iota + 1
	// LikeRemoved means an existing like was deleted.
	LikeRemoved
)

func (t LikeToggle) String() string {
	switch t {
	case LikeCreated:
		return "created"
	case LikeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// LikeToggleResult is the outcome of toggling a like. Like is nil when the
// like was removed. Post carries the counters as committed.
type LikeToggleResult struct {
	Outcome LikeToggle
	Like    *Like
	Post    *Post
}
