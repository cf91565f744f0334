package models

import (
	"fmt"
	"time"
)

// Share represents a user re-sharing a post. A user may share the same post
// any number of times.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (s Share) String() string {
	return fmt.Sprintf("%s shared post %d", s.User.Username, s.PostID)
}
