package repository

import (
	"context"
	"fmt"

	"socialfeed/internal/models"
	"socialfeed/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter names one of the denormalized columns on posts.
type Counter string

const (
	LikesCounter    Counter = "likes_count"
	CommentsCounter Counter = "comments_count"
	SharesCounter   Counter = "shares_count"
)

// label is the metric label for the counter, e.g. "likes".
func (c Counter) label() string {
	switch c {
	case LikesCounter:
		return "likes"
	case CommentsCounter:
		return "comments"
	case SharesCounter:
		return "shares"
	default:
		return string(c)
	}
}

// value returns the counter as last read into post.
func (c Counter) value(post *models.Post) int {
	switch c {
	case LikesCounter:
		return post.LikesCount
	case CommentsCounter:
		return post.CommentsCount
	case SharesCounter:
		return post.SharesCount
	default:
		return 0
	}
}

func (c Counter) set(post *models.Post, v int) {
	switch c {
	case LikesCounter:
		post.LikesCount = v
	case CommentsCounter:
		post.CommentsCount = v
	case SharesCounter:
		post.SharesCount = v
	}
}

var counterLog = observability.NewRepoLogger("posts")

// lockPost loads the parent post inside tx. On PostgreSQL the row is held
// FOR UPDATE until tx ends so concurrent adjustments to the same post
// serialize; SQLite write transactions are already exclusive.
func lockPost(tx *gorm.DB, postID uint) (*models.Post, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var post models.Post
	if err := q.First(&post, postID).Error; err != nil {
		return nil, translateError(err, "Post")
	}
	return &post, nil
}

// incrementCounter adds one to counter c of post within tx.
func incrementCounter(tx *gorm.DB, post *models.Post, c Counter) error {
	col := string(c)
	res := tx.Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumn(col, gorm.Expr(col+" + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}

	c.set(post, c.value(post)+1)
	observability.CounterAdjustments.WithLabelValues(c.label(), "up").Inc()
	return nil
}

// decrementCounter subtracts one from counter c of post within tx, never
// going below zero. A decrement that finds the counter already at zero is
// recorded as a clamp: it means the counter had drifted below the live row
// count.
func decrementCounter(ctx context.Context, tx *gorm.DB, post *models.Post, c Counter) error {
	col := string(c)
	res := tx.Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumn(col, gorm.Expr(fmt.Sprintf("CASE WHEN %s > 0 THEN %s - 1 ELSE 0 END", col, col)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}

	current := c.value(post)
	if current <= 0 {
		observability.CounterClamped.WithLabelValues(c.label()).Inc()
		counterLog.LogWarn(ctx, "post counter clamped at zero", map[string]interface{}{
			"post_id": post.ID,
			"counter": col,
		})
		c.set(post, 0)
		return nil
	}

	c.set(post, current-1)
	observability.CounterAdjustments.WithLabelValues(c.label(), "down").Inc()
	return nil
}
