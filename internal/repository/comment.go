package repository

import (
	"context"

	"socialfeed/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines read operations for comments. Writes go through
// EngagementRepository so the post counter moves with them.
type CommentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// GetByID reads from the primary so an ownership check sees the latest row.
func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, translateError(err, "Comment")
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := readDB(r.db).WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order(newestFirst).
		Find(&comments).Error
	if err != nil {
		return nil, translateError(err, "Comment")
	}
	return comments, nil
}
