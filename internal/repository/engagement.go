package repository

import (
	"context"

	"socialfeed/internal/cache"
	"socialfeed/internal/models"
	"socialfeed/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository performs every write that changes a post's comment,
// like or share rows. Each method runs the child-row change and the matching
// counter adjustment in one transaction.
type EngagementRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, comment *models.Comment) error
	ToggleLike(ctx context.Context, postID, userID uint) (*models.LikeToggleResult, error)
	CreateShare(ctx context.Context, share *models.Share) error
	ListLikes(ctx context.Context, postID uint) ([]*models.Like, error)
	ListShares(ctx context.Context, postID uint) ([]*models.Share, error)
}

type engagementRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{
		db:      db,
		log:     observability.NewRepoLogger("engagement"),
		metrics: observability.NewDatabaseMetrics("engagement"),
	}
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "CreateComment", "comments")
	defer span.End()
	defer r.metrics.TrackQuery("create_comment")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, comment.PostID)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		if err := incrementCounter(tx, post, CommentsCounter); err != nil {
			return err
		}
		return tx.Preload("Author").First(comment, comment.ID).Error
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return r.fail(ctx, err, "create_comment", "Comment")
	}

	cache.InvalidatePost(ctx, comment.PostID)
	r.log.LogCreate(ctx, map[string]interface{}{"comment_id": comment.ID, "post_id": comment.PostID})
	return nil
}

// DeleteComment removes comment and decrements its post's comments_count.
// A comment that is already gone yields NotFound and leaves the counter alone.
func (r *engagementRepository) DeleteComment(ctx context.Context, comment *models.Comment) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "DeleteComment", "comments")
	defer span.End()
	defer r.metrics.TrackQuery("delete_comment")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, comment.PostID)
		if models.IsCode(err, models.CodeNotFound) {
			return models.NewNotFoundError("Comment")
		}
		if err != nil {
			return err
		}
		res := tx.Delete(&models.Comment{}, comment.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Comment")
		}
		return decrementCounter(ctx, tx, post, CommentsCounter)
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return r.fail(ctx, err, "delete_comment", "Comment")
	}

	cache.InvalidatePost(ctx, comment.PostID)
	r.log.LogDelete(ctx, map[string]interface{}{"comment_id": comment.ID, "post_id": comment.PostID})
	return nil
}

// ToggleLike inserts a like for (postID, userID) when none exists and removes
// it otherwise. A concurrent toggle that wins the race surfaces as Conflict
// and this transaction rolls back without touching the counter.
func (r *engagementRepository) ToggleLike(ctx context.Context, postID, userID uint) (*models.LikeToggleResult, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ToggleLike", "likes")
	defer span.End()
	defer r.metrics.TrackQuery("toggle_like")()

	result := &models.LikeToggleResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}

		var existing models.Like
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		if existing.ID != 0 {
			res := tx.Delete(&models.Like{}, existing.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.NewConflictError("Like was changed concurrently", nil)
			}
			if err := decrementCounter(ctx, tx, post, LikesCounter); err != nil {
				return err
			}
			result.Outcome = models.LikeRemoved
		} else {
			like := &models.Like{PostID: postID, UserID: userID}
			res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.NewConflictError("Post already liked", nil)
			}
			if err := incrementCounter(tx, post, LikesCounter); err != nil {
				return err
			}
			if err := tx.Preload("User").First(like, like.ID).Error; err != nil {
				return err
			}
			result.Outcome = models.LikeCreated
			result.Like = like
		}

		if err := tx.Preload("Author").First(post, postID).Error; err != nil {
			return err
		}
		result.Post = post
		return nil
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, r.fail(ctx, err, "toggle_like", "Like")
	}

	span.SetAttributes(attribute.String("like.outcome", result.Outcome.String()))
	observability.LikeToggles.WithLabelValues(result.Outcome.String()).Inc()
	cache.InvalidatePost(ctx, postID)
	r.log.LogUpdate(ctx, map[string]interface{}{"post_id": postID, "user_id": userID, "outcome": result.Outcome.String()})
	return result, nil
}

func (r *engagementRepository) CreateShare(ctx context.Context, share *models.Share) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "CreateShare", "shares")
	defer span.End()
	defer r.metrics.TrackQuery("create_share")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, share.PostID)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(share).Error; err != nil {
			return err
		}
		if err := incrementCounter(tx, post, SharesCounter); err != nil {
			return err
		}
		return tx.Preload("User").First(share, share.ID).Error
	})
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return r.fail(ctx, err, "create_share", "Share")
	}

	cache.InvalidatePost(ctx, share.PostID)
	r.log.LogCreate(ctx, map[string]interface{}{"share_id": share.ID, "post_id": share.PostID})
	return nil
}

func (r *engagementRepository) ListLikes(ctx context.Context, postID uint) ([]*models.Like, error) {
	likes := []*models.Like{}
	err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, translateError(err, "Like")
	}
	return likes, nil
}

func (r *engagementRepository) ListShares(ctx context.Context, postID uint) ([]*models.Share, error) {
	shares := []*models.Share{}
	err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order(newestFirst).
		Find(&shares).Error
	if err != nil {
		return nil, translateError(err, "Share")
	}
	return shares, nil
}

// fail logs unexpected errors and translates err for the service layer.
func (r *engagementRepository) fail(ctx context.Context, err error, operation, resource string) error {
	translated := translateError(err, resource)
	if models.IsCode(translated, models.CodeInternal) {
		r.log.LogError(ctx, err, operation)
	}
	return translated
}
