package repository

import (
	"context"
	"time"

	"socialfeed/internal/cache"
	"socialfeed/internal/models"
	"socialfeed/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "created_at DESC, id DESC"

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID loads the post row with its author from the primary.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// GetDetailed loads the post with author, comments, likes and shares.
	GetDetailed(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db      *gorm.DB
	log     *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:      db,
		log:     observability.NewRepoLogger("posts"),
		metrics: observability.NewDatabaseMetrics("posts"),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("create")()

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return translateError(err, "Post")
	}
	if err := db.Preload("Author").First(post, post.ID).Error; err != nil {
		return translateError(err, "Post")
	}

	cache.InvalidatePostsList(ctx)
	r.log.LogCreate(ctx, map[string]interface{}{"post_id": post.ID, "author_id": post.AuthorID})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer r.metrics.TrackQuery("get")()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, translateError(err, "Post")
	}
	return &post, nil
}

func (r *postRepository) GetDetailed(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	// Cached snapshots come from the primary: a lagging replica would
	// store pre-write state under the post's new generation.
	key := cache.PostKey(ctx, id)
	err := cache.Aside(ctx, "post", key, &post, cache.PostTTL, func() error {
		defer r.metrics.TrackQuery("get_detailed")()
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order(newestFirst) }).
			Preload("Comments.Author").
			Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
			Preload("Likes.User").
			Preload("Shares", func(db *gorm.DB) *gorm.DB { return db.Order(newestFirst) }).
			Preload("Shares.User").
			First(&post, id).Error
	})
	if err != nil {
		return nil, translateError(err, "Post")
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	posts := []*models.Post{}
	fetch := func(db *gorm.DB) func() error {
		return func() error {
			defer r.metrics.TrackQuery("list")()
			return db.WithContext(ctx).
				Preload("Author").
				Order(newestFirst).
				Limit(limit).
				Offset(offset).
				Find(&posts).Error
		}
	}

	var err error
	if offset == 0 && limit <= cache.ListCacheMaxLimit {
		key := cache.PostsListKey(ctx, limit)
		err = cache.Aside(ctx, "posts_list", key, &posts, cache.ListTTL, fetch(r.db))
	} else {
		err = fetch(readDB(r.db))()
	}
	if err != nil {
		return nil, translateError(err, "Post")
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	defer r.metrics.TrackQuery("list_by_author")()

	posts := []*models.Post{}
	err := readDB(r.db).WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order(newestFirst).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "Post")
	}
	return posts, nil
}

// Update writes content and image_url. Counters are never written here.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("update")()

	post.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"content":    post.Content,
			"image_url":  post.ImageURL,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return translateError(res.Error, "Post")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}

	cache.InvalidatePost(ctx, post.ID)
	r.log.LogUpdate(ctx, map[string]interface{}{"post_id": post.ID})
	return nil
}

// Delete removes the post and its comments, likes and shares in one
// transaction. The child deletes duplicate the FK cascade so the result does
// not depend on the connection enforcing foreign keys.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&models.Comment{}, &models.Like{}, &models.Share{}} {
			if err := tx.Where("post_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post")
		}
		return nil
	})
	if err != nil {
		if !models.IsCode(err, models.CodeNotFound) {
			r.log.LogError(ctx, err, "delete")
		}
		return translateError(err, "Post")
	}

	cache.InvalidatePost(ctx, id)
	r.log.LogDelete(ctx, map[string]interface{}{"post_id": id})
	return nil
}
