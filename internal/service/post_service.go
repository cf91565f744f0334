package service

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/observability"
	"socialfeed/internal/repository"
	"socialfeed/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	paging   Pagination
}

type CreatePostInput struct {
	Content  string
	ImageURL *string
}

// UpdatePostInput carries a partial update. A nil field is left unchanged;
// an empty Content is ignored; an empty ImageURL clears the image.
type UpdatePostInput struct {
	PostID   uint
	Content  *string
	ImageURL *string
}

func NewPostService(postRepo repository.PostRepository, paging Pagination) *PostService {
	return &PostService{postRepo: postRepo, paging: paging}
}

// ListPosts returns a newest-first page of posts. A zero limit yields an
// empty page without touching storage.
func (s *PostService) ListPosts(ctx context.Context, limit *int, offset int) ([]*models.Post, error) {
	l, o := s.paging.Normalize(limit, offset)
	if l == 0 {
		return []*models.Post{}, nil
	}
	return s.postRepo.List(ctx, l, o)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetDetailed(ctx, id)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, userID)
}

func (s *PostService) CreatePost(ctx context.Context, actor models.Actor, in CreatePostInput) (*models.Post, error) {
	observability.LogServiceCall(ctx, "PostService", "CreatePost", map[string]interface{}{"user_id": actor.UserID})
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	imageURL, err := normalizeImageURL(in.ImageURL)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: actor.UserID,
		Content:  in.Content,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actor models.Actor, in UpdatePostInput) (*models.Post, error) {
	observability.LogServiceCall(ctx, "PostService", "UpdatePost", map[string]interface{}{"user_id": actor.UserID, "post_id": in.PostID})
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, post.AuthorID) {
		return nil, models.NewForbiddenError("Not authorized to update this post")
	}

	if in.Content != nil && *in.Content != "" {
		if err := validation.ValidatePostContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *in.Content
	}
	if in.ImageURL != nil {
		imageURL, err := normalizeImageURL(in.ImageURL)
		if err != nil {
			return nil, err
		}
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, actor models.Actor, postID uint) error {
	observability.LogServiceCall(ctx, "PostService", "DeletePost", map[string]interface{}{"user_id": actor.UserID, "post_id": postID})
	if err := requireActor(actor); err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if !CanModify(actor, post.AuthorID) {
		return models.NewForbiddenError("Not authorized to delete this post")
	}
	return s.postRepo.Delete(ctx, postID)
}

// normalizeImageURL validates a supplied image URL. Nil and empty both mean
// "no image".
func normalizeImageURL(raw *string) (*string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if err := validation.ValidateImageURL(*raw); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	v := *raw
	return &v, nil
}
