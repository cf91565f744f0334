package service

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/observability"
	"socialfeed/internal/repository"
	"socialfeed/internal/validation"
)

type CommentService struct {
	commentRepo    repository.CommentRepository
	engagementRepo repository.EngagementRepository
}

type CreateCommentInput struct {
	PostID  uint
	Content string
}

func NewCommentService(commentRepo repository.CommentRepository, engagementRepo repository.EngagementRepository) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, actor models.Actor, in CreateCommentInput) (*models.Comment, error) {
	observability.LogServiceCall(ctx, "CommentService", "CreateComment", map[string]interface{}{"user_id": actor.UserID, "post_id": in.PostID})
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: actor.UserID,
		Content:  in.Content,
	}
	if err := s.engagementRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the post's comments newest-first. An unknown post
// has no comments.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) DeleteComment(ctx context.Context, actor models.Actor, commentID uint) error {
	observability.LogServiceCall(ctx, "CommentService", "DeleteComment", map[string]interface{}{"user_id": actor.UserID, "comment_id": commentID})
	if err := requireActor(actor); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !CanModify(actor, comment.AuthorID) {
		return models.NewForbiddenError("Not authorized to delete this comment")
	}
	return s.engagementRepo.DeleteComment(ctx, comment)
}
