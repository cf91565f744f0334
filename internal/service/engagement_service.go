package service

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/observability"
	"socialfeed/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// EngagementService handles likes and shares. Neither requires ownership.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
}

func NewEngagementService(engagementRepo repository.EngagementRepository) *EngagementService {
	return &EngagementService{engagementRepo: engagementRepo}
}

func (s *EngagementService) ToggleLike(ctx context.Context, actor models.Actor, postID uint) (*models.LikeToggleResult, error) {
	observability.LogServiceCall(ctx, "EngagementService", "ToggleLike", map[string]interface{}{"user_id": actor.UserID, "post_id": postID})
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	span, ctx := observability.StartSpan(ctx, "service.ToggleLike",
		attribute.Int64("post.id", int64(postID)),
		attribute.Int64("user.id", int64(actor.UserID)),
	)
	defer span.End()

	result, err := s.engagementRepo.ToggleLike(ctx, postID, actor.UserID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.String("like.outcome", result.Outcome.String()))
	return result, nil
}

func (s *EngagementService) SharePost(ctx context.Context, actor models.Actor, postID uint) (*models.Share, error) {
	observability.LogServiceCall(ctx, "EngagementService", "SharePost", map[string]interface{}{"user_id": actor.UserID, "post_id": postID})
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	share := &models.Share{PostID: postID, UserID: actor.UserID}
	if err := s.engagementRepo.CreateShare(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

func (s *EngagementService) ListLikes(ctx context.Context, postID uint) ([]*models.Like, error) {
	return s.engagementRepo.ListLikes(ctx, postID)
}

// ListShares returns a post's shares, newest first.
func (s *EngagementService) ListShares(ctx context.Context, postID uint) ([]*models.Share, error) {
	return s.engagementRepo.ListShares(ctx, postID)
}
