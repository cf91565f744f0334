package server

import (
	"socialfeed/internal/middleware"
	"socialfeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetLikes handles GET /api/posts/:id/likes
// @Summary List likes
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Like
// @Router /posts/{id}/likes [get]
func (s *Server) GetLikes(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	likes, err := s.engagementService.ListLikes(c.UserContext(), postID)
	return respondRead(c, likes, err, []*models.Like{})
}

// GetShares handles GET /api/posts/:id/shares
// @Summary List shares
// @Description Shares of a post, newest first. A post may be shared by the same user more than once.
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Share
// @Router /posts/{id}/shares [get]
func (s *Server) GetShares(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	shares, err := s.engagementService.ListShares(c.UserContext(), postID)
	return respondRead(c, shares, err, []*models.Share{})
}

// ToggleLike handles POST /api/posts/:id/like
// @Summary Like or unlike a post
// @Description Likes the post, or removes the caller's like when one exists. like is null after an unlike.
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} LikeResult
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.engagementService.ToggleLike(c.UserContext(), middleware.ActorFrom(c), postID)
	if err != nil {
		return c.JSON(LikeResult{Message: failureMessage(c, err)})
	}

	if result.Outcome == models.LikeRemoved {
		return c.JSON(LikeResult{Success: true, Message: "Post unliked successfully"})
	}
	return c.JSON(LikeResult{Success: true, Message: "Post liked successfully", Like: result.Like})
}

// SharePost handles POST /api/posts/:id/share
// @Summary Share a post
// @Tags engagement
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} ShareResult
// @Security BearerAuth
// @Router /posts/{id}/share [post]
func (s *Server) SharePost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	share, err := s.engagementService.SharePost(c.UserContext(), middleware.ActorFrom(c), postID)
	if err != nil {
		return c.JSON(ShareResult{Message: failureMessage(c, err)})
	}
	return c.JSON(ShareResult{Share: share, Success: true, Message: "Post shared successfully"})
}
