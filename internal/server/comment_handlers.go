package server

import (
	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
	"socialfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
// @Summary List comments
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	return respondRead(c, comments, err, []*models.Comment{})
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Add comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body CreateCommentRequest true "Comment"
// @Success 200 {object} CommentResult
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), middleware.ActorFrom(c), service.CreateCommentInput{
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return c.JSON(CommentResult{Message: failureMessage(c, err)})
	}
	return c.JSON(CommentResult{Comment: comment, Success: true, Message: "Comment added successfully"})
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete comment
// @Description Only the comment's author may delete it.
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} DeleteResult
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), middleware.ActorFrom(c), id); err != nil {
		return c.JSON(DeleteResult{Message: failureMessage(c, err)})
	}
	return c.JSON(DeleteResult{Success: true, Message: "Comment deleted successfully"})
}
