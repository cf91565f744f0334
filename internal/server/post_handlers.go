package server

import (
	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
	"socialfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description Newest-first page of posts with their authors
// @Tags posts
// @Produce json
// @Param limit query int false "Page size (default 10; no upper bound unless PAGINATION_MAX_LIMIT is set)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c)
	posts, err := s.postService.ListPosts(c.UserContext(), page.Limit, page.Offset)
	return respondRead(c, posts, err, []*models.Post{})
}

// GetPost handles GET /api/posts/:id
// @Summary Get post
// @Description Post with comments, likes and shares; null when absent
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	return respondRead(c, post, err, nil)
}

// GetUserPosts handles GET /api/users/:id/posts
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Post
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	posts, err := s.postService.ListUserPosts(c.UserContext(), id)
	return respondRead(c, posts, err, []*models.Post{})
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post"
// @Success 200 {object} PostResult
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), middleware.ActorFrom(c), service.CreatePostInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return c.JSON(PostResult{Message: failureMessage(c, err)})
	}
	return c.JSON(PostResult{Post: post, Success: true, Message: "Post created successfully"})
}

// UpdatePost handles PATCH /api/posts/:id
// @Summary Update post
// @Description Only the author may update. Empty content is ignored; empty image_url clears the image.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Changes"
// @Success 200 {object} PostResult
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req UpdatePostRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), middleware.ActorFrom(c), service.UpdatePostInput{
		PostID:   id,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return c.JSON(PostResult{Message: failureMessage(c, err)})
	}
	return c.JSON(PostResult{Post: post, Success: true, Message: "Post updated successfully"})
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Only the author may delete. Comments, likes and shares go with it.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} DeleteResult
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), middleware.ActorFrom(c), id); err != nil {
		return c.JSON(DeleteResult{Message: failureMessage(c, err)})
	}
	return c.JSON(DeleteResult{Success: true, Message: "Post deleted successfully"})
}
