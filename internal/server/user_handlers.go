package server

import (
	"socialfeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	return respondRead(c, users, err, []*models.User{})
}

// GetUserByUsername handles GET /api/users/by-username/:username
// @Summary Look up a user by username
// @Description Returns null when no user has the username.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Router /users/by-username/{username} [get]
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByUsername(c.UserContext(), c.Params("username"))
	return respondRead(c, user, err, nil)
}
