package server

import (
	"errors"
	"strconv"

	"socialfeed/internal/middleware"
	"socialfeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters. A nil Limit means
// the caller did not ask for one.
type Pagination struct {
	Limit  *int
	Offset int
}

// parsePagination reads limit and offset. Unparseable values are treated as
// absent; range normalization happens in the service.
func parsePagination(c *fiber.Ctx) Pagination {
	var page Pagination
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			page.Limit = &limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			page.Offset = offset
		}
	}
	return page
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into dst, writing a 400 on failure.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// failureMessage turns a service error into the client-visible message of a
// mutation envelope. Internal failures are logged and reported generically.
func failureMessage(c *fiber.Ctx, err error) string {
	code := models.ErrorCode(err)
	var appErr *models.AppError
	if code != models.CodeInternal && errors.As(err, &appErr) {
		return appErr.Message
	}
	middleware.Logger.ErrorContext(c.UserContext(), "mutation failed",
		"error", err.Error(),
		"code", code,
		"path", c.Path(),
	)
	return "Internal server error"
}

// respondRead writes the result of a read. Not-found reads answer with
// emptyValue; any other failure is a 500.
func respondRead(c *fiber.Ctx, value interface{}, err error, emptyValue interface{}) error {
	if err == nil {
		return c.JSON(value)
	}
	code := models.ErrorCode(err)
	if code == models.CodeNotFound {
		return c.JSON(emptyValue)
	}
	middleware.Logger.ErrorContext(c.UserContext(), "read failed",
		"error", err.Error(),
		"code", code,
		"path", c.Path(),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
