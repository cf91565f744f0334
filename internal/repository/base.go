// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"socialfeed/internal/database"
	"socialfeed/internal/models"

	"gorm.io/gorm"
)

// readDB returns the read replica when one is configured.
func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// translateError maps storage errors onto the application error taxonomy.
// resource names the entity in NotFound messages, e.g. "Post".
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(resource+" already exists", err)
	default:
		return models.NewInternalError(err)
	}
}
