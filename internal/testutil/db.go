// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"socialfeed/internal/database"
	"socialfeed/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userSeq atomic.Uint64

// NewSQLiteDB opens a migrated SQLite database in a per-test temp file.
// A file (rather than :memory:) keeps every pooled connection on the same
// data, which the transactional code paths rely on.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "socialfeed.db")
	cfg := database.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(path)), cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewMockDB returns a gorm DB on the postgres dialector backed by sqlmock.
func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db, mock
}

// CreateUser inserts a user with a unique username derived from name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	n := userSeq.Add(1)
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", name, n),
		Email:     fmt.Sprintf("%s%d@example.com", name, n),
		FirstName: name,
		Password:  "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a post authored by author.
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Post {
	t.Helper()

	post := &models.Post{AuthorID: author.ID, Content: content}
	require.NoError(t, db.Omit("Author").Create(post).Error)
	post.Author = *author
	return post
}

// ReloadPost reads the post row fresh from db.
func ReloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()

	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	return &post
}

// CountRows returns the row count of model filtered by post id.
func CountRows(t *testing.T, db *gorm.DB, model interface{}, postID uint) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Where("post_id = ?", postID).Count(&n).Error)
	return n
}
