package service

import (
	"context"
	"errors"
	"testing"

	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServices struct {
	db         *gorm.DB
	posts      *PostService
	comments   *CommentService
	engagement *EngagementService
	users      *UserService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	engagementRepo := repository.NewEngagementRepository(db)
	return &testServices{
		db:         db,
		posts:      NewPostService(repository.NewPostRepository(db), DefaultPagination),
		comments:   NewCommentService(repository.NewCommentRepository(db), engagementRepo),
		engagement: NewEngagementService(engagementRepo),
		users:      NewUserService(repository.NewUserRepository(db)),
	}
}

func assertAppError(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

// untouchedRepos fail the test on any storage call.
type untouchedRepos struct{ t *testing.T }

func (u untouchedRepos) fail() { u.t.Helper(); u.t.Fatal("storage must not be reached") }

func (u untouchedRepos) Create(context.Context, *models.Post) error { u.fail(); return nil }
func (u untouchedRepos) GetByID(context.Context, uint) (*models.Post, error) {
	u.fail()
	return nil, nil
}
func (u untouchedRepos) GetDetailed(context.Context, uint) (*models.Post, error) {
	u.fail()
	return nil, nil
}
func (u untouchedRepos) List(context.Context, int, int) ([]*models.Post, error) {
	u.fail()
	return nil, nil
}
func (u untouchedRepos) ListByAuthor(context.Context, uint) ([]*models.Post, error) {
	u.fail()
	return nil, nil
}
func (u untouchedRepos) Update(context.Context, *models.Post) error { u.fail(); return nil }
func (u untouchedRepos) Delete(context.Context, uint) error         { u.fail(); return nil }

type untouchedEngagement struct{ t *testing.T }

func (u untouchedEngagement) fail() { u.t.Helper(); u.t.Fatal("storage must not be reached") }

func (u untouchedEngagement) CreateComment(context.Context, *models.Comment) error {
	u.fail()
	return nil
}
func (u untouchedEngagement) DeleteComment(context.Context, *models.Comment) error {
	u.fail()
	return nil
}
func (u untouchedEngagement) ToggleLike(context.Context, uint, uint) (*models.LikeToggleResult, error) {
	u.fail()
	return nil, nil
}
func (u untouchedEngagement) CreateShare(context.Context, *models.Share) error { u.fail(); return nil }
func (u untouchedEngagement) ListLikes(context.Context, uint) ([]*models.Like, error) {
	u.fail()
	return nil, nil
}
func (u untouchedEngagement) ListShares(context.Context, uint) ([]*models.Share, error) {
	u.fail()
	return nil, nil
}

type untouchedComments struct{ t *testing.T }

func (u untouchedComments) GetByID(context.Context, uint) (*models.Comment, error) {
	u.t.Fatal("storage must not be reached")
	return nil, nil
}
func (u untouchedComments) ListByPost(context.Context, uint) ([]*models.Comment, error) {
	u.t.Fatal("storage must not be reached")
	return nil, nil
}

func ctx() context.Context { return context.Background() }
