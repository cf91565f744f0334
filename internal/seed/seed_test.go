package seed

import (
	"context"
	"testing"

	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
	"socialfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "seed-test-secret-with-enough-length-0123"

func TestSeeder_RunKeepsCountersConsistent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.NumUsers = 3
	opts.NumPosts = 6
	opts.LikeRatio = 0.5
	opts.JWTSecret = testSecret
	opts.TokenCount = 2

	res, err := NewSeeder(db, 42).Run(ctx, opts)
	require.NoError(t, err)
	require.Len(t, res.Users, 3)
	require.Len(t, res.Posts, 6)

	var likes, comments, shares int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Share{}).Count(&shares).Error)
	assert.Equal(t, int64(res.Likes), likes)
	assert.Equal(t, int64(res.Comments), comments)
	assert.Equal(t, int64(res.Shares), shares)

	for _, p := range res.Posts {
		stored := testutil.ReloadPost(t, db, p.ID)
		assert.Equal(t, testutil.CountRows(t, db, &models.Like{}, p.ID), int64(stored.LikesCount))
		assert.Equal(t, testutil.CountRows(t, db, &models.Comment{}, p.ID), int64(stored.CommentsCount))
		assert.Equal(t, testutil.CountRows(t, db, &models.Share{}, p.ID), int64(stored.SharesCount))
	}

	require.Len(t, res.Tokens, 2)
	for i, tok := range res.Tokens {
		userID, err := middleware.ParseToken(testSecret, tok.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Users[i].ID, userID)
	}
}

func TestSeeder_UsersHaveHashedPassword(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.NumUsers = 1
	opts.NumPosts = 0

	res, err := NewSeeder(db, 7).Run(ctx, opts)
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Empty(t, res.Tokens)

	var stored models.User
	require.NoError(t, db.First(&stored, res.Users[0].ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(DefaultPassword)))
}

func TestSeeder_ClearAllAndIsEmpty(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	empty, err := IsEmpty(ctx, db)
	require.NoError(t, err)
	assert.True(t, empty)

	opts := DefaultOptions()
	opts.NumUsers = 2
	opts.NumPosts = 2
	s := NewSeeder(db, 1)
	_, err = s.Run(ctx, opts)
	require.NoError(t, err)

	empty, err = IsEmpty(ctx, db)
	require.NoError(t, err)
	assert.False(t, empty)

	require.NoError(t, s.ClearAll(ctx))
	empty, err = IsEmpty(ctx, db)
	require.NoError(t, err)
	assert.True(t, empty)

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Zero(t, posts)
}

func TestSeeder_UsernameFitsPolicy(t *testing.T) {
	s := NewSeeder(testutil.NewSQLiteDB(t), 99)
	for i := 0; i < 50; i++ {
		name := s.username(i)
		assert.GreaterOrEqual(t, len(name), 3)
		assert.LessOrEqual(t, len(name), 30)
		assert.Regexp(t, `^[a-zA-Z0-9][a-zA-Z0-9_]*[0-9]$`, name)
	}
}

func TestSignTokens_CountIsClamped(t *testing.T) {
	users := []*models.User{{ID: 1, Username: "ann1"}, {ID: 2, Username: "ben2"}}

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"Negative", -1, 0},
		{"Zero", 0, 0},
		{"Within", 1, 1},
		{"More Than Users", 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := signTokens(users, Options{JWTSecret: testSecret, TokenCount: tt.count})
			require.NoError(t, err)
			assert.Len(t, tokens, tt.want)
		})
	}
}
