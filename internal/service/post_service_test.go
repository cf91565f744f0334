package service

import (
	"strings"
	"testing"
	"time"

	"socialfeed/internal/models"
	"socialfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestPostService_CreatePost(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")

	post, err := s.posts.CreatePost(ctx(), models.ActorFor(author.ID), CreatePostInput{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, author.Username, post.Author.Username)
	assert.Equal(t, 0, post.LikesCount)
	assert.Nil(t, post.ImageURL)

	post, err = s.posts.CreatePost(ctx(), models.ActorFor(author.ID), CreatePostInput{
		Content:  "with image",
		ImageURL: strp("https://cdn.example.com/cat.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, post.ImageURL)
	assert.Equal(t, "https://cdn.example.com/cat.png", *post.ImageURL)
}

func TestPostService_CreatePostValidation(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")
	actor := models.ActorFor(author.ID)

	tests := []struct {
		name string
		in   CreatePostInput
		msg  string
	}{
		{"Empty Content", CreatePostInput{Content: ""}, "Content is required"},
		{"Too Long", CreatePostInput{Content: strings.Repeat("a", 50001)}, "Content too long (max 50000 characters)"},
		{"Relative Image", CreatePostInput{Content: "x", ImageURL: strp("/a.png")}, "image_url must use http or https"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.posts.CreatePost(ctx(), actor, tt.in)
			assertAppError(t, err, models.CodeValidation, tt.msg)
		})
	}

	var n int64
	require.NoError(t, s.db.Model(&models.Post{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPostService_UpdatePostByAuthor(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")
	actor := models.ActorFor(author.ID)

	post, err := s.posts.CreatePost(ctx(), actor, CreatePostInput{Content: "hello", ImageURL: strp("https://example.com/a.png")})
	require.NoError(t, err)

	// Empty content is ignored; other fields absent are unchanged.
	updated, err := s.posts.UpdatePost(ctx(), actor, UpdatePostInput{PostID: post.ID, Content: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)
	require.NotNil(t, updated.ImageURL)

	updated, err = s.posts.UpdatePost(ctx(), actor, UpdatePostInput{PostID: post.ID, Content: strp("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	require.NotNil(t, updated.ImageURL)

	// An empty image_url clears the image.
	updated, err = s.posts.UpdatePost(ctx(), actor, UpdatePostInput{PostID: post.ID, ImageURL: strp("")})
	require.NoError(t, err)
	assert.Nil(t, updated.ImageURL)

	stored := testutil.ReloadPost(t, s.db, post.ID)
	assert.Equal(t, "edited", stored.Content)
	assert.Nil(t, stored.ImageURL)
}

func TestPostService_NonAuthorCannotModify(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")
	intruder := testutil.CreateUser(t, s.db, "intruder")

	post, err := s.posts.CreatePost(ctx(), models.ActorFor(author.ID), CreatePostInput{Content: "mine"})
	require.NoError(t, err)

	_, err = s.posts.UpdatePost(ctx(), models.ActorFor(intruder.ID), UpdatePostInput{PostID: post.ID, Content: strp("hijacked")})
	assertAppError(t, err, models.CodeForbidden, "Not authorized to update this post")

	err = s.posts.DeletePost(ctx(), models.ActorFor(intruder.ID), post.ID)
	assertAppError(t, err, models.CodeForbidden, "Not authorized to delete this post")

	stored := testutil.ReloadPost(t, s.db, post.ID)
	assert.Equal(t, "mine", stored.Content)
}

func TestPostService_MissingPost(t *testing.T) {
	s := newTestServices(t)
	user := testutil.CreateUser(t, s.db, "user")
	actor := models.ActorFor(user.ID)

	_, err := s.posts.UpdatePost(ctx(), actor, UpdatePostInput{PostID: 404, Content: strp("x")})
	assertAppError(t, err, models.CodeNotFound, "Post not found")

	err = s.posts.DeletePost(ctx(), actor, 404)
	assertAppError(t, err, models.CodeNotFound, "Post not found")

	_, err = s.posts.GetPost(ctx(), 404)
	assertAppError(t, err, models.CodeNotFound, "Post not found")
}

func TestPostService_DeletePostCascades(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")
	fan := testutil.CreateUser(t, s.db, "fan")

	post, err := s.posts.CreatePost(ctx(), models.ActorFor(author.ID), CreatePostInput{Content: "hello"})
	require.NoError(t, err)
	_, err = s.comments.CreateComment(ctx(), models.ActorFor(fan.ID), CreateCommentInput{PostID: post.ID, Content: "hi"})
	require.NoError(t, err)
	_, err = s.engagement.ToggleLike(ctx(), models.ActorFor(fan.ID), post.ID)
	require.NoError(t, err)
	_, err = s.engagement.SharePost(ctx(), models.ActorFor(fan.ID), post.ID)
	require.NoError(t, err)

	require.NoError(t, s.posts.DeletePost(ctx(), models.ActorFor(author.ID), post.ID))

	assert.Zero(t, testutil.CountRows(t, s.db, &models.Comment{}, post.ID))
	assert.Zero(t, testutil.CountRows(t, s.db, &models.Like{}, post.ID))
	assert.Zero(t, testutil.CountRows(t, s.db, &models.Share{}, post.ID))
}

func TestPostService_ListPostsNewestFirst(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")

	older := &models.Post{AuthorID: author.ID, Content: "older", CreatedAt: time.Now().Add(-time.Minute)}
	require.NoError(t, s.db.Omit("Author").Create(older).Error)
	newer, err := s.posts.CreatePost(ctx(), models.ActorFor(author.ID), CreatePostInput{Content: "newer"})
	require.NoError(t, err)

	one := 1
	page, err := s.posts.ListPosts(ctx(), &one, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, newer.ID, page[0].ID)

	zero := 0
	page, err = s.posts.ListPosts(ctx(), &zero, 0)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)

	page, err = s.posts.ListPosts(ctx(), nil, -5)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	byAuthor, err := s.posts.ListUserPosts(ctx(), author.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	assert.Equal(t, "newer", byAuthor[0].Content)
}
