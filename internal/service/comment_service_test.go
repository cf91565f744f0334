package service

import (
	"testing"

	"socialfeed/internal/models"
	"socialfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_DeleteTwiceScenario(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")
	actor := models.ActorFor(author.ID)
	post := testutil.CreatePost(t, s.db, author, "hello")

	first, err := s.comments.CreateComment(ctx(), actor, CreateCommentInput{PostID: post.ID, Content: "one"})
	require.NoError(t, err)
	_, err = s.comments.CreateComment(ctx(), actor, CreateCommentInput{PostID: post.ID, Content: "two"})
	require.NoError(t, err)
	assert.Equal(t, 2, testutil.ReloadPost(t, s.db, post.ID).CommentsCount)

	require.NoError(t, s.comments.DeleteComment(ctx(), actor, first.ID))
	assert.Equal(t, 1, testutil.ReloadPost(t, s.db, post.ID).CommentsCount)

	err = s.comments.DeleteComment(ctx(), actor, first.ID)
	assertAppError(t, err, models.CodeNotFound, "Comment not found")
	assert.Equal(t, 1, testutil.ReloadPost(t, s.db, post.ID).CommentsCount)
}

func TestCommentService_NonAuthorCannotDelete(t *testing.T) {
	s := newTestServices(t)
	author := testutil.CreateUser(t, s.db, "author")
	other := testutil.CreateUser(t, s.db, "other")
	post := testutil.CreatePost(t, s.db, author, "hello")

	comment, err := s.comments.CreateComment(ctx(), models.ActorFor(author.ID), CreateCommentInput{PostID: post.ID, Content: "mine"})
	require.NoError(t, err)

	// Owning the post does not grant deleting someone else's comment.
	theirs, err := s.comments.CreateComment(ctx(), models.ActorFor(other.ID), CreateCommentInput{PostID: post.ID, Content: "theirs"})
	require.NoError(t, err)

	err = s.comments.DeleteComment(ctx(), models.ActorFor(other.ID), comment.ID)
	assertAppError(t, err, models.CodeForbidden, "Not authorized to delete this comment")
	err = s.comments.DeleteComment(ctx(), models.ActorFor(author.ID), theirs.ID)
	assertAppError(t, err, models.CodeForbidden, "Not authorized to delete this comment")

	assert.Equal(t, int64(2), testutil.CountRows(t, s.db, &models.Comment{}, post.ID))
	assert.Equal(t, 2, testutil.ReloadPost(t, s.db, post.ID).CommentsCount)
}

func TestCommentService_CreateValidationAndMissingPost(t *testing.T) {
	s := newTestServices(t)
	user := testutil.CreateUser(t, s.db, "user")
	actor := models.ActorFor(user.ID)
	post := testutil.CreatePost(t, s.db, user, "hello")

	_, err := s.comments.CreateComment(ctx(), actor, CreateCommentInput{PostID: post.ID, Content: ""})
	assertAppError(t, err, models.CodeValidation, "Content is required")

	_, err = s.comments.CreateComment(ctx(), actor, CreateCommentInput{PostID: 999, Content: "hi"})
	assertAppError(t, err, models.CodeNotFound, "Post not found")

	err = s.comments.DeleteComment(ctx(), actor, 999)
	assertAppError(t, err, models.CodeNotFound, "Comment not found")

	assert.Equal(t, 0, testutil.ReloadPost(t, s.db, post.ID).CommentsCount)
}

func TestCommentService_ListComments(t *testing.T) {
	s := newTestServices(t)
	user := testutil.CreateUser(t, s.db, "user")
	post := testutil.CreatePost(t, s.db, user, "hello")

	for _, c := range []string{"first", "second"} {
		_, err := s.comments.CreateComment(ctx(), models.ActorFor(user.ID), CreateCommentInput{PostID: post.ID, Content: c})
		require.NoError(t, err)
	}

	comments, err := s.comments.ListComments(ctx(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, user.Username, comments[0].Author.Username)

	comments, err = s.comments.ListComments(ctx(), 999)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
