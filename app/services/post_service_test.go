package services

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"yatube/app/auth"
	"yatube/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous requester is rejected", func(t *testing.T) {
		_, err := f.posts.CreatePost(auth.Anonymous, PostInput{Text: strPtr("hello")})
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	})

	t.Run("author is the requester", func(t *testing.T) {
		post, err := f.posts.CreatePost(auth.User("alice"), PostInput{Text: strPtr("hello")})
		require.NoError(t, err)
		assert.Equal(t, "alice", post.Author)
		assert.NotZero(t, post.ID)
		assert.False(t, post.PubDate.IsZero())
		assert.Nil(t, post.Group)
	})

	t.Run("missing text", func(t *testing.T) {
		_, err := f.posts.CreatePost(auth.User("alice"), PostInput{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "text")
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := f.posts.CreatePost(auth.User("alice"), PostInput{Text: strPtr("")})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "text")
	})

	t.Run("with group", func(t *testing.T) {
		group := f.createGroup(t, "cats")
		post, err := f.posts.CreatePost(auth.User("alice"), PostInput{
			Text:     strPtr("cats!"),
			Group:    intPtr(group.ID),
			GroupSet: true,
		})
		require.NoError(t, err)
		require.NotNil(t, post.Group)
		assert.Equal(t, group.ID, *post.Group)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := f.posts.CreatePost(auth.User("alice"), PostInput{
			Text:     strPtr("dogs"),
			Group:    intPtr(9999),
			GroupSet: true,
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "group")
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	f := newFixture(t)
	post := f.createPost(t, "alice", "original")

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.posts.UpdatePost(auth.Anonymous, http.MethodPatch, post.ID, PostInput{Text: strPtr("x")})
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.posts.UpdatePost(auth.User("alice"), http.MethodPatch, 9999, PostInput{Text: strPtr("x")})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("non-author is denied and nothing changes", func(t *testing.T) {
		_, err := f.posts.UpdatePost(auth.User("bob"), http.MethodPatch, post.ID, PostInput{Text: strPtr("hijacked")})
		var denied *PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.NotEmpty(t, denied.Message)

		stored, err := f.posts.GetPost(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", stored.Text)
	})

	t.Run("denial comes before validation", func(t *testing.T) {
		_, err := f.posts.UpdatePost(auth.User("bob"), http.MethodPut, post.ID, PostInput{})
		var denied *PermissionDeniedError
		assert.ErrorAs(t, err, &denied)
	})

	t.Run("author patches text", func(t *testing.T) {
		updated, err := f.posts.UpdatePost(auth.User("alice"), http.MethodPatch, post.ID, PostInput{Text: strPtr("edited")})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.Equal(t, "alice", updated.Author)
		assert.Equal(t, post.PubDate, updated.PubDate)
	})

	t.Run("put requires text", func(t *testing.T) {
		_, err := f.posts.UpdatePost(auth.User("alice"), http.MethodPut, post.ID, PostInput{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "text")
	})

	t.Run("patch group only keeps text", func(t *testing.T) {
		group := f.createGroup(t, "news")
		updated, err := f.posts.UpdatePost(auth.User("alice"), http.MethodPatch, post.ID, PostInput{
			Group:    intPtr(group.ID),
			GroupSet: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		require.NotNil(t, updated.Group)
		assert.Equal(t, group.ID, *updated.Group)

		cleared, err := f.posts.UpdatePost(auth.User("alice"), http.MethodPatch, post.ID, PostInput{GroupSet: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.Group)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	f := newFixture(t)
	post := f.createPost(t, "alice", "to delete")
	_, err := f.comments.CreateComment(auth.User("bob"), post.ID, CommentInput{Text: strPtr("nice")})
	require.NoError(t, err)

	err = f.posts.DeletePost(auth.Anonymous, post.ID)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	err = f.posts.DeletePost(auth.User("bob"), post.ID)
	var denied *PermissionDeniedError
	assert.True(t, errors.As(err, &denied))

	require.NoError(t, f.posts.DeletePost(auth.User("alice"), post.ID))

	_, err = f.posts.GetPost(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = f.comments.ListComments(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = f.posts.DeletePost(auth.User("alice"), post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPostService_ListPostsPage(t *testing.T) {
	f := newFixture(t)
	for _, text := range []string{"one", "two", "three", "four"} {
		f.createPost(t, "alice", text)
	}

	all, err := f.posts.ListPosts()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, count, err := f.posts.ListPostsPage(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	require.Len(t, page, 2)
	assert.Equal(t, "two", page[0].Text)
	assert.Equal(t, "three", page[1].Text)

	page, count, err = f.posts.ListPostsPage(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Empty(t, page)

	page, _, err = f.posts.ListPostsPage(math.MaxInt, 1)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "four", page[2].Text)
}
