package repositories

import (
	"testing"
	"time"

	"yatube/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	store := setupTestStore(t)
	posts := store.Posts()
	repo := store.Comments()

	post := newPost("leo", "Parent post")
	require.NoError(t, posts.Create(post))
	other := newPost("leo", "Another post")
	require.NoError(t, posts.Create(other))

	t.Run("create and get comment", func(t *testing.T) {
		comment := &models.Comment{Post: post.ID, Author: "max", Text: "First", Created: time.Now()}
		require.NoError(t, repo.Create(comment))
		assert.Equal(t, 1, comment.ID)

		got, err := repo.GetByID(post.ID, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", got.Text)
		assert.Equal(t, post.ID, got.Post)
	})

	t.Run("comment is not visible under another post", func(t *testing.T) {
		_, err := repo.GetByID(other.ID, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create under missing post", func(t *testing.T) {
		err := repo.Create(&models.Comment{Post: 999, Author: "max", Text: "lost", Created: time.Now()})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list is scoped to the post", func(t *testing.T) {
		require.NoError(t, repo.Create(&models.Comment{Post: other.ID, Author: "max", Text: "elsewhere", Created: time.Now()}))
		require.NoError(t, repo.Create(&models.Comment{Post: post.ID, Author: "leo", Text: "Second", Created: time.Now()}))

		comments, err := repo.ListByPost(post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, c := range comments {
			assert.Equal(t, post.ID, c.Post)
		}

		none, err := repo.ListByPost(12345)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("update comment", func(t *testing.T) {
		comment, err := repo.GetByID(post.ID, 1)
		require.NoError(t, err)
		comment.Text = "Edited"
		require.NoError(t, repo.Update(comment))

		got, err := repo.GetByID(post.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, "Edited", got.Text)

		assert.ErrorIs(t, repo.Update(&models.Comment{ID: 77, Post: post.ID}), ErrNotFound)
	})

	t.Run("delete comment", func(t *testing.T) {
		require.NoError(t, repo.Delete(post.ID, 1))
		_, err := repo.GetByID(post.ID, 1)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Delete(post.ID, 1), ErrNotFound)
	})
}
