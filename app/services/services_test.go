package services

import (
	"testing"
	"time"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	posts    *PostService
	comments *CommentService
	groups   *GroupService
	users    *UserService
	postRepo *mock.PostRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	postRepo, commentRepo := mock.NewRepositories()
	groupRepo := mock.NewGroupRepository()
	tokens := auth.NewTokenIssuer([]byte("test-signing-key"), "yatube-test", time.Minute, time.Hour)

	return &fixture{
		posts:    NewPostService(postRepo, groupRepo),
		comments: NewCommentService(commentRepo, postRepo),
		groups:   NewGroupService(groupRepo),
		users:    NewUserService(mock.NewUserRepository(), tokens),
		postRepo: postRepo,
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func (f *fixture) createPost(t *testing.T, author, text string) *models.Post {
	t.Helper()
	post, err := f.posts.CreatePost(auth.User(author), PostInput{Text: strPtr(text)})
	require.NoError(t, err)
	return post
}

func (f *fixture) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, f.groups.CreateGroup(group))
	return group
}
