package services

import (
	"errors"
	"fmt"
	"net/http"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/permissions"
	"yatube/app/repositories"
)

// PostInput carries the writable post fields of a create or update request.
// A nil Text means the field was not supplied. GroupSet distinguishes an
// omitted group from an explicit null.
type PostInput struct {
	Text     *string
	Group    *int
	GroupSet bool
}

// PostService handles business logic for posts
type PostService struct {
	postRepo  repositories.PostRepository
	groupRepo repositories.GroupRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// ListPosts returns every post in ID order
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List(0, 0)
}

// ListPostsPage returns one window of posts plus the total number of posts
func (s *PostService) ListPostsPage(limit, offset int) ([]*models.Post, int, error) {
	if offset < 0 {
		offset = 0
	}
	count, err := s.postRepo.Count()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}
	posts, err := s.postRepo.List(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// AuthorizeCreate reports whether requester may create posts at all
func (s *PostService) AuthorizeCreate(requester auth.Identity) error {
	if requester.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	return nil
}

// CreatePost creates a post authored by the requester. Any author in the
// input is ignored.
func (s *PostService) CreatePost(requester auth.Identity, in PostInput) (*models.Post, error) {
	if err := s.AuthorizeCreate(requester); err != nil {
		return nil, err
	}

	post := &models.Post{Author: requester.Username}
	if in.Text == nil {
		return nil, invalidField("text", "this field is required")
	}
	if err := s.apply(post, in); err != nil {
		return nil, err
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost changes the text and group of a post the requester authored.
// PUT requires text; PATCH only touches supplied fields.
func (s *PostService) UpdatePost(requester auth.Identity, method string, id int, in PostInput) (*models.Post, error) {
	post, err := s.Authorize(requester, method, id)
	if err != nil {
		return nil, err
	}

	if method == http.MethodPut && in.Text == nil {
		return nil, invalidField("text", "this field is required")
	}
	if err := s.apply(post, in); err != nil {
		return nil, err
	}
	if err := post.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost deletes a post the requester authored, along with its comments
func (s *PostService) DeletePost(requester auth.Identity, id int) error {
	if _, err := s.Authorize(requester, http.MethodDelete, id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// Authorize loads post id and runs the ownership check for method. It is the
// gate every update and delete passes before input is looked at.
func (s *PostService) Authorize(requester auth.Identity, method string, id int) (*models.Post, error) {
	if requester.IsAnonymous() && !permissions.IsSafeMethod(method) {
		return nil, ErrAuthenticationRequired
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if decision := permissions.Check(requester, method, post); !decision.Allowed {
		return nil, permissionDenied(decision.Reason)
	}
	return post, nil
}

// apply copies supplied input fields onto post, resolving the group reference.
func (s *PostService) apply(post *models.Post, in PostInput) error {
	if in.Text != nil {
		post.Text = *in.Text
	}
	if !in.GroupSet {
		return nil
	}
	if in.Group == nil {
		post.SetGroup(nil)
		return nil
	}

	group, err := s.groupRepo.GetByID(*in.Group)
	if errors.Is(err, repositories.ErrNotFound) {
		return invalidField("group", fmt.Sprintf("invalid pk %q - object does not exist", fmt.Sprint(*in.Group)))
	}
	if err != nil {
		return fmt.Errorf("failed to load group %d: %w", *in.Group, err)
	}
	post.SetGroup(group)
	return nil
}
