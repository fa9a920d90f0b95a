package services

import (
	"fmt"
	"net/http"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/repositories"
)

// CommentInput carries the writable comment fields. A nil Text means the
// field was not supplied.
type CommentInput struct {
	Text *string
}

// CommentService handles business logic for comments. Every operation is
// scoped to one parent post.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Post resolves the parent post of a comment request
func (s *CommentService) Post(postID int) (*models.Post, error) {
	return s.postRepo.GetByID(postID)
}

// ListComments retrieves all comments for a post
func (s *CommentService) ListComments(postID int) ([]*models.Comment, error) {
	if _, err := s.Post(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}

// GetComment retrieves one comment of a post
func (s *CommentService) GetComment(postID, id int) (*models.Comment, error) {
	if _, err := s.Post(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(postID, id)
}

// AuthorizeCreate requires an authenticated requester and resolves the parent post
func (s *CommentService) AuthorizeCreate(requester auth.Identity, postID int) (*models.Post, error) {
	if requester.IsAnonymous() {
		return nil, ErrAuthenticationRequired
	}
	return s.Post(postID)
}

// CreateComment adds a comment by the requester under the post
func (s *CommentService) CreateComment(requester auth.Identity, postID int, in CommentInput) (*models.Comment, error) {
	post, err := s.AuthorizeCreate(requester, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{Author: requester.Username}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if in.Text == nil {
		return nil, invalidField("text", "this field is required")
	}
	comment.Text = *in.Text
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// UpdateComment changes the text of a comment the requester authored
func (s *CommentService) UpdateComment(requester auth.Identity, method string, postID, id int, in CommentInput) (*models.Comment, error) {
	comment, err := s.Authorize(requester, method, postID, id)
	if err != nil {
		return nil, err
	}

	if in.Text == nil {
		if method == http.MethodPut {
			return nil, invalidField("text", "this field is required")
		}
		return comment, nil
	}
	comment.Text = *in.Text
	if err := comment.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	return comment, nil
}

// DeleteComment deletes a comment the requester authored
func (s *CommentService) DeleteComment(requester auth.Identity, postID, id int) error {
	if _, err := s.Authorize(requester, http.MethodDelete, postID, id); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(postID, id); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return nil
}

// Authorize loads a comment and requires the requester to be its author,
// whatever the method. DELETE and the update methods differ only in the
// denial message.
func (s *CommentService) Authorize(requester auth.Identity, method string, postID, id int) (*models.Comment, error) {
	if requester.IsAnonymous() {
		return nil, ErrAuthenticationRequired
	}
	comment, err := s.GetComment(postID, id)
	if err != nil {
		return nil, err
	}
	if !requester.Is(comment.Author) {
		if method == http.MethodDelete {
			return nil, permissionDenied(DeleteForeignCommentMessage)
		}
		return nil, permissionDenied(ModifyForeignCommentMessage)
	}
	return comment, nil
}
