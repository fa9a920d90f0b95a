package repositories

import "yatube/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// List returns posts ordered by ID. A non-positive limit returns everything after offset.
	List(limit, offset int) ([]*models.Post, error)
	Count() (int, error)
	Update(post *models.Post) error
	// Delete removes the post together with its comments.
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access.
// Comments are always addressed through their parent post.
type CommentRepository interface {
	// Create fails with ErrNotFound when the parent post does not exist.
	Create(comment *models.Comment) error
	GetByID(postID, id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(postID, id int) error
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	// Create fails with ErrConflict when the slug is taken.
	Create(group *models.Group) error
	GetByID(id int) (*models.Group, error)
	List() ([]*models.Group, error)
}

// UserRepository defines the interface for account data access
type UserRepository interface {
	// Create fails with ErrConflict when the username is taken.
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
}
