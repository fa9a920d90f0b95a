package services

import (
	"errors"
	"fmt"

	"yatube/app/models"
	"yatube/app/repositories"
)

// GroupService exposes groups read-only to the API. CreateGroup exists for
// administrative tooling only.
type GroupService struct {
	groupRepo repositories.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repositories.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) ListGroups() ([]*models.Group, error) {
	return s.groupRepo.List()
}

func (s *GroupService) GetGroup(id int) (*models.Group, error) {
	return s.groupRepo.GetByID(id)
}

// CreateGroup validates and stores a new group
func (s *GroupService) CreateGroup(group *models.Group) error {
	if err := group.Validate(); err != nil {
		return validationFailed(err)
	}
	err := s.groupRepo.Create(group)
	if errors.Is(err, repositories.ErrConflict) {
		return invalidField("slug", "group with this slug already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}
