package services

import (
	"errors"
	"fmt"

	"yatube/app/auth"
	"yatube/app/models"
	"yatube/app/repositories"
)

// UserService registers accounts and exchanges credentials for tokens
type UserService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenIssuer
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates an account with a bcrypt-hashed password
func (s *UserService) Register(username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, invalidField("password", err.Error())
	}

	user := &models.User{Username: username, PasswordHash: hash}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, validationFailed(err)
	}

	err = s.userRepo.Create(user)
	if errors.Is(err, repositories.ErrConflict) {
		return nil, invalidField("username", "a user with that username already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and issues an access/refresh token pair
func (s *UserService) Login(username, password string) (auth.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return auth.TokenPair{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to load user: %w", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return auth.TokenPair{}, err
	}
	return s.tokens.IssuePair(user.Username)
}

// Refresh exchanges a refresh token for a new access token
func (s *UserService) Refresh(refreshToken string) (string, error) {
	return s.tokens.Refresh(refreshToken)
}

// Verify checks that token is a valid token of any type
func (s *UserService) Verify(token string) error {
	_, err := s.tokens.Validate(token, "")
	return err
}
