package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"yatube/app/auth"
	"yatube/app/metrics"
	"yatube/app/services"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshPayload struct {
	Refresh string `json:"refresh"`
}

type verifyPayload struct {
	Token string `json:"token"`
}

// AuthController issues and checks JWT tokens
type AuthController struct {
	base
	userService *services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, logger *slog.Logger, m *metrics.Metrics) *AuthController {
	return &AuthController{
		base:        newBase(logger, m),
		userService: userService,
	}
}

// CreateToken exchanges a username and password for a token pair
func (ac *AuthController) CreateToken(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		ac.sendServiceError(w, r, "token", malformed(err))
		return
	}

	fields := map[string]string{}
	if payload.Username == "" {
		fields["username"] = "this field is required"
	}
	if payload.Password == "" {
		fields["password"] = "this field is required"
	}
	if len(fields) > 0 {
		ac.sendServiceError(w, r, "token", &services.ValidationError{Fields: fields})
		return
	}

	pair, err := ac.userService.Login(payload.Username, payload.Password)
	if err != nil {
		ac.rejectCredential(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, pair)
}

// RefreshToken exchanges a refresh token for a new access token
func (ac *AuthController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		ac.sendServiceError(w, r, "token", malformed(err))
		return
	}
	if payload.Refresh == "" {
		ac.sendServiceError(w, r, "token", &services.ValidationError{Fields: map[string]string{"refresh": "this field is required"}})
		return
	}

	access, err := ac.userService.Refresh(payload.Refresh)
	if err != nil {
		ac.rejectCredential(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, map[string]string{"access": access})
}

// VerifyToken answers 200 for any valid token
func (ac *AuthController) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var payload verifyPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		ac.sendServiceError(w, r, "token", malformed(err))
		return
	}
	if payload.Token == "" {
		ac.sendServiceError(w, r, "token", &services.ValidationError{Fields: map[string]string{"token": "this field is required"}})
		return
	}

	if err := ac.userService.Verify(payload.Token); err != nil {
		ac.rejectCredential(w, r, err)
		return
	}
	ac.sendJSON(w, http.StatusOK, map[string]string{})
}

func (ac *AuthController) rejectCredential(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType):
		ac.metrics.FailedAuth()
		ac.sendError(w, err.Error(), http.StatusUnauthorized)
	default:
		ac.sendServiceError(w, r, "token", err)
	}
}
