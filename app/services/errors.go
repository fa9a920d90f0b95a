package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"yatube/app/models"
)

// Messages returned when someone other than the author touches a comment.
const (
	ModifyForeignCommentMessage = "cannot modify another user's comment"
	DeleteForeignCommentMessage = "cannot delete another user's comment"
)

// ErrAuthenticationRequired is returned when an anonymous requester attempts a write.
var ErrAuthenticationRequired = errors.New("authentication credentials were not provided")

// PermissionDeniedError is returned when an authenticated requester may not
// change a record. Message is safe to show to the caller.
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string {
	return "permission denied: " + e.Message
}

func permissionDenied(message string) error {
	return &PermissionDeniedError{Message: message}
}

// ValidationError reports invalid input per json field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// validationFailed converts a model validation failure into a ValidationError.
func validationFailed(err error) error {
	if fields := models.FieldErrors(err); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: map[string]string{"non_field_errors": err.Error()}}
}
