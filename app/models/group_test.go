package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupValidation(t *testing.T) {
	tests := []struct {
		name    string
		group   *Group
		wantErr bool
	}{
		{"valid group", &Group{Title: "Cats", Slug: "cats", Description: "All about cats"}, false},
		{"slug with dash and digits", &Group{Title: "Cats 2", Slug: "cats-2_x"}, false},
		{"empty title", &Group{Title: "", Slug: "cats"}, true},
		{"slug with spaces", &Group{Title: "Cats", Slug: "big cats"}, true},
		{"slug too long", &Group{Title: "Cats", Slug: strings.Repeat("c", 51)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	err := (&Group{Title: "", Slug: "no spaces allowed"}).Validate()
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "this field is required", fields["title"])
	assert.Contains(t, fields["slug"], "valid slug")

	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestUserValidation(t *testing.T) {
	valid := &User{Username: "leo.t", PasswordHash: []byte("hash")}
	assert.NoError(t, valid.Validate())

	short := &User{Username: "lt", PasswordHash: []byte("hash")}
	assert.Error(t, short.Validate())

	noHash := &User{Username: "leo"}
	assert.Error(t, noHash.Validate())

	valid.BeforeCreate()
	assert.False(t, valid.DateJoined.IsZero())
}
