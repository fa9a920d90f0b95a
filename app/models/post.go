package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PubDate.IsZero() {
		return errors.New("pub_date cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now().UTC()
	}
}

// AuthorName returns the username that owns the post.
func (p *Post) AuthorName() string {
	return p.Author
}

// SetGroup files the post under group, or clears it when group is nil.
func (p *Post) SetGroup(group *Group) {
	if group == nil {
		p.Group = nil
		return
	}
	id := group.ID
	p.Group = &id
}
