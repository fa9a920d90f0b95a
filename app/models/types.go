package models

import "time"

// Group is a read-only category posts can be filed under.
type Group struct {
	ID          int    `json:"id" validate:"gte=0"`
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=50,slug"`
	Description string `json:"description"`
}

// Post is a piece of content owned by its author.
type Post struct {
	ID      int       `json:"id" validate:"gte=0"`
	Text    string    `json:"text" validate:"required"`
	PubDate time.Time `json:"pub_date" validate:"required"`
	Author  string    `json:"author" validate:"required,username"`
	Group   *int      `json:"group" validate:"omitempty,gt=0"`
}

// Comment is a reply attached to exactly one post.
type Comment struct {
	ID      int       `json:"id" validate:"gte=0"`
	Post    int       `json:"post" validate:"required,gt=0"`
	Author  string    `json:"author" validate:"required,username"`
	Text    string    `json:"text" validate:"required"`
	Created time.Time `json:"created" validate:"required"`
}

// User is an account that can obtain tokens and author content.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=3,max=150,username"`
	PasswordHash []byte    `json:"password_hash" validate:"required"`
	DateJoined   time.Time `json:"date_joined"`
}
