package models

import "time"

// Validate checks the username format and that a password hash is present.
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate stamps the join date.
func (u *User) BeforeCreate() {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}
}
