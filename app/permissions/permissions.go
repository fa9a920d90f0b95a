// Package permissions holds the single ownership rule of the API: anyone may
// read, only the author may change.
package permissions

import (
	"net/http"

	"yatube/app/auth"
)

// OnlyAuthorMessage is the reason given when a non-author tries to change content.
const OnlyAuthorMessage = "only the author can change this content"

// SafeMethods are the read-only methods exempt from ownership checks.
var SafeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Authored is a record owned by a single author.
type Authored interface {
	AuthorName() string
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	return SafeMethods[method]
}

// IsAuthorized allows safe methods unconditionally and any other method only
// when the requester is the record's author.
func IsAuthorized(requester auth.Identity, method string, record Authored) bool {
	if IsSafeMethod(method) {
		return true
	}
	if record == nil {
		return false
	}
	return requester.Is(record.AuthorName())
}

// Check is IsAuthorized with the denial reason attached.
func Check(requester auth.Identity, method string, record Authored) Decision {
	if IsAuthorized(requester, method, record) {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, Reason: OnlyAuthorMessage}
}
