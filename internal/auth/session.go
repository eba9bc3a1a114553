package auth

import (
	"errors"
	"strings"
)

// ErrMissingCredentials is returned when either field is blank.
var ErrMissingCredentials = errors.New("Please enter both username and password")

// Session tracks whether the teacher is signed in. Any non-empty pair of
// credentials is accepted.
type Session struct {
	user string
}

// Submit signs in with the given credentials. Surrounding whitespace is
// ignored.
func (s *Session) Submit(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return ErrMissingCredentials
	}
	s.user = username
	return nil
}

// Authenticated reports whether Submit has succeeded since the last Logout.
func (s *Session) Authenticated() bool { return s.user != "" }

// User returns the signed-in username.
func (s *Session) User() string { return s.user }

// Logout ends the session.
func (s *Session) Logout() { s.user = "" }
