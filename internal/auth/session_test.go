package auth

import (
	"errors"
	"testing"
)

func TestSubmit(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		pass     string
		wantErr  error
		wantUser string
	}{
		{"valid", "teacher", "secret", nil, "teacher"},
		{"trimmed", "  teacher ", "x", nil, "teacher"},
		{"blank user", "   ", "secret", ErrMissingCredentials, ""},
		{"blank password", "teacher", "  ", ErrMissingCredentials, ""},
		{"both blank", "", "", ErrMissingCredentials, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			err := s.Submit(tt.user, tt.pass)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if s.User() != tt.wantUser {
				t.Errorf("User() = %q, want %q", s.User(), tt.wantUser)
			}
			if s.Authenticated() != (tt.wantErr == nil) {
				t.Errorf("Authenticated() = %v", s.Authenticated())
			}
		})
	}
}

func TestLogout(t *testing.T) {
	var s Session
	if err := s.Submit("teacher", "pw"); err != nil {
		t.Fatal(err)
	}
	s.Logout()
	if s.Authenticated() {
		t.Error("expected signed out after Logout")
	}
}

func TestErrorMessage(t *testing.T) {
	if ErrMissingCredentials.Error() != "Please enter both username and password" {
		t.Errorf("message = %q", ErrMissingCredentials.Error())
	}
}
