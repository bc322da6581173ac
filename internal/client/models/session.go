// Package models defines the client's session, user and domain records and
// the mapping from heterogeneous remote payloads onto them.
package models

import (
	"strings"
)

// Roles a user can have.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// Session is the authenticated identity persisted as the credential entry.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Valid reports whether both the token and the user are present.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil && (s.User.ID != "" || s.User.Email != "")
}

// NameFromEmail returns the local part of email, used as a display name when
// nothing better is known.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
