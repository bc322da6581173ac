package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/casedesk/internal/common"
)

func TestSessionFromPayload_Shapes(t *testing.T) {
	user := map[string]any{"id": "u1", "email": "jane@example.com", "name": "Jane"}

	tests := []struct {
		name    string
		payload any
	}{
		{"token+user", map[string]any{"token": "t1", "user": user}},
		{"access_token+profile", map[string]any{"access_token": "t1", "profile": user}},
		{"access_token+data", map[string]any{"access_token": "t1", "data": user}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SessionFromPayload(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, "t1", s.Token)
			assert.Equal(t, &User{ID: "u1", Email: "jane@example.com", Name: "Jane"}, s.User)
			assert.True(t, s.Valid())
		})
	}
}

func TestSessionFromPayload_Precedence(t *testing.T) {
	s, err := SessionFromPayload(map[string]any{
		"access_token": "second",
		"token":        "first",
		"data":         map[string]any{"id": "d"},
		"profile":      map[string]any{"id": "p"},
		"user":         map[string]any{"id": "u"},
	})
	require.NoError(t, err)
	assert.Equal(t, "first", s.Token)
	assert.Equal(t, "u", s.User.ID)

	s, err = SessionFromPayload(map[string]any{
		"access_token": "only",
		"data":         map[string]any{"id": "d"},
		"profile":      map[string]any{"id": "p"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p", s.User.ID)
}

func TestSessionFromPayload_EmptyTokenFallsThrough(t *testing.T) {
	s, err := SessionFromPayload(map[string]any{
		"token":        "",
		"access_token": "t2",
		"user":         map[string]any{"email": "a@b.co"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t2", s.Token)
	assert.Equal(t, "a", s.User.Name)
}

func TestSessionFromPayload_Failures(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		msg     string
	}{
		{"not an object", "oops", "not an object"},
		{"nil", nil, "not an object"},
		{"no token", map[string]any{"user": map[string]any{"id": "1"}}, "no token"},
		{"no user", map[string]any{"token": "t"}, "no user"},
		{"user not object", map[string]any{"token": "t", "user": "bob"}, "no user"},
		{"empty user", map[string]any{"token": "t", "user": map[string]any{}}, "neither id nor email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SessionFromPayload(tt.payload)
			require.ErrorIs(t, err, common.ErrAuth)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestSessionFromPayload_NumericID(t *testing.T) {
	s, err := SessionFromPayload(map[string]any{
		"token": "t",
		"user":  map[string]any{"id": float64(1000000), "email": "n@x.io", "role": "admin"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1000000", s.User.ID)
	assert.Equal(t, RoleAdmin, s.User.Role)
}

func TestSession_Valid(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Valid())
	assert.False(t, (&Session{Token: "t"}).Valid())
	assert.False(t, (&Session{User: &User{ID: "1"}}).Valid())
	assert.False(t, (&Session{Token: "t", User: &User{}}).Valid())
	assert.True(t, (&Session{Token: "t", User: &User{Email: "a@b"}}).Valid())
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "jane.doe", NameFromEmail("jane.doe@example.com"))
	assert.Equal(t, "plain", NameFromEmail("plain"))
}
