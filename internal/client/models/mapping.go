package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/casedesk/internal/common"
)

// Accepted field names, in order of precedence.
var (
	tokenFields = []string{"token", "access_token"}
	userFields  = []string{"user", "profile", "data"}
)

// SessionFromPayload maps an auth response onto a Session. The token is
// taken from the first non-empty of tokenFields and the user from the first
// object among userFields. A payload lacking either fails with common.ErrAuth.
func SessionFromPayload(payload any) (*Session, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: response is not an object", common.ErrAuth)
	}

	token := firstString(obj, tokenFields)
	if token == "" {
		return nil, fmt.Errorf("%w: no token in response (tried %v)", common.ErrAuth, tokenFields)
	}

	rawUser, ok := firstObject(obj, userFields)
	if !ok {
		return nil, fmt.Errorf("%w: no user in response (tried %v)", common.ErrAuth, userFields)
	}

	user, err := userFromObject(rawUser)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrAuth, err)
	}

	return &Session{Token: token, User: user}, nil
}

func firstString(obj map[string]any, fields []string) string {
	for _, f := range fields {
		if s, ok := obj[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstObject(obj map[string]any, fields []string) (map[string]any, bool) {
	for _, f := range fields {
		if m, ok := obj[f].(map[string]any); ok {
			return m, true
		}
	}
	return nil, false
}

// userFromObject decodes a user object; numeric ids are kept as their text.
func userFromObject(m map[string]any) (*User, error) {
	u := &User{
		Email: stringField(m, "email"),
		Name:  stringField(m, "name"),
		Role:  stringField(m, "role"),
	}

	switch id := m["id"].(type) {
	case string:
		u.ID = id
	case float64:
		u.ID = strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		u.ID = id.String()
	}
	if u.ID == "" && u.Email == "" {
		return nil, fmt.Errorf("user has neither id nor email")
	}
	if u.Name == "" {
		u.Name = NameFromEmail(u.Email)
	}
	return u, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
