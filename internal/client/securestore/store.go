// Package securestore is the credential store of the client: a small
// key/value API whose values are JSON documents sealed at rest with a
// device-scoped key.
//
// A value read back is structurally equal to the value saved, whether it was
// handed over as a JSON string or as a Go value:
//
//	_ = s.Save(ctx, KeySession, `{"token":"t"}`)
//	_ = s.Save(ctx, KeySession, map[string]string{"token": "t"})
//
// both read back as the same document. Reading a missing key is not an error.
package securestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Versioned keys of the locally persisted state.
const (
	KeySession           = "session.v1"
	KeyProfile           = "profile.v1"
	KeySettings          = "settings.v1"
	KeyPasswordChangedAt = "security.lastPasswordChange.v1"
)

// ErrCorrupt is returned when a stored value cannot be opened or decoded.
var ErrCorrupt = errors.New("stored value is corrupt")

// Store is the credential store contract.
//
//   - Save overwrites key with value (string, []byte, json.RawMessage or any
//     JSON-marshalable value).
//   - Read decodes the value into dst and reports whether the key existed.
//   - ReadRaw returns the stored JSON document, or nil when absent.
//   - Delete removes key; deleting a missing key succeeds.
//
// Operations on one key observe program order: the last completed Save wins
// and a Read after a Save returns that Save's value.
type Store interface {
	Save(ctx context.Context, key string, value any) error
	Read(ctx context.Context, key string, dst any) (bool, error)
	ReadRaw(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ReadValue is a typed convenience over Store.Read. It returns nil when the
// key is absent.
func ReadValue[T any](ctx context.Context, s Store, key string) (*T, error) {
	var v T
	ok, err := s.Read(ctx, key, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// encode normalises value into the JSON document that gets stored.
func encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, errors.New("invalid raw JSON value")
		}
		return slices.Clone(v), nil
	case string:
		return encodeText([]byte(v))
	case []byte:
		return encodeText(v)
	default:
		return json.Marshal(v)
	}
}

// encodeText keeps text that already is a JSON document and quotes anything else.
func encodeText(b []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return slices.Clone(trimmed), nil
	}
	return json.Marshal(string(b))
}

// decode unmarshals raw into dst. A *string destination also accepts
// non-string documents and receives their JSON text.
func decode(raw []byte, dst any) error {
	if dst == nil {
		return nil
	}
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}
	if s, ok := dst.(*string); ok {
		*s = string(raw)
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}
