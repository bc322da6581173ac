package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkError(t *testing.T) {
	err := NewNetworkError(http.StatusNotFound, "")
	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "HTTP 404", err.Error())

	err = NewNetworkError(http.StatusConflict, "email taken")
	assert.Equal(t, "email taken", err.Error())
	assert.Equal(t, http.StatusConflict, err.Status)
}

func TestTimeoutAndNoBackend(t *testing.T) {
	var wrapped error = fmt.Errorf("login: %w", NewTimeoutError())
	require.ErrorIs(t, wrapped, ErrTimeout)
	status, ok := StatusOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestTimeout, status)

	status, ok = StatusOf(NewNoBackendError())
	require.True(t, ok)
	assert.Equal(t, 0, status)
	require.ErrorIs(t, NewNoBackendError(), ErrNoBackend)

	_, ok = StatusOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestValidation(t *testing.T) {
	err := Validation("Enter a valid email")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Enter a valid email", err.Error())
}

func TestStorage(t *testing.T) {
	require.NoError(t, Storage("save", nil))

	cause := errors.New("disk full")
	err := Storage("save session.v1", cause)
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "save session.v1")
}
