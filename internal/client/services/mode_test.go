package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/gateway"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

func TestMockMode_NoNetworkCalls(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := securestore.NewMemory()
	dir := t.TempDir()
	mode := backend.DetectMode("", nil)
	require.Equal(t, backend.ModeMock, mode)

	b := backend.New(mode, backend.Deps{
		Gateway:    gateway.New(srv.URL, StoredToken(store)),
		Store:      store,
		UploadsDir: filepath.Join(dir, "uploads"),
	})
	log := logging.Nop()
	auth := NewAuthService(b, store, models.NewRoleResolver(nil), log)
	profile := NewProfileService(b)
	settings := NewSettingsService(b)
	security := NewSecurityService(b, store, log)
	uploads := NewUploadService(b)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "Jane", "jane@example.com", "secret1")
	require.NoError(t, err)
	_, err = auth.SignIn(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)
	_, err = auth.GetSession(ctx)
	require.NoError(t, err)
	_, err = auth.Token(ctx)
	require.NoError(t, err)
	require.NoError(t, auth.RequestPasswordReset(ctx, "jane@example.com"))

	_, err = profile.Get(ctx)
	require.NoError(t, err)
	_, err = profile.Update(ctx, models.ProfilePatch{Name: ptr("Jane Doe")})
	require.NoError(t, err)

	_, err = settings.Get(ctx)
	require.NoError(t, err)
	_, err = settings.Update(ctx, models.SettingsPatch{Theme: ptr("dark")})
	require.NoError(t, err)

	require.NoError(t, security.ChangePassword(ctx, models.PasswordChange{
		CurrentPassword: backend.DemoPassword,
		NewPassword:     "brand-new",
	}))
	_, err = security.State(ctx)
	require.NoError(t, err)

	_, err = uploads.UploadImage(ctx, backend.Upload{
		FileName:    "me.png",
		ContentType: "image/png",
		Content:     bytes.NewReader([]byte("\x89PNG\r\n\x1a\n")),
	})
	require.NoError(t, err)
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	_, err = uploads.UploadFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(ctx))

	assert.Zero(t, hits.Load())
}
