package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/gateway"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/client/services"
	"github.com/dmitrijs2005/casedesk/internal/client/session"
	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

// newMockApp wires an App over the local simulator the way main does.
func newMockApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	store := securestore.NewMemory()
	b := backend.New(backend.ModeMock, backend.Deps{
		Store:      store,
		UploadsDir: filepath.Join(t.TempDir(), "uploads"),
	})
	auth := services.NewAuthService(b, store, models.NewRoleResolver([]string{models.DefaultAdminEmail}), logging.Nop())
	sess := session.New(auth, logging.Nop())
	t.Cleanup(sess.Close)

	app := NewApp(sess, Services{
		Profile:  services.NewProfileService(b),
		Settings: services.NewSettingsService(b),
		Security: services.NewSecurityService(b, store, logging.Nop()),
		Uploads:  services.NewUploadService(b),
	}, b.Mode(), logging.Nop())

	var out bytes.Buffer
	app.out = &out
	app.reader = bufio.NewReader(strings.NewReader(""))

	require.NoError(t, sess.Bootstrap(context.Background()))
	return app, &out
}

func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}

func TestApp_LoginWhoAmILogout(t *testing.T) {
	app, out := newMockApp(t)
	ctx := context.Background()

	stubInputs(t, []string{"admin@casedesk.app"}, "secret1")
	require.NoError(t, app.Login(ctx, nil))
	assert.Contains(t, out.String(), "Signed in as admin@casedesk.app (admin)")
	assert.Equal(t, "(admin@casedesk.app admin, mock)", app.status())

	out.Reset()
	require.NoError(t, app.WhoAmI(ctx, nil))
	assert.Contains(t, out.String(), "role: admin")

	require.NoError(t, app.Logout(ctx, nil))
	assert.Equal(t, "(mock)", app.status())
	assert.Equal(t, session.RedirectToSignIn, app.guard(session.Protected))
}

func TestApp_LoginValidationError(t *testing.T) {
	app, out := newMockApp(t)

	stubInputs(t, []string{"not-an-email"}, "secret1")
	err := app.Login(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, out.String(), "Error: email must contain @")
	assert.False(t, app.session.Snapshot().IsAuthenticated)
}

func TestApp_RegisterAndForgot(t *testing.T) {
	app, out := newMockApp(t)
	ctx := context.Background()

	require.NoError(t, app.Forgot(ctx, []string{"jane@x.io"}))
	assert.Contains(t, out.String(), "reset instructions")

	stubInputs(t, []string{"Jane Doe", "jane@x.io"}, "secret1")
	require.NoError(t, app.Register(ctx, nil))
	assert.Contains(t, out.String(), "Welcome, Jane Doe!")
}

func TestApp_ProfileAndSettings(t *testing.T) {
	app, out := newMockApp(t)
	ctx := context.Background()

	require.NoError(t, app.Profile(ctx, nil))
	assert.Contains(t, out.String(), "Demo User")

	out.Reset()
	require.NoError(t, app.Profile(ctx, []string{"set", "company=Acme", "name=Jane"}))
	assert.Contains(t, out.String(), "Company: Acme")
	assert.Contains(t, out.String(), "Name:    Jane")

	err := app.Profile(ctx, []string{"set", "shoe=42"})
	require.ErrorIs(t, err, common.ErrValidation)

	out.Reset()
	require.NoError(t, app.Settings(ctx, []string{"set", "theme=dark", "digest=true"}))
	assert.Contains(t, out.String(), "Theme:         dark")
	assert.Contains(t, out.String(), "Email digest:  true")

	require.ErrorIs(t, app.Settings(ctx, []string{"set", "notifications=often"}), common.ErrValidation)
	require.ErrorIs(t, app.Settings(ctx, []string{"set"}), common.ErrValidation)
	require.ErrorIs(t, app.Settings(ctx, []string{"set", "theme"}), common.ErrValidation)
}

func TestApp_PasswdAndSecurity(t *testing.T) {
	app, out := newMockApp(t)
	ctx := context.Background()

	require.NoError(t, app.Security(ctx, nil))
	assert.Contains(t, out.String(), "never")

	stubInputs(t, nil, backend.DemoPassword, "brand-new")
	require.NoError(t, app.Passwd(ctx, nil))
	assert.Contains(t, out.String(), "Password changed.")

	out.Reset()
	require.NoError(t, app.Security(ctx, nil))
	assert.NotContains(t, out.String(), "never")

	stubInputs(t, nil, "wrong-one", "brand-new")
	require.ErrorIs(t, app.Passwd(ctx, nil), common.ErrValidation)
}

func TestApp_Upload(t *testing.T) {
	app, out := newMockApp(t)

	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	require.NoError(t, app.Upload(context.Background(), []string{path}))
	assert.Contains(t, out.String(), "(3 bytes, image/png)")
}

func TestApp_Mode(t *testing.T) {
	app, out := newMockApp(t)
	require.NoError(t, app.Mode(context.Background(), nil))
	assert.Contains(t, out.String(), "mock:")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.Validation("bad input"), "bad input"},
		{common.NewTimeoutError(), "the server did not answer in time, try again"},
		{common.NewNoBackendError(), "no server is configured"},
		{common.NewTransportError(errors.New("refused")), "could not reach the server"},
		{common.NewNetworkError(409, "taken"), "taken (status 409)"},
		{context.Canceled, "cancelled"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}

func TestApp_Stats(t *testing.T) {
	app, out := newMockApp(t)
	ctx := context.Background()

	require.NoError(t, app.Stats(ctx, nil))
	assert.Contains(t, out.String(), "No metrics collected.")

	out.Reset()
	app.SetGatherer(prometheus.NewRegistry())
	require.NoError(t, app.Stats(ctx, nil))
	assert.Contains(t, out.String(), "No requests made yet.")
}

func TestApp_StatsAfterLiveRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"theme":"dark"}`))
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	gw := gateway.New(srv.URL, nil, gateway.WithMetrics(reg))
	b := backend.New(backend.ModeLive, backend.Deps{Gateway: gw})

	app, out := newMockApp(t)
	app.svc.Settings = services.NewSettingsService(b)
	app.SetGatherer(reg)

	require.NoError(t, app.Settings(context.Background(), nil))
	out.Reset()
	require.NoError(t, app.Stats(context.Background(), nil))
	assert.Contains(t, out.String(), "casedesk_gateway_requests_total{method=GET,outcome=200} 1")
	assert.Contains(t, out.String(), "casedesk_gateway_request_duration_seconds{method=GET} count=1")
}
