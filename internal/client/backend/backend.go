// Package backend selects how domain operations are served: by the embedded
// simulator (mock mode) or by the remote service through the gateway (live
// mode). The choice is made once at startup and every service talks to the
// resulting Backend without branching on the mode itself.
package backend

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/client/gateway"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// DetectMode returns live when baseURL is set and mock otherwise. A non-nil
// override wins: true forces mock, false forces live.
func DetectMode(baseURL string, override *bool) Mode {
	if override != nil {
		if *override {
			return ModeMock
		}
		return ModeLive
	}
	if strings.TrimSpace(baseURL) == "" {
		return ModeMock
	}
	return ModeLive
}

// Upload is one file handed to UploadImage.
type Upload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// Backend is the set of remote capabilities the client depends on.
type Backend interface {
	Mode() Mode

	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	ForgotPassword(ctx context.Context, email string) error

	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.Profile, error)

	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error)

	ChangePassword(ctx context.Context, change models.PasswordChange) error

	UploadImage(ctx context.Context, u Upload) (models.UploadResult, error)
}

// Deps carries what either variant may need. Remote uses Gateway; Local
// uses the rest.
type Deps struct {
	Gateway *gateway.Gateway

	Store      securestore.Store
	UploadsDir string
	Latency    time.Duration
	SigningKey []byte

	Logger logging.Logger
	Now    func() time.Time
}

// New builds the Backend for mode.
func New(mode Mode, d Deps) Backend {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if mode == ModeLive {
		return NewRemote(d.Gateway, d.Logger, d.Now)
	}
	return NewLocal(d)
}
