package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/filex"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

const (
	// DemoPassword is the only current password the simulator accepts on
	// password change.
	DemoPassword = "demo1234"

	// DefaultLatency is the simulated round trip of the mock backend.
	DefaultLatency = 400 * time.Millisecond

	MinPasswordLength = 6
	MinNameLength     = 2

	tokenTTL = 24 * time.Hour
)

// userNamespace scopes the name-based ids of simulated users.
var userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://casedesk.app/users"))

// Local simulates the remote service on the device. Profile and settings
// live in the credential store under their versioned keys, uploads are
// copied into UploadsDir.
type Local struct {
	store      securestore.Store
	uploadsDir string
	latency    time.Duration
	signingKey []byte
	log        logging.Logger
	now        func() time.Time
}

func NewLocal(d Deps) *Local {
	key := d.SigningKey
	if len(key) == 0 {
		key = common.GenerateRandByteArray(32)
	}
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Local{
		store:      d.Store,
		uploadsDir: d.UploadsDir,
		latency:    d.Latency,
		signingKey: key,
		log:        log.With("backend", ModeMock),
		now:        now,
	}
}

func (l *Local) Mode() Mode { return ModeMock }

func (l *Local) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, common.Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.session(email, models.NameFromEmail(email))
}

func (l *Local) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < MinNameLength {
		return nil, common.Validation(fmt.Sprintf("name must be at least %d characters", MinNameLength))
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, common.Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.session(email, name)
}

func (l *Local) ForgotPassword(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := l.wait(ctx); err != nil {
		return err
	}
	l.log.Info(ctx, "password reset requested", "email", email)
	return nil
}

// session issues a signed token for a user whose id is derived from email,
// so signing in twice with one address yields the same user.
func (l *Local) session(email, name string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	id := uuid.NewSHA1(userNamespace, []byte(strings.ToLower(email))).String()

	now := l.now()
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("token id: %w", err)
	}
	claims := jwt.RegisteredClaims{
		ID:        jti,
		Subject:   id,
		Issuer:    "casedesk-local",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(l.signingKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &models.Session{
		Token: token,
		User:  &models.User{ID: id, Email: email, Name: name},
	}, nil
}

func (l *Local) GetProfile(ctx context.Context) (models.Profile, error) {
	if err := l.wait(ctx); err != nil {
		return models.Profile{}, err
	}
	return readRecord(ctx, l.store, securestore.KeyProfile, models.DefaultProfile())
}

func (l *Local) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.Profile, error) {
	if err := l.wait(ctx); err != nil {
		return models.Profile{}, err
	}
	cur, err := readRecord(ctx, l.store, securestore.KeyProfile, models.DefaultProfile())
	if err != nil {
		return models.Profile{}, err
	}
	next := cur.Apply(patch, l.now())
	if err := l.store.Save(ctx, securestore.KeyProfile, next); err != nil {
		return models.Profile{}, err
	}
	return next, nil
}

func (l *Local) GetSettings(ctx context.Context) (models.Settings, error) {
	if err := l.wait(ctx); err != nil {
		return models.Settings{}, err
	}
	return readRecord(ctx, l.store, securestore.KeySettings, models.DefaultSettings())
}

func (l *Local) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	if err := l.wait(ctx); err != nil {
		return models.Settings{}, err
	}
	cur, err := readRecord(ctx, l.store, securestore.KeySettings, models.DefaultSettings())
	if err != nil {
		return models.Settings{}, err
	}
	next := cur.Apply(patch, l.now())
	if err := l.store.Save(ctx, securestore.KeySettings, next); err != nil {
		return models.Settings{}, err
	}
	return next, nil
}

func (l *Local) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	if change.CurrentPassword != DemoPassword {
		return common.Validation("current password is incorrect")
	}
	return nil
}

// UploadImage copies the content into the uploads directory under a fresh
// name that keeps the original extension.
func (l *Local) UploadImage(ctx context.Context, u Upload) (models.UploadResult, error) {
	if u.Content == nil {
		return models.UploadResult{}, common.Validation("upload has no content")
	}
	if err := l.wait(ctx); err != nil {
		return models.UploadResult{}, err
	}

	dir, err := filex.EnsureDir(l.uploadsDir, 0o700)
	if err != nil {
		return models.UploadResult{}, common.Storage("uploads dir", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(u.FileName))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return models.UploadResult{}, common.Storage("create upload", err)
	}
	n, err := io.Copy(f, u.Content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return models.UploadResult{}, common.Storage("write upload", err)
	}

	l.log.Debug(ctx, "upload stored", "path", path, "size", n)

	return models.UploadResult{
		URL:         (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(),
		Name:        name,
		Size:        n,
		ContentType: u.ContentType,
	}, nil
}

// wait simulates network latency and honours cancellation.
func (l *Local) wait(ctx context.Context) error {
	if l.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(l.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// readRecord returns fallback when key is absent or unreadable.
func readRecord[T any](ctx context.Context, s securestore.Store, key string, fallback T) (T, error) {
	v, err := securestore.ReadValue[T](ctx, s, key)
	if errors.Is(err, securestore.ErrCorrupt) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	if v == nil {
		return fallback, nil
	}
	return *v, nil
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return common.Validation("email must contain @")
	}
	return nil
}
