package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/client/gateway"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

// Remote paths, relative to the configured base address.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathForgot   = "/auth/forgot"
	PathMe       = "/users/me"
	PathPassword = "/users/me/password"
	PathSettings = "/settings"
	PathUpload   = "/uploads/image"
)

// Remote serves every operation through the gateway.
type Remote struct {
	gw  *gateway.Gateway
	log logging.Logger
	now func() time.Time
}

func NewRemote(gw *gateway.Gateway, log logging.Logger, now func() time.Time) *Remote {
	return &Remote{gw: gw, log: log.With("backend", ModeLive), now: now}
}

func (r *Remote) Mode() Mode { return ModeLive }

func (r *Remote) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return r.auth(ctx, PathLogin, map[string]string{"email": email, "password": password})
}

func (r *Remote) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	return r.auth(ctx, PathRegister, map[string]string{"name": name, "email": email, "password": password})
}

func (r *Remote) auth(ctx context.Context, path string, body any) (*models.Session, error) {
	payload, err := r.gw.Request(ctx, path, gateway.RequestOptions{
		Method:   http.MethodPost,
		Body:     body,
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return models.SessionFromPayload(payload)
}

func (r *Remote) ForgotPassword(ctx context.Context, email string) error {
	_, err := r.gw.Request(ctx, PathForgot, gateway.RequestOptions{
		Method:   http.MethodPost,
		Body:     map[string]string{"email": email},
		SkipAuth: true,
	})
	return err
}

func (r *Remote) GetProfile(ctx context.Context) (models.Profile, error) {
	payload, err := r.gw.Request(ctx, PathMe, gateway.RequestOptions{})
	if err != nil {
		return models.Profile{}, err
	}
	return decodeRecord(payload, models.DefaultProfile(), "profile", "user", "data")
}

func (r *Remote) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.Profile, error) {
	payload, err := r.gw.Request(ctx, PathMe, gateway.RequestOptions{Method: http.MethodPut, Body: patch})
	if err != nil {
		return models.Profile{}, err
	}
	if !isObject(payload) {
		prev, err := r.GetProfile(ctx)
		if err != nil {
			r.log.Warn(ctx, "profile reload after update failed", "error", err)
			prev = models.DefaultProfile()
		}
		return prev.Apply(patch, r.now()), nil
	}
	return decodeRecord(payload, models.DefaultProfile().Apply(patch, r.now()), "profile", "user", "data")
}

func (r *Remote) GetSettings(ctx context.Context) (models.Settings, error) {
	payload, err := r.gw.Request(ctx, PathSettings, gateway.RequestOptions{})
	if err != nil {
		return models.Settings{}, err
	}
	return decodeRecord(payload, models.DefaultSettings(), "settings", "data")
}

func (r *Remote) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	payload, err := r.gw.Request(ctx, PathSettings, gateway.RequestOptions{Method: http.MethodPut, Body: patch})
	if err != nil {
		return models.Settings{}, err
	}
	if !isObject(payload) {
		prev, err := r.GetSettings(ctx)
		if err != nil {
			r.log.Warn(ctx, "settings reload after update failed", "error", err)
			prev = models.DefaultSettings()
		}
		return prev.Apply(patch, r.now()), nil
	}
	return decodeRecord(payload, models.DefaultSettings().Apply(patch, r.now()), "settings", "data")
}

func (r *Remote) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	_, err := r.gw.Request(ctx, PathPassword, gateway.RequestOptions{Method: http.MethodPut, Body: change})
	return err
}

func (r *Remote) UploadImage(ctx context.Context, u Upload) (models.UploadResult, error) {
	payload, err := r.gw.Request(ctx, PathUpload, gateway.RequestOptions{
		Method: http.MethodPost,
		Body: &gateway.Multipart{
			Files: []gateway.FilePart{{
				Field:       "file",
				FileName:    u.FileName,
				ContentType: u.ContentType,
				Content:     u.Content,
			}},
		},
	})
	if err != nil {
		return models.UploadResult{}, err
	}

	res, err := decodeRecord(payload, models.UploadResult{}, "upload", "data")
	if err != nil {
		return models.UploadResult{}, err
	}
	if res.Name == "" {
		res.Name = u.FileName
	}
	if res.ContentType == "" {
		res.ContentType = u.ContentType
	}
	return res, nil
}

func isObject(payload any) bool {
	_, ok := payload.(map[string]any)
	return ok
}

// decodeRecord decodes payload onto fallback. An object wrapped in one of
// the envelope keys is unwrapped first; a payload that is not an object
// leaves fallback untouched.
func decodeRecord[T any](payload any, fallback T, envelopes ...string) (T, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return fallback, nil
	}
	for _, k := range envelopes {
		if inner, ok := obj[k].(map[string]any); ok {
			obj = inner
			break
		}
	}
	if err := gateway.Decode(obj, &fallback); err != nil {
		return fallback, fmt.Errorf("decode response: %w", err)
	}
	return fallback, nil
}
