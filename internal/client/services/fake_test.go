package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
)

// fakeBackend implements backend.Backend for unit tests.
type fakeBackend struct {
	LoginRet    *models.Session
	LoginErr    error
	RegisterRet *models.Session
	RegisterErr error
	ForgotErr   error

	ProfileRet  models.Profile
	ProfileErr  error
	SettingsRet models.Settings
	SettingsErr error

	ChangeErr error

	UploadRet models.UploadResult
	UploadErr error

	LastEmail         string
	LastPassword      string
	LastName          string
	LastProfilePatch  models.ProfilePatch
	LastSettingsPatch models.SettingsPatch
	LastChange        models.PasswordChange
	LastUpload        backend.Upload
	LastUploadBody    string

	Calls int
}

func (f *fakeBackend) Mode() backend.Mode { return backend.ModeMock }

func (f *fakeBackend) Login(_ context.Context, email, password string) (*models.Session, error) {
	f.Calls++
	f.LastEmail, f.LastPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeBackend) Register(_ context.Context, name, email, password string) (*models.Session, error) {
	f.Calls++
	f.LastName, f.LastEmail, f.LastPassword = name, email, password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeBackend) ForgotPassword(_ context.Context, email string) error {
	f.Calls++
	f.LastEmail = email
	return f.ForgotErr
}

func (f *fakeBackend) GetProfile(context.Context) (models.Profile, error) {
	f.Calls++
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeBackend) UpdateProfile(_ context.Context, p models.ProfilePatch) (models.Profile, error) {
	f.Calls++
	f.LastProfilePatch = p
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeBackend) GetSettings(context.Context) (models.Settings, error) {
	f.Calls++
	return f.SettingsRet, f.SettingsErr
}

func (f *fakeBackend) UpdateSettings(_ context.Context, p models.SettingsPatch) (models.Settings, error) {
	f.Calls++
	f.LastSettingsPatch = p
	return f.SettingsRet, f.SettingsErr
}

func (f *fakeBackend) ChangePassword(_ context.Context, c models.PasswordChange) error {
	f.Calls++
	f.LastChange = c
	return f.ChangeErr
}

func (f *fakeBackend) UploadImage(_ context.Context, u backend.Upload) (models.UploadResult, error) {
	f.Calls++
	f.LastUpload = u
	if u.Content != nil {
		b, _ := io.ReadAll(u.Content)
		f.LastUploadBody = string(b)
	}
	return f.UploadRet, f.UploadErr
}

func ptr[T any](v T) *T { return &v }
