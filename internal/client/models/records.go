package models

import "time"

// Profile is the user's editable profile.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	AvatarURL string    `json:"avatarUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfilePatch is a partial profile update; nil fields are left unchanged.
type ProfilePatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// DefaultProfile is the record used before anything was saved.
func DefaultProfile() Profile {
	return Profile{Name: "Demo User", Email: "demo@casedesk.app"}
}

// Apply returns p with patch merged in and UpdatedAt set to now.
func (p Profile) Apply(patch ProfilePatch, now time.Time) Profile {
	setIf(&p.Name, patch.Name)
	setIf(&p.Email, patch.Email)
	setIf(&p.Phone, patch.Phone)
	setIf(&p.Company, patch.Company)
	setIf(&p.AvatarURL, patch.AvatarURL)
	p.UpdatedAt = now
	return p
}

type Settings struct {
	Language      string    `json:"language"`
	Theme         string    `json:"theme"`
	Notifications bool      `json:"notifications"`
	EmailDigest   bool      `json:"emailDigest"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SettingsPatch struct {
	Language      *string `json:"language,omitempty"`
	Theme         *string `json:"theme,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	EmailDigest   *bool   `json:"emailDigest,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{Language: "en", Theme: "system", Notifications: true}
}

func (s Settings) Apply(patch SettingsPatch, now time.Time) Settings {
	setIf(&s.Language, patch.Language)
	setIf(&s.Theme, patch.Theme)
	setIf(&s.Notifications, patch.Notifications)
	setIf(&s.EmailDigest, patch.EmailDigest)
	s.UpdatedAt = now
	return s
}

// SecurityState is what the security screen shows.
type SecurityState struct {
	PasswordChangedAt *time.Time `json:"passwordChangedAt,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UploadResult describes a stored upload.
type UploadResult struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
