package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/common"
)

// Profile shows the profile, or updates it with "profile set key=value ...".
// Keys: name, email, phone, company, avatar.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "set" {
		patch, err := profilePatch(args[1:])
		if err != nil {
			a.report(ctx, "profile", err)
			return err
		}
		p, err := a.svc.Profile.Update(ctx, patch)
		if err != nil {
			a.report(ctx, "profile", err)
			return err
		}
		printProfile(a, p)
		return nil
	}

	p, err := a.svc.Profile.Get(ctx)
	if err != nil {
		a.report(ctx, "profile", err)
		return err
	}
	printProfile(a, p)
	return nil
}

func printProfile(a *App, p models.Profile) {
	fmt.Fprintf(a.out, "Name:    %s\nEmail:   %s\nPhone:   %s\nCompany: %s\n", p.Name, p.Email, p.Phone, p.Company)
	if p.AvatarURL != "" {
		fmt.Fprintf(a.out, "Avatar:  %s\n", p.AvatarURL)
	}
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(a.out, "Updated: %s\n", p.UpdatedAt.Local().Format(time.DateTime))
	}
}

func profilePatch(args []string) (models.ProfilePatch, error) {
	var patch models.ProfilePatch
	kv, err := parseAssignments(args)
	if err != nil {
		return patch, err
	}
	for k, v := range kv {
		switch k {
		case "name":
			patch.Name = &v
		case "email":
			patch.Email = &v
		case "phone":
			patch.Phone = &v
		case "company":
			patch.Company = &v
		case "avatar":
			patch.AvatarURL = &v
		default:
			return patch, common.Validation(fmt.Sprintf("unknown profile field %q", k))
		}
	}
	return patch, nil
}

// Settings shows the settings, or updates them with "settings set key=value".
// Keys: language, theme, notifications, digest.
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "set" {
		patch, err := settingsPatch(args[1:])
		if err != nil {
			a.report(ctx, "settings", err)
			return err
		}
		s, err := a.svc.Settings.Update(ctx, patch)
		if err != nil {
			a.report(ctx, "settings", err)
			return err
		}
		printSettings(a, s)
		return nil
	}

	s, err := a.svc.Settings.Get(ctx)
	if err != nil {
		a.report(ctx, "settings", err)
		return err
	}
	printSettings(a, s)
	return nil
}

func printSettings(a *App, s models.Settings) {
	fmt.Fprintf(a.out, "Language:      %s\nTheme:         %s\nNotifications: %t\nEmail digest:  %t\n",
		s.Language, s.Theme, s.Notifications, s.EmailDigest)
}

func settingsPatch(args []string) (models.SettingsPatch, error) {
	var patch models.SettingsPatch
	kv, err := parseAssignments(args)
	if err != nil {
		return patch, err
	}
	for k, v := range kv {
		switch k {
		case "language":
			patch.Language = &v
		case "theme":
			patch.Theme = &v
		case "notifications", "digest":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return patch, common.Validation(fmt.Sprintf("%s must be true or false", k))
			}
			if k == "notifications" {
				patch.Notifications = &b
			} else {
				patch.EmailDigest = &b
			}
		default:
			return patch, common.Validation(fmt.Sprintf("unknown setting %q", k))
		}
	}
	return patch, nil
}

// parseAssignments reads key=value pairs; at least one is required.
func parseAssignments(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, common.Validation("nothing to set, use key=value")
	}
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, common.Validation(fmt.Sprintf("expected key=value, got %q", arg))
		}
		out[strings.ToLower(k)] = v
	}
	return out, nil
}

// Passwd changes the password after prompting for the current and new one.
func (a *App) Passwd(ctx context.Context, _ []string) error {
	fmt.Fprintln(a.out, "Current password")
	current, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	fmt.Fprintln(a.out, "New password")
	next, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	err = a.svc.Security.ChangePassword(ctx, models.PasswordChange{
		CurrentPassword: string(current),
		NewPassword:     string(next),
	})
	if err != nil {
		a.report(ctx, "passwd", err)
		return err
	}

	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// Security prints when the password was last changed.
func (a *App) Security(ctx context.Context, _ []string) error {
	st, err := a.svc.Security.State(ctx)
	if err != nil {
		a.report(ctx, "security", err)
		return err
	}
	if st.PasswordChangedAt == nil {
		fmt.Fprintln(a.out, "Password last changed: never")
		return nil
	}
	fmt.Fprintln(a.out, "Password last changed:", st.PasswordChangedAt.Local().Format(time.DateTime))
	return nil
}

// Upload sends the file at the given path.
func (a *App) Upload(ctx context.Context, args []string) error {
	var path string
	if len(args) > 0 {
		path = strings.Join(args, " ")
	} else {
		var err error
		if path, err = getSimpleText(a.reader, "Path to file", a.out); err != nil {
			return err
		}
	}

	res, err := a.svc.Uploads.UploadFile(ctx, path)
	if err != nil {
		a.report(ctx, "upload", err)
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s (%d bytes, %s)\n  %s\n", res.Name, res.Size, res.ContentType, res.URL)
	return nil
}
