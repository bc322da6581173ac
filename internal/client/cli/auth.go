package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/casedesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.SignIn(ctx, email, string(password))
	if err != nil {
		a.report(ctx, "login", err)
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", s.User.Email, s.User.Role)
	return nil
}

// Register prompts for name, email and password and creates the account.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.SignUp(ctx, name, email, string(password))
	if err != nil {
		a.report(ctx, "register", err)
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.User.Name)
	return nil
}

// Forgot asks the backend to send a password reset to the given address.
func (a *App) Forgot(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	if err := a.session.RequestPasswordReset(ctx, email); err != nil {
		a.report(ctx, "forgot", err)
		return err
	}
	fmt.Fprintln(a.out, "If the address is known, reset instructions are on their way.")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.session.SignOut(ctx); err != nil {
		a.report(ctx, "logout", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	snap := a.session.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	u := snap.User
	fmt.Fprintf(a.out, "%s <%s>\n  id:   %s\n  role: %s\n", u.Name, u.Email, u.ID, u.Role)
	return nil
}
