package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/casedesk/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type handler func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	guard(access session.Access) session.Decision

	Login(ctx context.Context, args []string) error
	Register(ctx context.Context, args []string) error
	Forgot(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Security(ctx context.Context, args []string) error
	Passwd(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Mode(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

type command struct {
	access session.Access
	run    handler
}

func commands(a execIface) map[string]command {
	return map[string]command{
		"login":    {session.GuestOnly, a.Login},
		"register": {session.GuestOnly, a.Register},
		"forgot":   {session.GuestOnly, a.Forgot},
		"logout":   {session.Protected, a.Logout},
		"whoami":   {session.Public, a.WhoAmI},
		"profile":  {session.Protected, a.Profile},
		"settings": {session.Protected, a.Settings},
		"security": {session.Protected, a.Security},
		"passwd":   {session.Protected, a.Passwd},
		"upload":   {session.Protected, a.Upload},
		"mode":     {session.Public, a.Mode},
		"stats":    {session.Public, a.Stats},
	}
}

// runREPL starts a simple read-eval-print loop for the CaseDesk CLI.
//
// It reads a line, parses the first token as the command and dispatches to
// the matching handler once the session guard allows the command. The loop
// exits on EOF, on "exit" / "quit", or when ctx is done.
//
// Prompt & Commands
//
//	Signed out:
//	  - help                     show available commands
//	  - login | register         sign in or create an account
//	  - forgot [email]           request a password reset
//	  - whoami | mode | stats    show the user, backend mode, request counters
//	  - exit | quit              leave the program
//
//	Signed in:
//	  - profile [set k=v ...]    show or edit the profile
//	  - settings [set k=v ...]   show or edit the settings
//	  - security                 show when the password last changed
//	  - passwd                   change the password
//	  - upload <path>            upload a file
//	  - logout                   sign out
//
// Errors returned by handlers are not printed here; handlers report their
// own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	cmds := commands(a)

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("cd %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			if a.guard(session.Protected) == session.Allow {
				printlnFn("Available commands: whoami, profile, settings, security, passwd, upload, mode, stats, logout, exit")
			} else {
				printlnFn("Available commands: login, register, forgot, whoami, mode, stats, exit")
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := cmds[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}

		switch a.guard(cmd.access) {
		case session.Allow:
			_ = cmd.run(ctx, args)
		case session.RedirectToSignIn:
			printlnFn("Please sign in first (login or register).")
		case session.RedirectToHome:
			printlnFn("Already signed in; logout first.")
		case session.Wait:
			printlnFn("Session is still loading, try again.")
		}
	}
}
