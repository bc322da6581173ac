// Package cli provides the interactive CaseDesk command-line client.
//
// It drives the session context and the domain services from a REPL:
// sign in or up, inspect and edit the profile and settings, change the
// password and upload files. Commands that need a signed-in user pass the
// session's routing guard first; sign-in commands are refused once a user
// is signed in.
//
// The REPL is started via App.Run(ctx), which bootstraps the session and
// blocks until the user exits.
package cli
