package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/services"
	"github.com/dmitrijs2005/casedesk/internal/client/session"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

// Services bundles the domain services the commands use.
type Services struct {
	Profile  services.ProfileService
	Settings services.SettingsService
	Security services.SecurityService
	Uploads  services.UploadService
}

type App struct {
	session *session.Context
	svc     Services
	mode    backend.Mode
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger

	metrics prometheus.Gatherer
}

func NewApp(sess *session.Context, svc Services, mode backend.Mode, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		session: sess,
		svc:     svc,
		mode:    mode,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		log:     log.With("component", "cli"),
	}
}

// SetGatherer exposes request metrics to the stats command.
func (a *App) SetGatherer(g prometheus.Gatherer) {
	a.metrics = g
}

// Run loads the stored session and runs the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Bootstrap(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}
	if err := a.session.Wait(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome to CaseDesk CLI, %s mode (type 'help' for commands)\n", a.mode)
	if snap := a.session.Snapshot(); snap.IsAuthenticated {
		fmt.Fprintf(a.out, "Signed in as %s\n", snap.User.Email)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) guard(access session.Access) session.Decision {
	return a.session.Guard(access)
}

// status renders the prompt prefix, e.g. "(jane@x.io admin, mock)".
func (a *App) status() string {
	var parts []string
	if snap := a.session.Snapshot(); snap.IsAuthenticated {
		parts = append(parts, snap.User.Email+" "+snap.User.Role)
	}
	parts = append(parts, string(a.mode))
	return "(" + strings.Join(parts, ", ") + ")"
}

// Mode prints which backend serves the commands.
func (a *App) Mode(_ context.Context, _ []string) error {
	switch a.mode {
	case backend.ModeLive:
		fmt.Fprintln(a.out, "live: requests go to the remote service")
	default:
		fmt.Fprintln(a.out, "mock: requests are served by the local simulator")
	}
	return nil
}

// report prints a failed command's error in one line.
func (a *App) report(ctx context.Context, cmd string, err error) {
	a.log.Debug(ctx, "command failed", "cmd", cmd, "error", err)
	fmt.Fprintln(a.out, "Error:", describe(err))
}

// Stats prints the request counters gathered so far.
func (a *App) Stats(ctx context.Context, _ []string) error {
	if a.metrics == nil {
		fmt.Fprintln(a.out, "No metrics collected.")
		return nil
	}
	families, err := a.metrics.Gather()
	if err != nil {
		a.report(ctx, "stats", err)
		return err
	}

	printed := 0
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(a.out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(a.out, "%s{%s} count=%d sum=%.3fs\n", mf.GetName(), strings.Join(labels, ","), h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			printed++
		}
	}
	if printed == 0 {
		fmt.Fprintln(a.out, "No requests made yet.")
	}
	return nil
}
