package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/casedesk/internal/client/backend"
	"github.com/dmitrijs2005/casedesk/internal/client/cli"
	"github.com/dmitrijs2005/casedesk/internal/client/config"
	"github.com/dmitrijs2005/casedesk/internal/client/gateway"
	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/client/securestore"
	"github.com/dmitrijs2005/casedesk/internal/client/services"
	"github.com/dmitrijs2005/casedesk/internal/client/session"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

const (
	storeCacheSize = 64
	storeCacheTTL  = 5 * time.Minute
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := logging.New(os.Stderr, level, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "client stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	sealed, err := securestore.OpenSQLite(ctx, cfg.DataDir, log)
	if err != nil {
		return err
	}
	defer sealed.Close()
	store := securestore.NewCached(sealed, storeCacheSize, storeCacheTTL)

	mode := backend.DetectMode(cfg.APIURL, cfg.UseMock)
	log.Info(ctx, "starting", "mode", mode, "data_dir", cfg.DataDir)

	registry := prometheus.NewRegistry()
	gw := gateway.New(cfg.APIURL, services.StoredToken(store),
		gateway.WithLogger(log),
		gateway.WithDefaultTimeout(cfg.RequestTimeout),
		gateway.WithMetrics(registry),
	)

	b := backend.New(mode, backend.Deps{
		Gateway:    gw,
		Store:      store,
		UploadsDir: filepath.Join(cfg.DataDir, "uploads"),
		Latency:    cfg.MockLatency,
		Logger:     log,
	})

	roles := models.NewRoleResolver(cfg.AdminEmails)
	auth := services.NewAuthService(b, store, roles, log)

	sess := session.New(auth, log)
	defer sess.Close()

	app := cli.NewApp(sess, cli.Services{
		Profile:  services.NewProfileService(b),
		Settings: services.NewSettingsService(b),
		Security: services.NewSecurityService(b, store, log),
		Uploads:  services.NewUploadService(b),
	}, mode, log)
	app.SetGatherer(registry)

	return app.Run(ctx)
}
