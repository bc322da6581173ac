package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/client/models"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "CASEDESK_API_URL"
	EnvUseMock        = "CASEDESK_USE_MOCK"
	EnvAdminEmails    = "CASEDESK_ADMIN_EMAILS"
	EnvDataDir        = "CASEDESK_DATA_DIR"
	EnvRequestTimeout = "CASEDESK_REQUEST_TIMEOUT"
	EnvLogLevel       = "CASEDESK_LOG_LEVEL"
)

// parseEnv overlays cfg with the CASEDESK_* variables that are set. An empty
// CASEDESK_API_URL is honoured and switches back to mock mode.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok {
		cfg.APIURL = v
	}
	if v, ok := lookup(EnvUseMock); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUseMock, err)
		}
		cfg.UseMock = &b
	}
	if v, ok := lookup(EnvAdminEmails); ok && v != "" {
		cfg.AdminEmails = models.ParseAdminEmails(v)
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}
