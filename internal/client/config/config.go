package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/client/models"
	"github.com/dmitrijs2005/casedesk/internal/filex"
)

// Config holds runtime settings for the CaseDesk client.
//
// Fields:
//   - APIURL: base address of the remote service; empty selects mock mode.
//   - UseMock: explicit mode override; nil means detect from APIURL.
//   - AdminEmails: allow-list of addresses that get the admin role.
//   - DataDir: where the credential database, device key and mock uploads live.
//   - RequestTimeout: per-request budget of the gateway.
//   - MockLatency: simulated round trip of the mock backend.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	APIURL         string
	UseMock        *bool
	AdminEmails    []string
	DataDir        string
	RequestTimeout time.Duration
	MockLatency    time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = ""
	c.UseMock = nil
	c.AdminEmails = []string{models.DefaultAdminEmail}
	c.DataDir = filex.DefaultDataDir()
	c.RequestTimeout = 15 * time.Second
	c.MockLatency = 400 * time.Millisecond
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config from the process environment: defaults,
// then the JSON file named by -c/-config, then CASEDESK_* variables, then
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

// Load is LoadConfig over explicit arguments and environment lookup.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
