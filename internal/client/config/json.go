package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/flagx"
)

// Duration unmarshals from either a string like "3s" or integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero fields mean "not set" and leave the earlier value in place.
type JSONConfig struct {
	APIURL         string    `json:"api_url"`
	UseMock        *bool     `json:"use_mock"`
	AdminEmails    []string  `json:"admin_emails"`
	DataDir        string    `json:"data_dir"`
	RequestTimeout *Duration `json:"request_timeout"`
	MockLatency    *Duration `json:"mock_latency"`
	LogLevel       string    `json:"log_level"`
	LogFormat      string    `json:"log_format"`
}

// parseJSON overlays cfg with the file named by -c / -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.UseMock != nil {
		cfg.UseMock = jc.UseMock
	}
	if len(jc.AdminEmails) > 0 {
		cfg.AdminEmails = jc.AdminEmails
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MockLatency != nil {
		cfg.MockLatency = jc.MockLatency.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
