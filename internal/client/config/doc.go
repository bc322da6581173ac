// Package config loads runtime configuration for the CaseDesk client.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. CASEDESK_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// # Supported flags
//
//	-a string   base address of the remote service
//	-m bool     force mock mode
//	-d string   data directory
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations may be strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://api.casedesk.app/v1",
//	  "admin_emails": ["admin@casedesk.app"],
//	  "request_timeout": "15s",
//	  "mock_latency": "250ms",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
//
// # Environment
//
// CASEDESK_API_URL selects live mode; when it is unset or empty the client
// runs against the embedded simulator. CASEDESK_USE_MOCK overrides that
// detection. CASEDESK_ADMIN_EMAILS is a comma separated allow-list.
package config
