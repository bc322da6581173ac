package config

import (
	"flag"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/casedesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base address of the remote service
//	-m bool     force mock mode (-m=false forces live mode)
//	-d string   data directory
//	-t int      request timeout in seconds
//	-l string   log level (debug, info, warn, error)
//
// Only these flags are parsed; everything else in args is ignored via
// flagx.FilterArgs so other components can share the command line.
func parseFlags(cfg *Config, args []string) error {
	args = append(flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l"}), boolArgs(args, "-m")...)

	fs := flag.NewFlagSet("casedesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base address of the remote service")
	fs.Var(&optionalBool{dst: &cfg.UseMock}, "m", "force mock mode")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}

// boolArgs picks the occurrences of a boolean flag. Unlike FilterArgs it
// never consumes the following token, which belongs to someone else.
func boolArgs(args []string, name string) []string {
	var out []string
	for _, a := range args {
		if a == name || strings.HasPrefix(a, name+"=") {
			out = append(out, a)
		}
	}
	return out
}

// optionalBool is a bool flag that stays nil unless given.
type optionalBool struct {
	dst **bool
}

func (o *optionalBool) String() string {
	if o.dst == nil || *o.dst == nil {
		return ""
	}
	return strconv.FormatBool(**o.dst)
}

func (o *optionalBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*o.dst = &b
	return nil
}

func (o *optionalBool) IsBoolFlag() bool { return true }
