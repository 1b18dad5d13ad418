package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-t", "-r", "-m", "-l"}

// parseFlags overlays cfg with the flags it knows about. Other arguments,
// including -c/-config, are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gophsocial", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "outbound requests per second, 0 = unlimited")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address of the /metrics listener")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
