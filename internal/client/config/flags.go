package config

import (
	"flag"
	"os"
	"time"

	"github.com/vistaran/helpdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the remote store API
//	-d string   SQLite DSN of the local store
//	-i int      background poll interval in seconds
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// packages (e.g. -config) do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "base URL of the remote store API")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "SQLite DSN of the local store")
	pollSeconds := fs.Int("i", int(cfg.PollInterval.Seconds()), "background poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollSeconds) * time.Second
}
