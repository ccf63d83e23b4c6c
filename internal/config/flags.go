package config

import (
	"flag"
	"os"

	"github.com/taskbuddy/taskbuddy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path of the sqlite database file
//	-l string   log level (debug, info, warn, error)
//
// The arguments are pre-filtered with flagx.FilterArgs so flags handled
// elsewhere (such as -c/-config) do not cause parse errors here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the sqlite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
