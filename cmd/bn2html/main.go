package main

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-bn2html/internal/config"
	"github.com/alnah/go-bn2html/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, args, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(ExitUsage)
	}

	if flags.version {
		fmt.Printf("bn2html %s\n", Version)
		os.Exit(ExitSuccess)
	}

	log := newLogger(flags)

	// Configure GOMAXPROCS for containers.
	// Error ignored: maxprocs.Set only fails if the GOMAXPROCS env is
	// invalid, in which case Go runtime defaults apply and the program
	// continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if flags.initConfig != "" {
		if err := config.DefaultConfig().Save(flags.initConfig); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(ExitIO)
		}
		log.Info("wrote default config", "path", flags.initConfig)
		os.Exit(ExitSuccess)
	}

	if err := run(flags, args, log); err != nil {
		fmt.Fprintln(os.Stderr, err.Error()+hints.ForError(err))
		os.Exit(exitCodeFor(err))
	}
}

// newLogger builds the CLI logger: quiet shows errors only, verbose shows
// debug detail, default shows progress.
func newLogger(flags *cliFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
