package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/photorc/cmd/photorc/opts"
	"github.com/walteh/photorc/pkg/config"
	"github.com/walteh/photorc/pkg/report"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	dir        string
	debug      bool
	verify     bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	fs := afero.NewOsFs()

	// Load config (optional file, defaults otherwise)
	cfg, err := config.Load(ctx, fs, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if verify {
		cfg.Verify = true
	}

	return &opts.RootOpts{
		Config:  cfg,
		Fs:      fs,
		Dir:     dir,
		Console: report.NewConsole(os.Stdout),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: probe .photorc.yaml/.yml/.hcl)")
	cmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "directory to process")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&verify, "verify", false, "sniff matched files and warn when content is not JPEG")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
