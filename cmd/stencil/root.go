package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/stencil/internal/config"
	"github.com/jackzampolin/stencil/internal/pipeline"
	"github.com/jackzampolin/stencil/internal/store"
	"github.com/jackzampolin/stencil/version"
)

var (
	cfgFile string
	homeDir string
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "CV template schema inference and filling",
	Long: `Stencil turns Word CV templates into reusable, fillable forms.

Registering a template infers its section schema (summary, skills,
experience, projects, education), strips the example content, and keeps
a cleaned copy. Filling a registered template maps a candidate's JSON
record into the cleaned form, replicating repeated blocks to match the
candidate's data.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.stencil/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "stencil home directory (default: ~/.stencil)",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the text logger every command shares.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// setup loads config and opens the template store. The caller owns the
// returned cleanup func.
func setup() (*config.Config, *pipeline.Service, *slog.Logger, func(), error) {
	cm, err := config.NewManager(cfgFile, homeDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cfg := cm.Get()
	log := newLogger(cfg.LogLevel)

	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, nil, nil, err
	}

	st, err := store.Open(cfg.StoreDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	svc := pipeline.New(cfg, st, log)
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Error("closing store", "err", err)
		}
	}
	return cfg, svc, log, cleanup, nil
}
