package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/stencil/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and auto-register templates",
	Long: `Watch monitors the configured inbox directory for .docx files and
registers each one as it arrives. Files that register cleanly move to
the done directory; failures move to review.

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, log, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		w := watch.New(cfg.Watch, svc, log)
		if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
