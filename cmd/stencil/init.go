package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/stencil/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the stencil home directory and a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig(homeDir)
		if err := cfg.EnsureDirs(); err != nil {
			return err
		}

		path := filepath.Join(cfg.Home, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.WriteDefault(path, homeDir); err != nil {
			return err
		}
		fmt.Printf("initialized %s\n", cfg.Home)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
