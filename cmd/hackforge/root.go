// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/hackforge/hackforge/internal/config"
	"github.com/hackforge/hackforge/internal/logging"
)

// NewRootCmd creates the root command for the HackForge CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hackforge",
		Short: "HackForge - challenge platform data core",
		Long: `HackForge is the identity and submission data layer behind a
challenge/hackathon platform: credential verification, signed access
tokens, and transactional storage for users, roles, challenges, and
submissions.`,
	}

	// Global flags. The dotted names double as koanf override keys for
	// values from the config files.
	cmd.PersistentFlags().StringSlice("config", nil, "config file paths (default: production.config.yaml, development.config.yaml)")
	cmd.PersistentFlags().String("database.url", "", "PostgreSQL connection URL")
	cmd.PersistentFlags().String("log.format", "", "log format (json or text)")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCreateAdminCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}

// loadConfig loads config files named by --config (or the defaults) and
// applies flag overrides, then installs the default logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	paths, err := cmd.Flags().GetStringSlice("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.SetDefault("hackforge", version, cfg.Log.Format)
	return cfg, nil
}
