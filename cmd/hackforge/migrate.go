// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/hackforge/hackforge/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply pending schema migrations against the PostgreSQL database.`,
		RunE:  runMigrateUp,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations (drops all data)",
		RunE:  runMigrateDown,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show current and available migration versions",
		RunE:  runMigrateVersion,
	})

	return cmd
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	migrator, err := newMigrator(cmd)
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // best effort on shutdown

	cmd.Println("Running migrations...")
	if err := migrator.Up(); err != nil {
		return err
	}
	cmd.Println("Migrations completed successfully")
	return nil
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	migrator, err := newMigrator(cmd)
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // best effort on shutdown

	cmd.Println("Rolling back all migrations...")
	if err := migrator.Down(); err != nil {
		return err
	}
	cmd.Println("Rollback completed")
	return nil
}

func runMigrateVersion(cmd *cobra.Command, _ []string) error {
	migrator, err := newMigrator(cmd)
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // best effort on shutdown

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	cmd.Printf("Current version: %d (dirty: %v)\n", version, dirty)

	available, err := store.AvailableVersions()
	if err != nil {
		return err
	}
	cmd.Printf("Available versions: %v\n", available)
	return nil
}

func newMigrator(cmd *cobra.Command) (*store.Migrator, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	return store.NewMigrator(cfg.Database.URL)
}
