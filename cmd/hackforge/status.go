// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package main

import (
	"errors"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/hackforge/hackforge/internal/challenge"
	challengepg "github.com/hackforge/hackforge/internal/challenge/postgres"
	"github.com/hackforge/hackforge/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database connectivity and the active challenge",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}

	ctx := cmd.Context()
	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()
	cmd.Println("Database: reachable")

	challenges := challengepg.NewChallengeRepository(pool)
	active, err := challenges.GetActive(ctx)
	if err != nil {
		if errors.Is(err, challenge.ErrNotFound) {
			cmd.Println("Active challenge: none")
			return nil
		}
		return err
	}
	cmd.Printf("Active challenge: %s (%s to %s)\n", active.Title, active.Start, active.End)
	return nil
}
