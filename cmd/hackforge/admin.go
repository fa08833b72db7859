// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package main

import (
	"errors"
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/hackforge/hackforge/internal/auth"
	authpg "github.com/hackforge/hackforge/internal/auth/postgres"
	"github.com/hackforge/hackforge/internal/store"
)

// NewCreateAdminCmd creates the create-admin subcommand.
func NewCreateAdminCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register the administrator account",
		Long: `Register the administrator account with the configured admin email
and grant it the admin role. An already-registered username is tolerated;
the role grant still runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreateAdmin(cmd, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "administrator username")
	cmd.Flags().StringVar(&password, "password", "", "administrator password (required)")
	_ = cmd.MarkFlagRequired("password") //nolint:errcheck // flag is statically known

	return cmd
}

func runCreateAdmin(cmd *cobra.Command, username, password string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	if cfg.Auth.AdminEmail == "" {
		return oops.Code("CONFIG_INVALID").Errorf("authentication.admin_email is required")
	}

	ctx := cmd.Context()
	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	hasher, err := auth.NewBcryptHasher(cfg.Auth.SaltRounds, cfg.Auth.SaltPrefix)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWT.Algorithm, cfg.Auth.JWT.PrivateKey, cfg.Auth.JWT.PublicKey)
	if err != nil {
		return err
	}
	users := authpg.NewUserRepository(pool)
	svc, err := auth.NewService(users, hasher, tokens)
	if err != nil {
		return err
	}

	user, err := svc.Register(ctx, username, password, cfg.Auth.AdminEmail)
	if err != nil {
		if !errors.Is(err, auth.ErrDuplicate) {
			return err
		}
		cmd.Println("Administrator account already exists, skipping registration")
		user, err = users.GetByName(ctx, username)
		if err != nil {
			return err
		}
	} else {
		cmd.Println("Administrator account registered")
	}

	roles, err := users.GetRoles(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if role == auth.RoleAdmin {
			cmd.Println("Administrator role already granted")
			return nil
		}
	}

	if err := users.SetRoles(ctx, user.ID, []string{auth.RoleAdmin}); err != nil {
		return err
	}
	slog.Info("administrator role granted", "username", username)
	cmd.Println("Administrator role granted")
	return nil
}
