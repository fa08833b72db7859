// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackforge/hackforge/internal/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		path := writeConfig(t, "app.config.yaml", `
database:
  url: postgres://localhost:5432/hackforge
authentication:
  salt_rounds: 10
  salt_prefix: "2a"
  admin_email: admin@example.com
  jwt:
    algorithm: HS256
    private_key: local-secret
log:
  format: text
`)

		cfg, err := config.Load([]string{path}, nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/hackforge", cfg.Database.URL)
		assert.Equal(t, 10, cfg.Auth.SaltRounds)
		assert.Equal(t, "2a", cfg.Auth.SaltPrefix)
		assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
		assert.Equal(t, "local-secret", cfg.Auth.JWT.PrivateKey)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("later files override earlier ones", func(t *testing.T) {
		base := writeConfig(t, "production.config.yaml", `
database:
  url: postgres://prod:5432/hackforge
authentication:
  admin_email: admin@example.com
`)
		override := writeConfig(t, "development.config.yaml", `
database:
  url: postgres://localhost:5432/hackforge_dev
`)

		cfg, err := config.Load([]string{base, override}, nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/hackforge_dev", cfg.Database.URL)
		// Keys absent from the later file keep the earlier value.
		assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
	})

	t.Run("missing files are skipped", func(t *testing.T) {
		present := writeConfig(t, "present.config.yaml", `
database:
  url: postgres://localhost:5432/hackforge
`)
		missing := filepath.Join(t.TempDir(), "does-not-exist.yaml")

		cfg, err := config.Load([]string{missing, present}, nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/hackforge", cfg.Database.URL)
	})

	t.Run("all files missing yields defaults", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.yaml")

		cfg, err := config.Load([]string{missing}, nil)
		require.NoError(t, err)
		assert.Empty(t, cfg.Database.URL)
		assert.Equal(t, 12, cfg.Auth.SaltRounds)
		assert.Equal(t, "2b", cfg.Auth.SaltPrefix)
		assert.Equal(t, "HS256", cfg.Auth.JWT.Algorithm)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		bad := writeConfig(t, "bad.config.yaml", "::: not yaml {{{")

		_, err := config.Load([]string{bad}, nil)
		require.Error(t, err)
	})

	t.Run("flags override files", func(t *testing.T) {
		path := writeConfig(t, "app.config.yaml", `
database:
  url: postgres://file:5432/hackforge
log:
  format: json
`)

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("database.url", "", "")
		flags.String("log.format", "", "")
		require.NoError(t, flags.Parse([]string{
			"--database.url=postgres://flag:5432/hackforge",
		}))

		cfg, err := config.Load([]string{path}, flags)
		require.NoError(t, err)
		assert.Equal(t, "postgres://flag:5432/hackforge", cfg.Database.URL)
		// Unset flags do not clobber file values.
		assert.Equal(t, "json", cfg.Log.Format)
	})
}
