// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

// Package config loads HackForge settings from YAML config files with
// optional command-line flag overrides. The core only reads these values;
// supplying them is the embedding process's concern.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/hackforge/hackforge/internal/auth"
)

// DefaultPaths are the config files consulted when none are given
// explicitly. Later files override earlier ones; missing files are skipped.
var DefaultPaths = []string{"production.config.yaml", "development.config.yaml"}

// Config is the full configuration surface consumed by the data core.
type Config struct {
	Database DatabaseSettings `koanf:"database"`
	Auth     AuthSettings     `koanf:"authentication"`
	Log      LogSettings      `koanf:"log"`
}

// DatabaseSettings configures the PostgreSQL connection.
type DatabaseSettings struct {
	URL string `koanf:"url"`
}

// AuthSettings configures credential hashing, token signing, and the
// administrator bootstrap account.
type AuthSettings struct {
	SaltRounds int         `koanf:"salt_rounds"`
	SaltPrefix string      `koanf:"salt_prefix"`
	AdminEmail string      `koanf:"admin_email"`
	JWT        JWTSettings `koanf:"jwt"`
}

// JWTSettings configures the token signing algorithm and key pair. The
// public key is used only with asymmetric algorithms.
type JWTSettings struct {
	Algorithm  string `koanf:"algorithm"`
	PrivateKey string `koanf:"private_key"`
	PublicKey  string `koanf:"public_key"`
}

// LogSettings configures structured logging output.
type LogSettings struct {
	Format string `koanf:"format"`
}

// Load reads the given config files in order, merging later files over
// earlier ones, then applies flag overrides when flags is non-nil. Missing
// files are skipped; unreadable or malformed files are errors.
func Load(paths []string, flags *pflag.FlagSet) (*Config, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}

	k := koanf.New(".")
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "apply flag overrides").
				Wrap(err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").
			With("operation", "unmarshal config").
			Wrap(err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Auth.SaltRounds == 0 {
		c.Auth.SaltRounds = auth.DefaultSaltRounds
	}
	if c.Auth.SaltPrefix == "" {
		c.Auth.SaltPrefix = auth.DefaultSaltPrefix
	}
	if c.Auth.JWT.Algorithm == "" {
		c.Auth.JWT.Algorithm = auth.DefaultTokenAlgorithm
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}
