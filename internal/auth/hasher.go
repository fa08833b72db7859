// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package auth

import (
	"errors"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSaltRounds is the bcrypt cost factor used when none is configured.
const DefaultSaltRounds = 12

// DefaultSaltPrefix is the bcrypt version tag embedded in generated salts.
const DefaultSaltPrefix = "2b"

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted adaptive hash of the password.
	Hash(password string) (string, error)

	// Verify checks if the password matches the hash, recomputing with the
	// parameters embedded in the stored hash. Comparison is constant-time.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on
	// an invalid stored hash.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt with a configurable
// cost factor and salt version prefix.
type BcryptHasher struct {
	rounds int
	prefix string
}

// NewBcryptHasher creates a BcryptHasher. rounds is the bcrypt cost factor
// (DefaultSaltRounds when zero); prefix is the salt version tag, one of
// "2a", "2b", or "2y" (DefaultSaltPrefix when empty).
func NewBcryptHasher(rounds int, prefix string) (*BcryptHasher, error) {
	if rounds == 0 {
		rounds = DefaultSaltRounds
	}
	if rounds < bcrypt.MinCost || rounds > bcrypt.MaxCost {
		return nil, oops.Code("AUTH_BAD_COST").
			With("rounds", rounds).
			Errorf("salt rounds must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if prefix == "" {
		prefix = DefaultSaltPrefix
	}
	switch prefix {
	case "2a", "2b", "2y":
	default:
		return nil, oops.Code("AUTH_BAD_SALT_PREFIX").
			With("prefix", prefix).
			Errorf("unsupported salt prefix: %s", prefix)
	}
	return &BcryptHasher{rounds: rounds, prefix: prefix}, nil
}

// Hash produces a bcrypt hash of the password. The hash value is
// non-deterministic (random salt) but the format is fixed:
// $<prefix>$<cost>$<salt><digest>.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.rounds)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}

	// The library always emits the 2a tag; rewrite it to the configured
	// version prefix. Verification is tag-agnostic across bcrypt variants.
	encoded := string(hash)
	if h.prefix != "2a" {
		encoded = "$" + h.prefix + strings.TrimPrefix(encoded, "$2a")
	}
	return encoded, nil
}

// Verify checks the password against a stored bcrypt hash.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
}

// Compile-time interface check.
var _ PasswordHasher = (*BcryptHasher)(nil)
