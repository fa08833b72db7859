// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Username validation constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// RoleAdmin is the role label granting administrative capabilities.
const RoleAdmin = "admin"

// usernameRegex matches usernames that:
// - Start with a letter (a-z, A-Z)
// - Contain only letters, numbers, and underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// User represents a registered account. PasswordHash is never exposed
// outward; identity fields are immutable after creation. Values returned
// by repositories are detached copies of the stored row.
type User struct {
	ID           ulid.ULID
	Username     string
	PasswordHash string
	Email        string
	Avatar       *string
	CreatedAt    time.Time
}

// UserID returns the user's id, letting a resolved User be passed where
// other packages expect a user reference.
func (u *User) UserID() ulid.ULID {
	return u.ID
}

// NewUser creates a User with a validated username. The password given here
// is already hashed; this package's repositories never hash.
func NewUser(username, passwordHash, email string, avatar *string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_EMPTY_HASH").Errorf("password hash cannot be empty")
	}
	return &User{
		ID:           ulid.Make(),
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Avatar:       avatar,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ValidateUsername validates a username against rules.
// Username requirements:
// - Length: MinUsernameLength to MaxUsernameLength characters
// - Must start with a letter
// - Can contain only letters (a-z, A-Z), numbers (0-9), and underscores (_)
func ValidateUsername(username string) error {
	if username == "" {
		return oops.Code("AUTH_INVALID_USERNAME").Errorf("username cannot be empty")
	}
	if len(username) < MinUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("min", MinUsernameLength).
			Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return oops.Code("AUTH_INVALID_USERNAME").
			With("max", MaxUsernameLength).
			Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return oops.Code("AUTH_INVALID_USERNAME").
			Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}

// UserRepository manages user and role persistence. Each method is one
// scoped unit of work; implementations release the storage session on every
// exit path.
type UserRepository interface {
	// Create stores a new user. A username uniqueness violation is
	// surfaced as an error wrapping ErrDuplicate.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns an error wrapping
	// ErrNotFound when no row matches.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByName retrieves a user by username.
	GetByName(ctx context.Context, username string) (*User, error)

	// GetRoles returns the set of role labels held by a user.
	GetRoles(ctx context.Context, userID ulid.ULID) ([]string, error)

	// SetRoles grants one role row per label. The operation is additive:
	// existing roles are not cleared first.
	SetRoles(ctx context.Context, userID ulid.ULID, roles []string) error
}
