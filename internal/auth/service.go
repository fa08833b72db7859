// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/hackforge/hackforge/internal/observability"
)

// dummyPasswordHash is used when a user doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$2b$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Service provides authentication operations: credential verification,
// registration, and access token issuance.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
	logger *slog.Logger
}

// NewService creates a Service. All collaborators are required.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer) (*Service, error) {
	return NewServiceWithLogger(users, hasher, tokens, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_BAD_WIRING").Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_BAD_WIRING").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_BAD_WIRING").Errorf("token issuer is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_BAD_WIRING").Errorf("logger is required")
	}
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}, nil
}

// Authenticate verifies a username/password pair and returns the matching
// user. Unknown username and wrong password produce the identical
// AUTH_INVALID_CREDENTIALS outcome so callers cannot enumerate usernames,
// and a dummy verification is performed on lookup miss to keep response
// time consistent.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, lookupErr := s.users.GetByName(ctx, username)

	targetHash := dummyPasswordHash
	userExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			observability.RecordLogin("error")
			return nil, oops.Code("AUTH_LOOKUP_FAILED").
				With("operation", "get user by name").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify the password, against the dummy hash on lookup miss.
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !userExists {
			observability.RecordLogin("invalid")
			return nil, invalidCredentials()
		}
		observability.RecordLogin("error")
		return nil, oops.Code("AUTH_VERIFY_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	if !userExists || !valid {
		s.logger.Debug("authentication rejected", "username", username)
		observability.RecordLogin("invalid")
		return nil, invalidCredentials()
	}

	observability.RecordLogin("success")
	return user, nil
}

// Register hashes the password and persists a new account. Uniqueness is
// enforced by the storage layer's constraint on username; a violation
// surfaces as a USER_DUPLICATE error from the repository, not a pre-check
// here.
func (s *Service) Register(ctx context.Context, username, password, email string) (*User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		observability.RecordRegistration("error")
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(username, hash, email, nil)
	if err != nil {
		observability.RecordRegistration("invalid")
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			observability.RecordRegistration("duplicate")
			return nil, err
		}
		observability.RecordRegistration("error")
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	s.logger.Info("user registered", "username", username)
	observability.RecordRegistration("success")
	return user, nil
}

// SessionToken issues an access token for an authenticated user, carrying
// user_id and username claims plus the created timestamp.
func (s *Service) SessionToken(user *User) (string, error) {
	token, err := s.tokens.Issue(map[string]any{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})
	if err != nil {
		return "", err
	}
	observability.RecordTokenIssued("session")
	return token, nil
}

// VerificationToken issues a token proving email ownership for the
// verification flow, carrying username and email claims.
func (s *Service) VerificationToken(username, email string) (string, error) {
	token, err := s.tokens.Issue(map[string]any{
		"username": username,
		"email":    email,
	})
	if err != nil {
		return "", err
	}
	observability.RecordTokenIssued("verification")
	return token, nil
}

func invalidCredentials() error {
	return oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid username or password")
}
