// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

// Package postgres implements auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/hackforge/hackforge/internal/auth"
	"github.com/hackforge/hackforge/internal/store"
)

// UserRepository implements auth.UserRepository using PostgreSQL.
// Reads run directly against the pool; writes run inside a transaction
// scoped to the call.
type UserRepository struct {
	db store.DB
	tx *store.Transactor
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db store.DB) *UserRepository {
	return &UserRepository{db: db, tx: store.NewTransactor(db)}
}

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Querier(ctx, r.db).Exec(ctx, `
			INSERT INTO users (id, username, password_hash, email, avatar, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			user.ID.String(),
			user.Username,
			user.PasswordHash,
			user.Email,
			user.Avatar,
			user.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return oops.Code("USER_DUPLICATE").
					With("username", user.Username).
					Wrap(auth.ErrDuplicate)
			}
			return oops.Code("USER_CREATE_FAILED").
				With("operation", "insert user").
				With("username", user.Username).
				Wrap(err)
		}
		return nil
	})
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, email, avatar, created_at
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// GetByName retrieves a user by username.
func (r *UserRepository) GetByName(ctx context.Context, username string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, email, avatar, created_at
		FROM users
		WHERE username = $1
	`, username)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_NAME_FAILED").
			With("operation", "get user by name").
			With("username", username).
			Wrap(err)
	}
	return user, nil
}

// GetRoles returns the role labels held by a user.
func (r *UserRepository) GetRoles(ctx context.Context, userID ulid.ULID) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT type FROM roles WHERE user_id = $1
	`, userID.String())
	if err != nil {
		return nil, oops.Code("ROLES_GET_FAILED").
			With("operation", "get roles").
			With("user_id", userID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, oops.Code("ROLES_GET_FAILED").
				With("operation", "scan role row").
				Wrap(err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ROLES_GET_FAILED").
			With("operation", "iterate roles").
			Wrap(err)
	}
	return roles, nil
}

// SetRoles inserts one role row per label in a single transaction. The
// operation is additive only: existing roles for the user are not cleared.
func (r *UserRepository) SetRoles(ctx context.Context, userID ulid.ULID, roles []string) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		q := store.Querier(ctx, r.db)
		for _, role := range roles {
			_, err := q.Exec(ctx, `
				INSERT INTO roles (id, type, user_id) VALUES ($1, $2, $3)
			`, ulid.Make().String(), role, userID.String())
			if err != nil {
				return oops.Code("ROLES_SET_FAILED").
					With("operation", "insert role").
					With("user_id", userID.String()).
					With("role", role).
					Wrap(err)
			}
		}
		return nil
	})
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr        string
		username     string
		passwordHash string
		email        string
		avatar       *string
		createdAt    time.Time
	)

	err := row.Scan(&idStr, &username, &passwordHash, &email, &avatar, &createdAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Avatar:       avatar,
		CreatedAt:    createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
