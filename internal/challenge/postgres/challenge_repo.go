// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

// Package postgres implements challenge repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/hackforge/hackforge/internal/challenge"
	"github.com/hackforge/hackforge/internal/store"
)

// updatableColumns maps update field keys to their columns, in the order
// they are applied. Keys outside this map are dropped without error; the
// immutable id, creator, and creation-timestamp columns are never listed.
var updatableColumns = []struct {
	field  string
	column string
}{
	{challenge.FieldTitle, "title"},
	{challenge.FieldDescription, "description"},
	{challenge.FieldStart, "starts_at"},
	{challenge.FieldEnd, "ends_at"},
}

// ChallengeRepository implements challenge.Repository using PostgreSQL.
type ChallengeRepository struct {
	db store.DB
	tx *store.Transactor
}

// NewChallengeRepository creates a new ChallengeRepository.
func NewChallengeRepository(db store.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db, tx: store.NewTransactor(db)}
}

// Create stores a new challenge.
func (r *ChallengeRepository) Create(ctx context.Context, ch *challenge.Challenge) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Querier(ctx, r.db).Exec(ctx, `
			INSERT INTO challenges (id, title, description, starts_at, ends_at, user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			ch.ID.String(),
			ch.Title,
			ch.Description,
			ch.Start,
			ch.End,
			ch.CreatorID.String(),
			ch.CreatedAt,
		)
		if err != nil {
			return oops.Code("CHALLENGE_CREATE_FAILED").
				With("operation", "insert challenge").
				With("id", ch.ID.String()).
				Wrap(err)
		}
		return nil
	})
}

// Get retrieves a challenge by ID.
func (r *ChallengeRepository) Get(ctx context.Context, id ulid.ULID) (*challenge.Challenge, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, description, starts_at, ends_at, user_id, created_at
		FROM challenges
		WHERE id = $1
	`, id.String())

	ch, err := scanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CHALLENGE_NOT_FOUND").
			With("id", id.String()).
			Wrap(challenge.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CHALLENGE_GET_FAILED").
			With("operation", "get challenge").
			With("id", id.String()).
			Wrap(err)
	}
	return ch, nil
}

// GetActive returns the challenge whose window contains the current
// instant. When windows overlap, the most recently started challenge wins.
func (r *ChallengeRepository) GetActive(ctx context.Context) (*challenge.Challenge, error) {
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx, `
		SELECT id, title, description, starts_at, ends_at, user_id, created_at
		FROM challenges
		WHERE starts_at <= $1 AND ends_at >= $1
		ORDER BY starts_at DESC
		LIMIT 1
	`, now)

	ch, err := scanChallenge(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CHALLENGE_NOT_FOUND").
			With("at", now).
			Wrap(challenge.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CHALLENGE_GET_ACTIVE_FAILED").
			With("operation", "get active challenge").
			Wrap(err)
	}
	return ch, nil
}

// GetAll returns all challenges ordered by (start, end) ascending.
func (r *ChallengeRepository) GetAll(ctx context.Context) ([]*challenge.Challenge, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, starts_at, ends_at, user_id, created_at
		FROM challenges
		ORDER BY starts_at, ends_at
	`)
	if err != nil {
		return nil, oops.Code("CHALLENGE_GET_ALL_FAILED").
			With("operation", "get all challenges").
			Wrap(err)
	}
	defer rows.Close()

	var challenges []*challenge.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			return nil, oops.Code("CHALLENGE_GET_ALL_FAILED").
				With("operation", "scan challenge row").
				Wrap(err)
		}
		challenges = append(challenges, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CHALLENGE_GET_ALL_FAILED").
			With("operation", "iterate challenges").
			Wrap(err)
	}
	return challenges, nil
}

// Update applies the allow-listed fields to a challenge inside one
// transaction. Disallowed or unknown keys are dropped without error; a call
// with no applicable fields is a no-op.
func (r *ChallengeRepository) Update(ctx context.Context, id ulid.ULID, fields map[string]any) error {
	var (
		assignments []string
		args        []any
	)
	for _, uc := range updatableColumns {
		value, ok := fields[uc.field]
		if !ok {
			continue
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", uc.column, len(args)))
	}
	if len(assignments) == 0 {
		return nil
	}
	args = append(args, id.String())

	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		query := fmt.Sprintf("UPDATE challenges SET %s WHERE id = $%d",
			strings.Join(assignments, ", "), len(args))
		result, err := store.Querier(ctx, r.db).Exec(ctx, query, args...)
		if err != nil {
			return oops.Code("CHALLENGE_UPDATE_FAILED").
				With("operation", "update challenge").
				With("id", id.String()).
				Wrap(err)
		}
		if result.RowsAffected() == 0 {
			return oops.Code("CHALLENGE_NOT_FOUND").
				With("id", id.String()).
				Wrap(challenge.ErrNotFound)
		}
		return nil
	})
}

// scanChallenge scans a single row into a Challenge.
// Callers are responsible for handling pgx.ErrNoRows.
func scanChallenge(row pgx.Row) (*challenge.Challenge, error) {
	var (
		idStr      string
		title      string
		desc       string
		start      time.Time
		end        time.Time
		creatorStr string
		createdAt  time.Time
	)

	err := row.Scan(&idStr, &title, &desc, &start, &end, &creatorStr, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("CHALLENGE_SCAN_FAILED").
			With("operation", "scan challenge").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CHALLENGE_INVALID_ID").
			With("operation", "parse challenge id").
			With("id", idStr).
			Wrap(err)
	}
	creatorID, err := ulid.Parse(creatorStr)
	if err != nil {
		return nil, oops.Code("CHALLENGE_INVALID_ID").
			With("operation", "parse creator id").
			With("user_id", creatorStr).
			Wrap(err)
	}

	return &challenge.Challenge{
		ID:          id,
		Title:       title,
		Description: desc,
		Start:       start,
		End:         end,
		CreatorID:   creatorID,
		CreatedAt:   createdAt,
	}, nil
}

// Compile-time interface check.
var _ challenge.Repository = (*ChallengeRepository)(nil)
