// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/hackforge/hackforge/internal/challenge"
	"github.com/hackforge/hackforge/internal/store"
)

// SubmissionRepository implements challenge.SubmissionRepository using
// PostgreSQL.
type SubmissionRepository struct {
	db store.DB
	tx *store.Transactor
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(db store.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db, tx: store.NewTransactor(db)}
}

// Create stores a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, sub *challenge.Submission) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Querier(ctx, r.db).Exec(ctx, `
			INSERT INTO submissions (id, type, link, description, user_id, challenge_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			sub.ID.String(),
			sub.Type,
			sub.Link,
			sub.Description,
			sub.UserID.String(),
			sub.ChallengeID.String(),
			sub.CreatedAt,
		)
		if err != nil {
			return oops.Code("SUBMISSION_CREATE_FAILED").
				With("operation", "insert submission").
				With("id", sub.ID.String()).
				Wrap(err)
		}
		return nil
	})
}

// GetAll returns the submissions for a challenge, oldest first.
func (r *SubmissionRepository) GetAll(ctx context.Context, challengeID ulid.ULID) ([]*challenge.Submission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, link, description, user_id, challenge_id, created_at
		FROM submissions
		WHERE challenge_id = $1
		ORDER BY created_at
	`, challengeID.String())
	if err != nil {
		return nil, oops.Code("SUBMISSION_GET_ALL_FAILED").
			With("operation", "get submissions").
			With("challenge_id", challengeID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var subs []*challenge.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, oops.Code("SUBMISSION_GET_ALL_FAILED").
				With("operation", "scan submission row").
				Wrap(err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("SUBMISSION_GET_ALL_FAILED").
			With("operation", "iterate submissions").
			Wrap(err)
	}
	return subs, nil
}

// UpdateDescription replaces a submission's description.
func (r *SubmissionRepository) UpdateDescription(ctx context.Context, submissionID ulid.ULID, description string) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		result, err := store.Querier(ctx, r.db).Exec(ctx, `
			UPDATE submissions SET description = $2 WHERE id = $1
		`, submissionID.String(), description)
		if err != nil {
			return oops.Code("SUBMISSION_UPDATE_FAILED").
				With("operation", "update submission description").
				With("id", submissionID.String()).
				Wrap(err)
		}
		if result.RowsAffected() == 0 {
			return oops.Code("SUBMISSION_NOT_FOUND").
				With("id", submissionID.String()).
				Wrap(challenge.ErrNotFound)
		}
		return nil
	})
}

// AddStatus appends a status history row for a submission.
func (r *SubmissionRepository) AddStatus(ctx context.Context, status *challenge.Status) error {
	return r.tx.InTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Querier(ctx, r.db).Exec(ctx, `
			INSERT INTO submission_status (id, status, updated_at, user_id, submission_id)
			VALUES ($1, $2, $3, $4, $5)
		`,
			status.ID.String(),
			status.Status,
			status.Updated,
			status.UserID.String(),
			status.SubmissionID.String(),
		)
		if err != nil {
			return oops.Code("STATUS_ADD_FAILED").
				With("operation", "insert submission status").
				With("submission_id", status.SubmissionID.String()).
				Wrap(err)
		}
		return nil
	})
}

// StatusHistory returns a submission's status rows, oldest first.
func (r *SubmissionRepository) StatusHistory(ctx context.Context, submissionID ulid.ULID) ([]*challenge.Status, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, updated_at, user_id, submission_id
		FROM submission_status
		WHERE submission_id = $1
		ORDER BY updated_at
	`, submissionID.String())
	if err != nil {
		return nil, oops.Code("STATUS_HISTORY_FAILED").
			With("operation", "get status history").
			With("submission_id", submissionID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var history []*challenge.Status
	for rows.Next() {
		var (
			idStr    string
			label    string
			updated  time.Time
			userStr  string
			subIDStr string
		)
		if err := rows.Scan(&idStr, &label, &updated, &userStr, &subIDStr); err != nil {
			return nil, oops.Code("STATUS_HISTORY_FAILED").
				With("operation", "scan status row").
				Wrap(err)
		}
		id, err := ulid.Parse(idStr)
		if err != nil {
			return nil, oops.Code("STATUS_INVALID_ID").With("id", idStr).Wrap(err)
		}
		userID, err := ulid.Parse(userStr)
		if err != nil {
			return nil, oops.Code("STATUS_INVALID_ID").With("user_id", userStr).Wrap(err)
		}
		subID, err := ulid.Parse(subIDStr)
		if err != nil {
			return nil, oops.Code("STATUS_INVALID_ID").With("submission_id", subIDStr).Wrap(err)
		}
		history = append(history, &challenge.Status{
			ID:           id,
			Status:       label,
			Updated:      updated,
			UserID:       userID,
			SubmissionID: subID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("STATUS_HISTORY_FAILED").
			With("operation", "iterate status rows").
			Wrap(err)
	}
	return history, nil
}

// scanSubmission scans a single row into a Submission.
func scanSubmission(row pgx.Row) (*challenge.Submission, error) {
	var (
		idStr     string
		subType   string
		link      string
		desc      string
		userStr   string
		chStr     string
		createdAt time.Time
	)

	err := row.Scan(&idStr, &subType, &link, &desc, &userStr, &chStr, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("SUBMISSION_SCAN_FAILED").
			With("operation", "scan submission").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("SUBMISSION_INVALID_ID").With("id", idStr).Wrap(err)
	}
	userID, err := ulid.Parse(userStr)
	if err != nil {
		return nil, oops.Code("SUBMISSION_INVALID_ID").With("user_id", userStr).Wrap(err)
	}
	challengeID, err := ulid.Parse(chStr)
	if err != nil {
		return nil, oops.Code("SUBMISSION_INVALID_ID").With("challenge_id", chStr).Wrap(err)
	}

	return &challenge.Submission{
		ID:          id,
		Type:        subType,
		Link:        link,
		Description: desc,
		UserID:      userID,
		ChallengeID: challengeID,
		CreatedAt:   createdAt,
	}, nil
}

// Compile-time interface check.
var _ challenge.SubmissionRepository = (*SubmissionRepository)(nil)
