// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package challenge

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// UserRef identifies a user by raw id or by an already-resolved entity.
type UserRef interface {
	UserID() ulid.ULID
}

// ChallengeRef identifies a challenge by raw id or resolved entity.
type ChallengeRef interface {
	ChallengeID() ulid.ULID
}

// Ref wraps a raw ULID so bare ids can be passed wherever a UserRef or
// ChallengeRef is expected.
type Ref ulid.ULID

// UserID implements UserRef.
func (r Ref) UserID() ulid.ULID { return ulid.ULID(r) }

// ChallengeID implements ChallengeRef.
func (r Ref) ChallengeID() ulid.ULID { return ulid.ULID(r) }

// Submission is a user's entry for a challenge. It belongs to exactly one
// user and one challenge.
type Submission struct {
	ID          ulid.ULID
	Type        string
	Link        string
	Description string
	UserID      ulid.ULID
	ChallengeID ulid.ULID
	CreatedAt   time.Time
}

// NewSubmission creates a Submission, normalizing the challenge and user
// references to ids.
func NewSubmission(subType, link, description string, ch ChallengeRef, user UserRef) (*Submission, error) {
	if subType == "" {
		return nil, oops.Code("SUBMISSION_INVALID").Errorf("submission type cannot be empty")
	}
	if link == "" {
		return nil, oops.Code("SUBMISSION_INVALID").Errorf("submission link cannot be empty")
	}
	return &Submission{
		ID:          ulid.Make(),
		Type:        subType,
		Link:        link,
		Description: description,
		UserID:      user.UserID(),
		ChallengeID: ch.ChallengeID(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Status is one append-style history row recording a submission status
// change.
type Status struct {
	ID           ulid.ULID
	Status       string
	Updated      time.Time
	UserID       ulid.ULID
	SubmissionID ulid.ULID
}

// NewStatus creates a Status row for a submission, stamped with the current
// time.
func NewStatus(status string, submission ulid.ULID, changedBy UserRef) (*Status, error) {
	if status == "" {
		return nil, oops.Code("STATUS_INVALID").Errorf("status cannot be empty")
	}
	return &Status{
		ID:           ulid.Make(),
		Status:       status,
		Updated:      time.Now().UTC(),
		UserID:       changedBy.UserID(),
		SubmissionID: submission,
	}, nil
}

// SubmissionRepository manages submission persistence.
type SubmissionRepository interface {
	// Create stores a new submission.
	Create(ctx context.Context, sub *Submission) error

	// GetAll returns the submissions for a challenge.
	GetAll(ctx context.Context, challengeID ulid.ULID) ([]*Submission, error)

	// UpdateDescription replaces a submission's description.
	UpdateDescription(ctx context.Context, submissionID ulid.ULID, description string) error

	// AddStatus appends a status history row.
	AddStatus(ctx context.Context, status *Status) error

	// StatusHistory returns a submission's status rows, oldest first.
	StatusHistory(ctx context.Context, submissionID ulid.ULID) ([]*Status, error)
}
