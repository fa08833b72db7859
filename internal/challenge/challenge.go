// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package challenge

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Phase is a challenge's lifecycle phase, derived from its time window.
type Phase string

// Challenge lifecycle phases.
const (
	PhaseScheduled Phase = "scheduled"
	PhaseActive    Phase = "active"
	PhaseClosed    Phase = "closed"
)

// Challenge represents a time-windowed challenge. Start and End bound the
// submission window; CreatorID references the user who created it.
type Challenge struct {
	ID          ulid.ULID
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	CreatorID   ulid.ULID
	CreatedAt   time.Time
}

// New creates a Challenge with a validated time window (start must not be
// after end).
func New(title, description string, start, end time.Time, creatorID ulid.ULID) (*Challenge, error) {
	if title == "" {
		return nil, oops.Code("CHALLENGE_INVALID").Errorf("title cannot be empty")
	}
	if start.After(end) {
		return nil, oops.Code("CHALLENGE_INVALID").
			With("start", start).
			With("end", end).
			Errorf("challenge start must not be after end")
	}
	return &Challenge{
		ID:          ulid.Make(),
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		CreatorID:   creatorID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// PhaseAt derives the lifecycle phase at the given instant.
func (c *Challenge) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(c.Start):
		return PhaseScheduled
	case now.After(c.End):
		return PhaseClosed
	default:
		return PhaseActive
	}
}

// ActiveAt reports whether the challenge window contains the given instant.
func (c *Challenge) ActiveAt(now time.Time) bool {
	return c.PhaseAt(now) == PhaseActive
}

// ChallengeID implements ChallengeRef.
func (c *Challenge) ChallengeID() ulid.ULID {
	return c.ID
}

// Update field keys accepted by Repository.Update. Field keys outside this
// set, including the immutable id, user_id, and created fields, are
// silently dropped.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStart       = "start"
	FieldEnd         = "end"
)

// Repository manages challenge persistence. Each method is one scoped unit
// of work; reads and writes never span calls.
type Repository interface {
	// Create stores a new challenge.
	Create(ctx context.Context, ch *Challenge) error

	// Get retrieves a challenge by ID. Returns an error wrapping
	// ErrNotFound when no row matches.
	Get(ctx context.Context, id ulid.ULID) (*Challenge, error)

	// GetActive returns the challenge whose window contains the current
	// instant. When several windows overlap, the most recently started
	// challenge wins.
	GetActive(ctx context.Context) (*Challenge, error)

	// GetAll returns all challenges ordered by (start, end) ascending.
	GetAll(ctx context.Context) ([]*Challenge, error)

	// Update applies the given fields to a challenge. Only the Field*
	// keys are applied; anything else is dropped without error.
	Update(ctx context.Context, id ulid.ULID, fields map[string]any) error
}
