// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package store

import (
	"context"

	"github.com/samber/oops"
)

// txKey is the context key under which an open transaction is stored.
type txKey struct{}

// Transactor bounds one unit of work per repository write. It begins a
// transaction, stores it in context so repository methods called inside fn
// participate in the same transaction, and commits or rolls back before
// returning. The transaction is released on every exit path.
type Transactor struct {
	db DB
}

// NewTransactor creates a Transactor backed by the given database handle.
func NewTransactor(db DB) *Transactor {
	return &Transactor{db: db}
}

// InTransaction begins a transaction, stores it in context, and calls fn.
// If fn returns nil, the transaction is committed. Otherwise it is rolled back.
func (t *Transactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// Querier returns the handle repository methods should execute against:
// the transaction stored in ctx when one is open, otherwise the fallback.
func Querier(ctx context.Context, fallback DB) DB {
	if tx, ok := ctx.Value(txKey{}).(DB); ok {
		return tx
	}
	return fallback
}
