// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hackforge/hackforge/pkg/errutil"
)

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a connection string")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DB_CONNECT_FAILED")
}

func TestConnect_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping retry-backoff test in short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context stops the ping retry loop immediately.
	_, err := Connect(ctx, "postgres://localhost:1/hackforge")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "DB_CONNECT_FAILED")
}
