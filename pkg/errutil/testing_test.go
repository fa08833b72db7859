// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/hackforge/hackforge/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("test error")
	// Should not fail
	errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("username", "alice").Errorf("test error")
	// Should not fail
	errutil.AssertErrorContext(t, err, "username", "alice")
}
