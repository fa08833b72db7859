// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

// Package challenge provides the challenge and submission data layer.
//
// A challenge's lifecycle phase (scheduled, active, closed) is never stored:
// it is derived at query time from the stored time window and the current
// instant, so it changes purely with wall-clock time.
package challenge
