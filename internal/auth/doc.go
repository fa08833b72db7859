// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

// Package auth provides the identity core for HackForge.
//
// # Domain Types
//
// User values should be created with NewUser, which validates the username
// and stamps the identity fields. Direct struct initialization bypasses
// validation and may create invalid state. Repository implementations
// receive pre-validated values from the constructor.
//
// # Services
//
// Service coordinates credential verification, registration, and token
// issuance. It composes a UserRepository, a PasswordHasher, and a
// TokenIssuer, all supplied explicitly at wiring time; nothing is resolved
// ambiently per call.
package auth
