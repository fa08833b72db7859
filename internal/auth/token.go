// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultTokenAlgorithm is the signing algorithm used when none is configured.
const DefaultTokenAlgorithm = "HS256"

// CreatedClaim is the claim key stamped on every issued token with the
// issuance unix timestamp.
const CreatedClaim = "created"

// TokenIssuer builds and signs compact claim-bearing tokens, and decodes
// them back into claims. It is claim-shape-agnostic: callers own the claim
// contract.
type TokenIssuer struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

// NewTokenIssuer creates a TokenIssuer for the given algorithm and key pair.
// algorithm defaults to HS256. For HMAC algorithms privateKey is the shared
// secret and publicKey is ignored. For RSA algorithms both keys are PEM
// encoded; publicKey may be omitted, in which case it is derived from the
// private key.
//
// A missing private key is not an error here: issuance fails with a
// configuration error instead, so verify-only consumers can be constructed.
func NewTokenIssuer(algorithm, privateKey, publicKey string) (*TokenIssuer, error) {
	if algorithm == "" {
		algorithm = DefaultTokenAlgorithm
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, oops.Code("TOKEN_BAD_ALGORITHM").
			With("algorithm", algorithm).
			Errorf("unknown signing algorithm: %s", algorithm)
	}

	issuer := &TokenIssuer{method: method}

	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		if privateKey != "" {
			issuer.signKey = []byte(privateKey)
			issuer.verifyKey = []byte(privateKey)
		}
	case *jwt.SigningMethodRSA:
		if privateKey != "" {
			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKey))
			if err != nil {
				return nil, oops.Code("TOKEN_BAD_KEY").
					With("operation", "parse private key").
					Wrap(err)
			}
			issuer.signKey = key
			issuer.verifyKey = &key.PublicKey
		}
		if publicKey != "" {
			key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKey))
			if err != nil {
				return nil, oops.Code("TOKEN_BAD_KEY").
					With("operation", "parse public key").
					Wrap(err)
			}
			issuer.verifyKey = key
		}
	default:
		return nil, oops.Code("TOKEN_BAD_ALGORITHM").
			With("algorithm", algorithm).
			Errorf("unsupported signing algorithm family: %s", algorithm)
	}

	return issuer, nil
}

// Issue merges the caller's claims with a generated created timestamp,
// serializes, and signs. Claims are flat string-to-scalar mappings; shape
// validity is the caller's contract.
func (t *TokenIssuer) Issue(claims map[string]any) (string, error) {
	if t.signKey == nil {
		return "", oops.Code("TOKEN_NO_SIGNING_KEY").
			Errorf("no private key configured for token signing")
	}

	merged := jwt.MapClaims{}
	for k, v := range claims {
		merged[k] = v
	}
	merged[CreatedClaim] = time.Now().Unix()

	signed, err := jwt.NewWithClaims(t.method, merged).SignedString(t.signKey)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify decodes a token with the configured key and algorithm and returns
// its claims. Signature mismatch, a different algorithm, or malformed
// structure all fail with a TOKEN_INVALID error.
func (t *TokenIssuer) Verify(token string) (map[string]any, error) {
	if t.verifyKey == nil {
		return nil, oops.Code("TOKEN_NO_VERIFY_KEY").
			Errorf("no key configured for token verification")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(parsed *jwt.Token) (any, error) {
		if parsed.Method.Alg() != t.method.Alg() {
			return nil, oops.Code("TOKEN_INVALID").
				With("algorithm", parsed.Method.Alg()).
				Errorf("unexpected signing algorithm: %s", parsed.Method.Alg())
		}
		return t.verifyKey, nil
	})
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID").Wrap(err)
	}
	return claims, nil
}
