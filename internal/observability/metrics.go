// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HackForge Contributors

// Package observability provides Prometheus metrics for the data core.
// Serving them over HTTP is the embedding process's concern.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Package-level counters so services can record events without holding a
// registry handle. Register them into a registry with Register.
var (
	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackforge_logins_total",
			Help: "Total number of authentication attempts by result",
		},
		[]string{"result"},
	)

	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackforge_registrations_total",
			Help: "Total number of registration attempts by result",
		},
		[]string{"result"},
	)

	tokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackforge_tokens_issued_total",
			Help: "Total number of signed tokens issued by kind",
		},
		[]string{"kind"},
	)
)

// RecordLogin increments the login counter for a result
// ("success", "invalid", or "error").
func RecordLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// RecordRegistration increments the registration counter for a result.
func RecordRegistration(result string) {
	registrationsTotal.WithLabelValues(result).Inc()
}

// RecordTokenIssued increments the issued-token counter for a kind
// ("session" or "verification").
func RecordTokenIssued(kind string) {
	tokensIssuedTotal.WithLabelValues(kind).Inc()
}

// Register registers the package counters with the given registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(loginsTotal, registrationsTotal, tokensIssuedTotal)
}
