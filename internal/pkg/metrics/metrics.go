// Package metrics holds the prometheus collectors of the workflow engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification outcomes
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

var (
	// Transitions counts committed state transitions per entity
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petfind_transitions_total",
		Help: "Committed state transitions by entity and transition.",
	}, []string{"entity", "transition"})

	// Notifications counts delivery attempts per template and outcome
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petfind_notifications_total",
		Help: "Notification delivery attempts by template and outcome.",
	}, []string{"template", "outcome"})

	// OtpValidations counts one-time code validations per outcome
	OtpValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petfind_otp_validations_total",
		Help: "One-time code validations by outcome.",
	}, []string{"outcome"})
)

// Transition records a committed transition
func Transition(entity, transition string) {
	Transitions.WithLabelValues(entity, transition).Inc()
}

// Notification records a delivery attempt
func Notification(template, outcome string) {
	Notifications.WithLabelValues(template, outcome).Inc()
}

// OtpValidation records a validation outcome
func OtpValidation(outcome string) {
	OtpValidations.WithLabelValues(outcome).Inc()
}
