package models

import "github.com/google/uuid"

// Group is a tutoring cohort with a pricing plan. SessionsPerMonth is both
// the number of sessions one billing cycle covers and the debt threshold: a
// student owing that many sessions is due for payment.
type Group struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	MonthlyPrice     float64 `json:"monthlyPrice"`
	SessionsPerMonth int     `json:"sessionsPerMonth"`
	TeacherSessions  int     `json:"teacherSessions,omitempty"`
}

// NewID returns a fresh opaque entity identifier. Uniqueness is the only
// contract callers may rely on.
func NewID() string {
	return uuid.NewString()
}
