package db

import "time"

// Run statuses.
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Run represents a row in the runs table: one assembly attempt and its
// outcome.
type Run struct {
	ID           int64
	CreatedAt    time.Time
	Recording    string
	StartSeconds float64
	EndSeconds   float64
	Intro        string
	Outro        string
	Strategy     string
	OutputPath   string
	ElapsedMS    int64
	Status       string
	Error        string
}
