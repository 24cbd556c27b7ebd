package model

import "time"

// UpdateRequest is a user confirmation of a new code for a company.
type UpdateRequest struct {
	CompanyID   string  `json:"company_id"`
	OldCode     string  `json:"old_code,omitempty"`
	NewCode     string  `json:"new_code"`
	OldAccuracy float64 `json:"old_accuracy,omitempty"`
	NewAccuracy float64 `json:"new_accuracy"`
	Confidence  float64 `json:"confidence,omitempty"` // 0..1; defaults to NewAccuracy/100
	Actor       string  `json:"actor"`
}

// UpdateRecord is a persisted, user-confirmed code override. Exactly one
// record exists per company id; re-confirmation overwrites it.
type UpdateRecord struct {
	CompanyID   string    `json:"company_id"`
	OldCode     string    `json:"old_code,omitempty"`
	NewCode     string    `json:"new_code"`
	OldAccuracy float64   `json:"old_accuracy"`
	NewAccuracy float64   `json:"new_accuracy"`
	Confidence  float64   `json:"confidence"`
	UpdatedAt   time.Time `json:"updated_at"`
	Actor       string    `json:"actor"`
}

// ScoreRunStatus represents the state of a batch scoring run.
type ScoreRunStatus string

const (
	ScoreRunRunning  ScoreRunStatus = "running"
	ScoreRunComplete ScoreRunStatus = "complete"
)

// ScoreRun is an audit row for one batch accuracy computation.
type ScoreRun struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Total      int            `json:"total"`
	Scored     int            `json:"scored"`
	Status     ScoreRunStatus `json:"status"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}
