package site

import (
	"time"

	"github.com/google/uuid"
)

// BuildOutcome is the final classification of a build run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport aggregates per-stage outcomes and counters for one build run.
type BuildReport struct {
	BuildID         string
	StartedAt       time.Time
	Duration        time.Duration
	StageDurations  map[string]time.Duration
	StageErrorKinds map[string]string
	Errors          []error
	Warnings        []error

	Pages    int
	Assets   int
	SeatMaps int
}

// NewBuildReport creates an empty report with a fresh build ID.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		BuildID:         uuid.NewString(),
		StartedAt:       time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[string]string),
	}
}

// Outcome classifies the overall run.
func (r *BuildReport) Outcome() BuildOutcome {
	for _, err := range r.Errors {
		if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
			return OutcomeCanceled
		}
	}
	if len(r.Errors) > 0 {
		return OutcomeFailed
	}
	if len(r.Warnings) > 0 {
		return OutcomeWarning
	}
	return OutcomeSuccess
}
