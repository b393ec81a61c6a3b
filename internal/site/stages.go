package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelier-theatral/sitectl/internal/logfields"
	"github.com/atelier-theatral/sitectl/internal/metrics"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// namedStage pairs a stage with its report name.
type namedStage struct {
	name string
	fn   Stage
}

// runStages executes stages in order, recording timing and stopping on first
// fatal error. Warnings are recorded and the run continues.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.recordStage(st.name, se, bs.Generator.recorder)
			return se
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.name] = dur
		bs.Generator.recorder.ObserveStageDuration(st.name, dur)
		slog.Debug("Stage finished", logfields.Stage(st.name), logfields.DurationMS(float64(dur.Milliseconds())), logfields.Error(err))

		if err == nil {
			bs.Report.recordStage(st.name, nil, bs.Generator.recorder)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.name, err)
		}
		bs.Report.recordStage(st.name, se, bs.Generator.recorder)

		switch se.Kind {
		case StageErrorWarning:
			continue
		default:
			return se
		}
	}
	return nil
}

// recordStage updates report counters and emits metrics for a stage outcome.
func (r *BuildReport) recordStage(stage string, se *StageError, recorder metrics.Recorder) {
	if se == nil {
		recorder.IncStageResult(stage, metrics.ResultSuccess)
		return
	}
	r.StageErrorKinds[stage] = string(se.Kind)
	switch se.Kind {
	case StageErrorWarning:
		r.Warnings = append(r.Warnings, se)
		recorder.IncStageResult(stage, metrics.ResultWarning)
	case StageErrorCanceled:
		r.Errors = append(r.Errors, se)
		recorder.IncStageResult(stage, metrics.ResultCanceled)
	default:
		r.Errors = append(r.Errors, se)
		recorder.IncStageResult(stage, metrics.ResultFatal)
	}
}
