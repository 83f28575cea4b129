// Package pipeline orchestrates the create workflow for a day package.
// Steps run in a fixed order, short-circuit on the first error, and preserve
// AdventError codes. A failure after the day directory may exist triggers the
// service's compensating Rollback before the error is returned.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
)

// Step name constants.
const (
	StepPrepareYear = "PrepareYear"
	StepGenerate    = "Generate"
	StepFetchInput  = "FetchInput"
	StepRollback    = "Rollback"
)

// CreateOpts contains the inputs for one create run.
type CreateOpts struct {
	Root string // absolute workspace root
	Day  core.Day
}

// State accumulates facts during a create run.
type State struct {
	Root    string
	Day     core.Day
	YearDir string
	DayDir  string

	// Populated by PrepareYear
	YearCreated bool

	// Populated by Generate
	Generated bool

	// Set before Rollback is invoked
	FailedStep string
}

// ScaffoldService supplies the step implementations.
// Implementations are injected so the order and rollback rules can be tested
// without running external commands.
type ScaffoldService interface {
	// PrepareYear refuses an existing day directory and ensures the year directory exists.
	PrepareYear(ctx context.Context, st *State) error

	// Generate runs the package generator inside the year directory.
	Generate(ctx context.Context, st *State) error

	// FetchInput runs the input-fetch command with its timeout.
	FetchInput(ctx context.Context, st *State) error

	// Rollback removes the day directory. cause is the step error being compensated.
	Rollback(ctx context.Context, st *State, cause error) error
}

// Pipeline runs the create steps against a ScaffoldService.
type Pipeline struct {
	svc ScaffoldService
	log *zap.Logger
}

// NewPipeline creates a pipeline. A nil logger disables logging.
func NewPipeline(svc ScaffoldService, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{svc: svc, log: log}
}

// Run executes:
//  1. PrepareYear
//  2. Generate   (rollback on failure)
//  3. FetchInput (rollback on failure)
//
// Errors that are not *AdventError are wrapped as E_INTERNAL with the step
// name in details. If Rollback itself fails the result is E_ROLLBACK_FAILED,
// with the failed step and the original error code in details.
// The returned State is never nil.
func (p *Pipeline) Run(ctx context.Context, opts CreateOpts) (*State, error) {
	st := &State{
		Root:    opts.Root,
		Day:     opts.Day,
		YearDir: opts.Day.YearDir(opts.Root),
		DayDir:  opts.Day.DayDir(opts.Root),
	}
	log := p.log.With(zap.String("year", st.Day.Year), zap.String("day", st.Day.Day))

	log.Debug("step start", zap.String("step", StepPrepareYear))
	if err := p.svc.PrepareYear(ctx, st); err != nil {
		return st, wrapStepError(err, StepPrepareYear)
	}

	log.Debug("step start", zap.String("step", StepGenerate))
	if err := p.svc.Generate(ctx, st); err != nil {
		return st, p.rollback(ctx, log, st, StepGenerate, err)
	}

	log.Debug("step start", zap.String("step", StepFetchInput))
	if err := p.svc.FetchInput(ctx, st); err != nil {
		return st, p.rollback(ctx, log, st, StepFetchInput, err)
	}

	log.Debug("create complete", zap.String("day_dir", st.DayDir))
	return st, nil
}

func (p *Pipeline) rollback(ctx context.Context, log *zap.Logger, st *State, step string, cause error) error {
	cause = wrapStepError(cause, step)
	st.FailedStep = step

	log.Warn("step failed, rolling back",
		zap.String("step", step),
		zap.String("day_dir", st.DayDir),
		zap.Error(cause),
	)

	if err := p.svc.Rollback(ctx, st, cause); err != nil {
		log.Error("rollback failed", zap.String("day_dir", st.DayDir), zap.Error(err))
		return errors.WrapWithDetails(
			errors.ERollbackFailed,
			"failed to remove "+st.Day.RelDir()+" after "+step+" failed: "+err.Error(),
			err,
			map[string]string{
				"step":       step,
				"day_dir":    st.DayDir,
				"cause_code": string(errors.GetCode(cause)),
			},
		)
	}
	return cause
}

// wrapStepError returns *AdventError values unchanged and wraps anything
// else as E_INTERNAL with the step name in details.
func wrapStepError(err error, stepName string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAdventError(err); ok {
		return err
	}
	return errors.WrapWithDetails(
		errors.EInternal,
		"internal error",
		err,
		map[string]string{"step": stepName},
	)
}
