package scaffold

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/exec"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/pipeline"
)

// FetchGrace is added to the configured fetch timeout before the process is
// killed, so the script gets the chance to enforce its own --timeout first.
const FetchGrace = 10 * time.Second

// Service is the production implementation of pipeline.ScaffoldService.
type Service struct {
	cr    exec.CommandRunner
	fsys  fs.FS
	cfg   config.Config
	out   io.Writer // subprocess output and rollback notices
	log   *zap.Logger
	grace time.Duration
}

// NewService wires a Service. out receives generator/fetch output and the
// rollback notice; it may be nil.
func NewService(cr exec.CommandRunner, fsys fs.FS, cfg config.Config, out io.Writer, log *zap.Logger) *Service {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cr: cr, fsys: fsys, cfg: cfg, out: out, log: log, grace: FetchGrace}
}

// SetFetchGrace overrides the kill grace period for testing.
func (s *Service) SetFetchGrace(d time.Duration) {
	s.grace = d
}

// PrepareYear refuses an existing day directory, then ensures the year directory exists.
func (s *Service) PrepareYear(ctx context.Context, st *pipeline.State) error {
	yearExisted, err := fs.DirExists(s.fsys, st.YearDir)
	if err != nil {
		return errors.WrapWithDetails(errors.EYearDirFailed,
			st.Day.Year+" exists and is not a directory", err,
			map[string]string{"year_dir": st.YearDir})
	}

	if yearExisted {
		exists, err := fs.DirExists(s.fsys, st.DayDir)
		if err != nil {
			return errors.WrapWithDetails(errors.EDayExists,
				st.Day.RelDir()+" exists and is not a directory", err,
				map[string]string{"day_dir": st.DayDir})
		}
		if exists {
			return errors.NewWithDetails(errors.EDayExists,
				st.Day.RelDir()+" already exists; run 'advent cleanup "+st.Day.Year+" "+st.Day.Day+"' to remove it",
				map[string]string{"day_dir": st.DayDir})
		}
	}

	if err := s.fsys.MkdirAll(st.YearDir, 0o755); err != nil {
		return errors.WrapWithDetails(errors.EYearDirFailed,
			"failed to create "+st.Day.Year, err,
			map[string]string{"year_dir": st.YearDir})
	}
	st.YearCreated = !yearExisted
	s.log.Debug("year dir ready", zap.String("year_dir", st.YearDir), zap.Bool("created", st.YearCreated))
	return nil
}

// Generate runs the generator command inside the year directory. No timeout applies.
func (s *Service) Generate(ctx context.Context, st *pipeline.State) error {
	argv := core.Expand(s.cfg.Generator, core.Vars{Root: st.Root, Day: st.Day})
	details := map[string]string{"argv": core.FormatArgv(argv), "dir": st.YearDir}

	result, err := s.cr.Run(ctx, argv[0], argv[1:], exec.RunOpts{
		Dir:    st.YearDir,
		Stdout: s.out,
		Stderr: s.out,
	})
	if err != nil {
		return errors.WrapWithDetails(errors.EGenerateFailed,
			"failed to run generator "+argv[0]+": "+err.Error(), err, details)
	}
	if result.ExitCode != 0 {
		details["exit_code"] = strconv.Itoa(result.ExitCode)
		return errors.NewWithDetails(errors.EGenerateFailed,
			fmt.Sprintf("generator exited with code %d for %s", result.ExitCode, st.Day), details)
	}

	exists, err := fs.DirExists(s.fsys, st.DayDir)
	if err != nil || !exists {
		return errors.NewWithDetails(errors.EGenerateFailed,
			"generator did not create "+st.Day.RelDir(), details)
	}
	st.Generated = true
	return nil
}

// FetchInput runs the input-fetch command from the workspace root.
func (s *Service) FetchInput(ctx context.Context, st *pipeline.State) error {
	timeout := s.cfg.Fetch.TimeoutSeconds
	argv := core.Expand(s.cfg.Fetch.Command, core.Vars{Root: st.Root, Day: st.Day, Timeout: timeout})
	details := map[string]string{"argv": core.FormatArgv(argv), "timeout_seconds": strconv.Itoa(timeout)}

	result, err := s.cr.Run(ctx, argv[0], argv[1:], exec.RunOpts{
		Dir:     st.Root,
		Timeout: time.Duration(timeout)*time.Second + s.grace,
		Stdout:  s.out,
		Stderr:  s.out,
	})
	if err != nil {
		return errors.WrapWithDetails(errors.EFetchFailed,
			"failed to run input fetch "+argv[0]+": "+err.Error(), err, details)
	}
	if result.TimedOut {
		return errors.NewWithDetails(errors.EFetchTimeout,
			fmt.Sprintf("input fetch for %s timed out after %ds", st.Day, timeout), details)
	}
	if result.ExitCode != 0 {
		details["exit_code"] = strconv.Itoa(result.ExitCode)
		return errors.NewWithDetails(errors.EFetchFailed,
			fmt.Sprintf("input fetch for %s exited with code %d", st.Day, result.ExitCode), details)
	}
	return nil
}

// Rollback tells the user which day failed and removes its directory.
func (s *Service) Rollback(ctx context.Context, st *pipeline.State, cause error) error {
	fmt.Fprintf(s.out, "%s failed for %s; cleaning up %s\n", stepVerb(st.FailedStep), st.Day, st.Day.RelDir())
	_, err := RemoveDay(s.fsys, st.Root, st.Day)
	return err
}

func stepVerb(step string) string {
	switch step {
	case pipeline.StepGenerate:
		return "generate"
	case pipeline.StepFetchInput:
		return "fetch"
	default:
		return step
	}
}
