// Package exec provides a stub-friendly interface for running external commands.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Exit codes reported for runs that never produced a real process exit status.
const (
	ExitTimeout   = 124
	ExitCanceled  = 125
	ExitStartFail = 127
)

// waitDelay bounds how long Wait blocks on inherited pipes after the process is killed.
const waitDelay = 2 * time.Second

// CmdResult holds the result of a command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// RunOpts holds optional parameters for command execution.
type RunOpts struct {
	Dir     string            // working directory (optional)
	Env     map[string]string // extra environment variables (overlay)
	Timeout time.Duration     // zero means no deadline beyond ctx

	// Stdout and Stderr, when set, receive output as it is produced.
	// Output is captured into CmdResult either way.
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner is the interface for running external commands.
// Implementations must be safe for stubbing in tests.
type CommandRunner interface {
	// Run executes a command and returns the result.
	// A process that exits (even non-zero) or hits opts.Timeout yields a nil error.
	// Returns error only for execution failures (binary not found, ctx canceled, io failure).
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
}

// RealRunner is the production implementation of CommandRunner using os/exec.
type RealRunner struct {
	log *zap.Logger
}

// NewRealRunner creates a new RealRunner. A nil logger disables logging.
func NewRealRunner(log *zap.Logger) *RealRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &RealRunner{log: log}
}

// Run executes the command via RunScript and logs the outcome.
func (r *RealRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	r.log.Debug("exec start",
		zap.String("name", name),
		zap.Strings("args", args),
		zap.String("dir", opts.Dir),
		zap.Duration("timeout", opts.Timeout),
	)

	result, err := RunScript(ctx, name, args, opts)

	fields := []zap.Field{
		zap.String("name", name),
		zap.Int("exit_code", result.ExitCode),
		zap.Bool("timed_out", result.TimedOut),
		zap.Duration("duration", result.Duration),
	}
	if err != nil {
		r.log.Warn("exec failed", append(fields, zap.Error(err))...)
	} else {
		r.log.Debug("exec done", fields...)
	}
	return result, err
}

// RunScript runs a command with an optional timeout.
//
// Exit code mapping:
//   - process exited: its exit status, nil error
//   - opts.Timeout elapsed: ExitTimeout, TimedOut set, nil error
//   - ctx canceled: ExitCanceled, ctx.Err()
//   - process could not start: ExitStartFail, start error
func RunScript(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = teeWriter(&stdout, opts.Stdout)
	cmd.Stderr = teeWriter(&stderr, opts.Stderr)

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return CmdResult{ExitCode: ExitStartFail, Duration: time.Since(start)}, err
	}
	err := cmd.Wait()

	result := CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		result.ExitCode = 0
		return result, nil
	}
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Exited() {
		// Exited on its own; a grandchild kept the output pipes open.
		result.ExitCode = cmd.ProcessState.ExitCode()
		return result, nil
	}

	// Parent cancellation wins over our own deadline.
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
		result.ExitCode = ExitCanceled
		return result, ctxErr
	}
	if runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.ExitCode = ExitTimeout
		result.TimedOut = true
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}

func teeWriter(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
