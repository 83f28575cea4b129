package commands

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/exec"
)

// TaskOpts selects one forwarded task invocation.
type TaskOpts struct {
	Name    string
	Day     *core.Day // nil for workspace-wide tasks
	Part    string
	Release bool // appends --release (run only)
}

// List implements `advent list`: every configured command with its unexpanded argv.
func List(ctx context.Context, d Deps) error {
	ws, err := resolveWorkspace(d)
	if err != nil {
		return err
	}
	cfg := ws.Config

	fmt.Fprintf(d.Stdout, "create: %s\n", core.FormatArgv(cfg.Generator))
	fmt.Fprintf(d.Stdout, "fetch: %s\n", core.FormatArgv(cfg.Fetch.Command))
	for _, name := range config.TaskNames {
		fmt.Fprintf(d.Stdout, "%s: %s\n", name, core.FormatArgv(cfg.Tasks[name]))
	}
	return nil
}

// RunTask forwards one task to the build tool in the workspace root,
// streaming its output. A non-zero exit is E_COMMAND_FAILED.
func RunTask(ctx context.Context, d Deps, opts TaskOpts) error {
	vars := core.Vars{}
	if opts.Day != nil {
		if err := validateDay(*opts.Day); err != nil {
			return err
		}
		vars.Day = *opts.Day
	}
	if opts.Part != "" {
		if err := core.ValidateToken("part", opts.Part); err != nil {
			return errors.Wrap(errors.EUsage, err.Error(), err)
		}
		vars.Part = opts.Part
	}

	ws, err := resolveWorkspace(d)
	if err != nil {
		return err
	}
	template, ok := ws.Config.Tasks[opts.Name]
	if !ok {
		return errors.New(errors.EUsage, "unknown task: "+opts.Name)
	}

	vars.Root = ws.Root
	argv := core.Expand(template, vars)
	if opts.Release {
		argv = append(argv, "--release")
	}

	log := d.logger().With(zap.String("task", opts.Name))
	log.Debug("task start", zap.Strings("argv", argv), zap.String("dir", ws.Root))

	result, err := d.CR.Run(ctx, argv[0], argv[1:], exec.RunOpts{
		Dir:    ws.Root,
		Stdout: d.Stdout,
		Stderr: d.Stderr,
	})
	details := map[string]string{
		"task":      opts.Name,
		"argv":      core.FormatArgv(argv),
		"exit_code": strconv.Itoa(result.ExitCode),
	}
	if err != nil {
		return errors.WrapWithDetails(errors.ECommandFailed,
			fmt.Sprintf("%s: failed to run %s: %v", opts.Name, argv[0], err), err, details)
	}
	if result.ExitCode != 0 {
		return errors.NewWithDetails(errors.ECommandFailed,
			fmt.Sprintf("%s failed (exit %d): %s", opts.Name, result.ExitCode, core.FormatArgv(argv)), details)
	}

	log.Debug("task done", zap.Duration("duration", result.Duration))
	return nil
}
