// Package cli builds the advent command tree and maps it onto internal/commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/commands"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/exec"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/lock"
	"github.com/NielsdaWheelz/advent/internal/logging"
	"github.com/NielsdaWheelz/advent/internal/paths"
	"github.com/NielsdaWheelz/advent/internal/version"
)

// app holds state shared by every subcommand of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	root    string
	verbose bool

	log *zap.Logger
}

// Run parses args, executes the selected command and returns its error.
// Errors that carry no advent code come from argument parsing and are
// reported as E_USAGE.
func Run(args []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	_ = a.log.Sync()
	if err == nil {
		return nil
	}
	if _, ok := errors.AsAdventError(err); ok {
		return err
	}
	return errors.Wrap(errors.EUsage, err.Error(), err)
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advent",
		Short: "advent - scaffold and run Advent of Code day packages",
		Long: `advent manages a multi-package Advent of Code workspace.

Day packages live at <root>/<year>/day-<day>. create generates one from the
template and fetches its puzzle input, removing it again if either step fails.
The remaining commands forward to the workspace's build tool as configured in
advent.yaml.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.log = logging.New(logging.Options{Verbose: a.verbose, Output: a.stderr})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errors.New(errors.EUsage, "no command given")
		},
	}
	cmd.SetVersionTemplate("advent {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(errors.EUsage, err.Error(), err)
	})

	cmd.PersistentFlags().StringVar(&a.root, "root", "", "workspace root (default: nearest directory with advent.yaml, else cwd)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log debug diagnostics to stderr")

	cmd.AddCommand(
		a.initCmd(),
		a.doctorCmd(),
		a.listCmd(),
		a.createCmd(),
		a.cleanupCmd(),
	)
	cmd.AddCommand(a.taskCmds()...)
	return cmd
}

// deps assembles the production dependencies for one command.
func (a *app) deps() (commands.Deps, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return commands.Deps{}, errors.Wrap(errors.EInternal, "failed to get working directory", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return commands.Deps{}, errors.Wrap(errors.EInternal, "failed to get home directory", err)
	}
	dirs := paths.ResolveDirs(paths.OSEnv{}, homeDir)

	return commands.Deps{
		CR:       exec.NewRealRunner(a.log.Named("exec")),
		FS:       fs.NewRealFS(),
		Locker:   lock.NewWorkspaceLock(dirs.LocksDir()),
		Log:      a.log,
		Stdout:   a.stdout,
		Stderr:   a.stderr,
		Cwd:      cwd,
		Root:     a.root,
		CacheDir: dirs.CacheDir,
	}, nil
}

// run wraps a command body with dependency construction.
func (a *app) run(fn func(ctx context.Context, d commands.Deps, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d, err := a.deps()
		if err != nil {
			return err
		}
		return fn(cmd.Context(), d, args)
	}
}

// exactArgs enforces positional arity with an E_USAGE error naming the expected arguments.
func exactArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == len(names) {
			return nil
		}
		if len(names) == 0 {
			return errors.New(errors.EUsage, fmt.Sprintf("%s takes no arguments, got %d", cmd.CommandPath(), len(args)))
		}
		return errors.New(errors.EUsage, fmt.Sprintf("%s requires %d arguments %v, got %d",
			cmd.CommandPath(), len(names), names, len(args)))
	}
}
