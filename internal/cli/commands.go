package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/advent/internal/commands"
	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/core"
)

func (a *app) initCmd() *cobra.Command {
	var opts commands.InitOpts

	c := &cobra.Command{
		Use:   "init",
		Short: "Write advent.yaml, the input-fetch stub and a .gitignore entry",
		Args:  exactArgs(),
		RunE: a.run(func(ctx context.Context, d commands.Deps, _ []string) error {
			return commands.Init(ctx, d, opts)
		}),
	}
	c.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing advent.yaml")
	c.Flags().BoolVar(&opts.NoGitignore, "no-gitignore", false, "do not modify .gitignore")
	return c
}

func (a *app) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Show resolved paths and check that configured commands resolve",
		Args:  exactArgs(),
		RunE: a.run(func(ctx context.Context, d commands.Deps, _ []string) error {
			return commands.Doctor(ctx, d)
		}),
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every configured command",
		Args:  exactArgs(),
		RunE: a.run(func(ctx context.Context, d commands.Deps, _ []string) error {
			return commands.List(ctx, d)
		}),
	}
}

func (a *app) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <year> <day>",
		Short: "Generate a day package and fetch its input; roll back on failure",
		Args:  exactArgs("year", "day"),
		RunE: a.run(func(ctx context.Context, d commands.Deps, args []string) error {
			return commands.Create(ctx, d, core.Day{Year: args[0], Day: args[1]})
		}),
	}
}

func (a *app) cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup <year> <day>",
		Short: "Remove a day package",
		Args:  exactArgs("year", "day"),
		RunE: a.run(func(ctx context.Context, d commands.Deps, args []string) error {
			return commands.Cleanup(ctx, d, core.Day{Year: args[0], Day: args[1]})
		}),
	}
}

// taskDef describes one forwarded task's positional arguments.
type taskDef struct {
	name  string
	short string
	args  []string // subset of year, day, part in that order
}

var taskDefs = []taskDef{
	{config.TaskCheck, "Lint the whole workspace", nil},
	{config.TaskFix, "Apply lint fixes across the workspace", nil},
	{config.TaskTest, "Test one day package", []string{"year", "day"}},
	{config.TaskRun, "Run one part of a day package", []string{"year", "day", "part"}},
	{config.TaskBench, "Benchmark one day package", []string{"year", "day"}},
	{config.TaskProfile, "Profile one part of a day package into a flamegraph", []string{"year", "day", "part"}},
}

func (a *app) taskCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(taskDefs))
	for _, def := range taskDefs {
		cmds = append(cmds, a.taskCmd(def))
	}
	return cmds
}

func (a *app) taskCmd(def taskDef) *cobra.Command {
	var release bool

	use := def.name
	for _, arg := range def.args {
		use += " <" + arg + ">"
	}

	c := &cobra.Command{
		Use:   use,
		Short: def.short,
		Args:  exactArgs(def.args...),
		RunE: a.run(func(ctx context.Context, d commands.Deps, args []string) error {
			opts := commands.TaskOpts{Name: def.name, Release: release}
			if len(args) >= 2 {
				opts.Day = &core.Day{Year: args[0], Day: args[1]}
			}
			if len(args) == 3 {
				opts.Part = args[2]
			}
			return commands.RunTask(ctx, d, opts)
		}),
	}
	if def.name == config.TaskRun {
		c.Flags().BoolVar(&release, "release", false, "build with optimizations")
	}
	return c
}
