package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/pipeline"
	"github.com/NielsdaWheelz/advent/internal/scaffold"
)

// Create implements `advent create <year> <day>`.
// On success the day package exists with generated content and fetched
// input; on any failure after generation starts it does not exist.
func Create(ctx context.Context, d Deps, day core.Day) error {
	if err := validateDay(day); err != nil {
		return err
	}
	ws, err := resolveWorkspace(d)
	if err != nil {
		return err
	}

	return withLock(ctx, d, ws.Root, "create "+day.Year+" "+day.Day, func(ctx context.Context) error {
		svc := scaffold.NewService(d.CR, d.FS, ws.Config, d.Stderr, d.logger())
		st, err := pipeline.NewPipeline(svc, d.logger()).Run(ctx, pipeline.CreateOpts{
			Root: ws.Root,
			Day:  day,
		})
		if err != nil {
			return err
		}
		writeCreateOutput(d.Stdout, st)
		return nil
	})
}

func writeCreateOutput(w io.Writer, st *pipeline.State) {
	fmt.Fprintf(w, "year: %s\n", st.Day.Year)
	fmt.Fprintf(w, "day: %s\n", st.Day.Day)
	fmt.Fprintf(w, "package: %s\n", st.Day.PackageName())
	fmt.Fprintf(w, "day_dir: %s\n", st.DayDir)
}

// Cleanup implements `advent cleanup <year> <day>`. Removing an absent day is not an error.
func Cleanup(ctx context.Context, d Deps, day core.Day) error {
	if err := validateDay(day); err != nil {
		return err
	}
	root, err := resolveRoot(d)
	if err != nil {
		return err
	}

	return withLock(ctx, d, root, "cleanup "+day.Year+" "+day.Day, func(ctx context.Context) error {
		res, err := scaffold.RemoveDay(d.FS, root, day)
		if err != nil {
			return errors.WrapWithDetails(errors.ECleanupFailed,
				"failed to remove "+day.RelDir()+": "+err.Error(), err,
				map[string]string{"day_dir": day.DayDir(root)})
		}
		fmt.Fprintf(d.Stdout, "day_dir: %s\n", day.DayDir(root))
		fmt.Fprintf(d.Stdout, "cleanup: %s\n", res)
		return nil
	})
}
