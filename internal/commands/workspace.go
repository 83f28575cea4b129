// Package commands implements advent CLI commands.
package commands

import (
	"context"
	stderrors "errors"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/exec"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/lock"
)

// Locker hands out the per-workspace lock; lock.WorkspaceLock implements it.
type Locker interface {
	Lock(root, cmd string) (unlock func() error, err error)
}

// Deps carries everything a command needs. Tests substitute each field.
type Deps struct {
	CR     exec.CommandRunner
	FS     fs.FS
	Locker Locker // nil disables locking
	Log    *zap.Logger
	Stdout io.Writer
	Stderr io.Writer

	Cwd      string // absolute working directory
	Root     string // --root override; empty means search from Cwd
	CacheDir string // reported by doctor; locks live beneath it
}

// Workspace is a resolved root plus its validated configuration.
type Workspace struct {
	Root   string
	Config config.Config
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// resolveWorkspace finds the root (--root, else nearest advent.yaml, else cwd)
// and loads its configuration.
func resolveWorkspace(d Deps) (Workspace, error) {
	root, err := resolveRoot(d)
	if err != nil {
		return Workspace{}, err
	}
	cfg, err := config.LoadAndValidate(d.FS, root)
	if err != nil {
		return Workspace{}, err
	}
	d.logger().Debug("workspace resolved",
		zap.String("root", root),
		zap.String("config_source", cfg.Source),
	)
	return Workspace{Root: root, Config: cfg}, nil
}

func resolveRoot(d Deps) (string, error) {
	if d.Root != "" {
		root, err := filepath.Abs(d.Root)
		if err != nil {
			return "", errors.Wrap(errors.EUsage, "invalid --root", err)
		}
		return root, nil
	}
	root, _, err := config.FindRoot(d.FS, d.Cwd)
	return root, err
}

// withLock runs fn while holding the workspace lock.
func withLock(ctx context.Context, d Deps, root, cmd string, fn func(context.Context) error) (err error) {
	if d.Locker == nil {
		return fn(ctx)
	}
	unlock, err := d.Locker.Lock(root, cmd)
	if err != nil {
		var locked *lock.ErrLocked
		if stderrors.As(err, &locked) {
			return errors.Wrap(errors.ELocked, locked.Error(), err)
		}
		return errors.Wrap(errors.EInternal, "failed to acquire workspace lock", err)
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			d.logger().Warn("failed to release workspace lock", zap.Error(uerr))
		}
	}()
	return fn(ctx)
}

func validateDay(day core.Day) error {
	if err := day.Validate(); err != nil {
		return errors.Wrap(errors.EUsage, err.Error(), err)
	}
	return nil
}
