package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
	"github.com/NielsdaWheelz/advent/internal/scaffold"
)

// InitOpts holds options for the init command.
type InitOpts struct {
	NoGitignore bool
	Force       bool
}

// InitResult holds the result of the init command for output formatting.
type InitResult struct {
	Root           string
	ConfigState    string // "created" or "overwritten"
	ScriptsCreated []string
	GitignoreState scaffold.GitignoreResult
}

// Init implements `advent init`: writes advent.yaml, the fetch script stub
// (if missing) and, by default, a .gitignore entry for puzzle inputs.
// The workspace is --root if given, else the current directory.
func Init(ctx context.Context, d Deps, opts InitOpts) error {
	root := d.Cwd
	if d.Root != "" {
		var err error
		if root, err = resolveRoot(d); err != nil {
			return err
		}
	}

	configPath := filepath.Join(root, config.FileName)
	_, err := d.FS.Stat(configPath)
	configExists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.EPersistFailed, "failed to check "+config.FileName, err)
	}
	if configExists && !opts.Force {
		return errors.New(errors.EConfigExists, config.FileName+" already exists; use --force to overwrite")
	}

	configState := "created"
	if configExists {
		configState = "overwritten"
	}

	if err := d.FS.MkdirAll(root, 0o755); err != nil {
		return errors.Wrap(errors.EPersistFailed, "failed to create "+root, err)
	}
	if err := fs.WriteFileAtomic(d.FS, configPath, []byte(scaffold.ConfigTemplate), 0o644); err != nil {
		return errors.Wrap(errors.EPersistFailed, "failed to write "+config.FileName, err)
	}

	stubs, err := scaffold.CreateStubs(d.FS, root)
	if err != nil {
		return errors.Wrap(errors.EPersistFailed, "failed to create stub scripts", err)
	}

	gitignoreState := scaffold.GitignoreSkipped
	if !opts.NoGitignore {
		gitignoreState, err = scaffold.EnsureGitignore(d.FS, filepath.Join(root, ".gitignore"))
		if err != nil {
			return errors.Wrap(errors.EPersistFailed, "failed to update .gitignore", err)
		}
	}

	writeInitOutput(d.Stdout, InitResult{
		Root:           root,
		ConfigState:    configState,
		ScriptsCreated: stubs.Created,
		GitignoreState: gitignoreState,
	})
	if opts.NoGitignore {
		fmt.Fprintln(d.Stdout, "warning: gitignore_skipped")
	}
	return nil
}

// writeInitOutput writes the stable key: value output for init.
func writeInitOutput(w io.Writer, r InitResult) {
	fmt.Fprintf(w, "root: %s\n", r.Root)
	fmt.Fprintf(w, "config: %s\n", r.ConfigState)

	scriptsCreated := "none"
	if len(r.ScriptsCreated) > 0 {
		scriptsCreated = strings.Join(r.ScriptsCreated, ", ")
	}
	fmt.Fprintf(w, "scripts_created: %s\n", scriptsCreated)
	fmt.Fprintf(w, "gitignore: %s\n", r.GitignoreState)
}
