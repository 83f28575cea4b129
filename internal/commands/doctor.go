package commands

import (
	"context"
	"fmt"
	"io"
	osexec "os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/advent/internal/config"
	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// DoctorReport holds all the data for doctor output.
type DoctorReport struct {
	Root         string
	ConfigSource string
	ConfigPath   string
	CacheDir     string
	Commands     []CommandCheck
}

// CommandCheck records whether one configured command's executable resolves.
type CommandCheck struct {
	Name       string
	Executable string
	Found      bool
}

// lookPath is swapped in tests.
var lookPath = osexec.LookPath

// Doctor implements `advent doctor`. The report is always printed; a missing
// generator or fetch executable then fails with E_TOOL_NOT_FOUND.
func Doctor(ctx context.Context, d Deps) error {
	ws, err := resolveWorkspace(d)
	if err != nil {
		return err
	}

	report := DoctorReport{
		Root:         ws.Root,
		ConfigSource: ws.Config.Source,
		ConfigPath:   ws.Config.Path,
		CacheDir:     d.CacheDir,
	}

	report.Commands = append(report.Commands,
		checkCommand(d.FS, ws.Root, "generator", ws.Config.Generator),
		checkCommand(d.FS, ws.Root, "fetch", ws.Config.Fetch.Command),
	)
	for _, name := range config.TaskNames {
		report.Commands = append(report.Commands, checkCommand(d.FS, ws.Root, name, ws.Config.Tasks[name]))
	}

	writeDoctorOutput(d.Stdout, report)

	var missing []string
	for _, c := range report.Commands[:2] {
		if !c.Found {
			missing = append(missing, c.Name+" ("+c.Executable+")")
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.EToolNotFound, "required executable not found: "+strings.Join(missing, ", "))
	}

	for _, c := range report.Commands[2:] {
		if !c.Found {
			d.logger().Warn("task executable not found", zap.String("task", c.Name), zap.String("executable", c.Executable))
		}
	}
	return nil
}

func checkCommand(fsys fs.FS, root, name string, argv []string) CommandCheck {
	c := CommandCheck{Name: name}
	if len(argv) == 0 {
		return c
	}
	c.Executable = argv[0]
	c.Found = executableExists(fsys, root, argv[0])
	return c
}

// executableExists resolves path-like names against root and bare names on PATH.
func executableExists(fsys fs.FS, root, name string) bool {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		absPath := name
		if !filepath.IsAbs(name) {
			absPath = filepath.Join(root, name)
		}
		info, err := fsys.Stat(absPath)
		if err != nil {
			return false
		}
		return !info.IsDir() && info.Mode().Perm()&0o111 != 0
	}
	_, err := lookPath(name)
	return err == nil
}

// writeDoctorOutput writes the stable key: value output.
func writeDoctorOutput(w io.Writer, r DoctorReport) {
	fmt.Fprintf(w, "root: %s\n", r.Root)
	fmt.Fprintf(w, "config_source: %s\n", r.ConfigSource)
	if r.ConfigPath != "" {
		fmt.Fprintf(w, "config_path: %s\n", r.ConfigPath)
	}
	fmt.Fprintf(w, "cache_dir: %s\n", r.CacheDir)

	for _, c := range r.Commands {
		fmt.Fprintf(w, "%s: %s (%s)\n", c.Name, foundStr(c.Found), c.Executable)
	}
}

func foundStr(b bool) string {
	if b {
		return "found"
	}
	return "missing"
}
