// Package config handles loading and validation of advent.yaml workspace configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// FileName is the workspace configuration file looked up at the workspace root.
const FileName = "advent.yaml"

// CurrentVersion is the only accepted config version.
const CurrentVersion = 1

// DefaultFetchTimeoutSeconds bounds the input-fetch step.
const DefaultFetchTimeoutSeconds = 60

// Task names forwarded to the build tool.
const (
	TaskCheck   = "check"
	TaskFix     = "fix"
	TaskTest    = "test"
	TaskRun     = "run"
	TaskBench   = "bench"
	TaskProfile = "profile"
)

// TaskNames lists every configurable task in display order.
var TaskNames = []string{TaskCheck, TaskFix, TaskTest, TaskRun, TaskBench, TaskProfile}

// Source values for Config.Source.
const (
	SourceFile     = "file"
	SourceDefaults = "defaults"
)

// Config is the resolved workspace configuration.
type Config struct {
	Version   int
	Generator []string
	Fetch     FetchConfig
	Tasks     map[string][]string

	// Derived (not from YAML):
	Source string // SourceFile or SourceDefaults
	Path   string // absolute path of advent.yaml, empty for defaults
}

// FetchConfig describes the input-fetch command.
type FetchConfig struct {
	Command        []string
	TimeoutSeconds int
}

// fileConfig mirrors advent.yaml. Pointer/nil fields mark absent keys.
type fileConfig struct {
	Version   *int                `yaml:"version"`
	Generator *fileCommand        `yaml:"generator"`
	Fetch     *fileFetch          `yaml:"fetch"`
	Tasks     map[string][]string `yaml:"tasks"`
}

type fileCommand struct {
	Command []string `yaml:"command"`
}

type fileFetch struct {
	Command        []string `yaml:"command"`
	TimeoutSeconds *int     `yaml:"timeout_seconds"`
}

// Default returns the built-in configuration used when advent.yaml is absent.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Generator: []string{
			"cargo", "generate",
			"--path", "../daily-template",
			"--name", "day-{{day}}",
			"--define", "year={{year}}",
			"--define", "day={{day}}",
		},
		Fetch: FetchConfig{
			Command: []string{
				"./scripts/get-aoc-input.sh", "{{year}}", "day-{{day}}",
				"--cwd", "{{root}}",
				"--timeout", "{{timeout}}",
			},
			TimeoutSeconds: DefaultFetchTimeoutSeconds,
		},
		Tasks:  DefaultTasks(),
		Source: SourceDefaults,
	}
}

// DefaultTasks returns the built-in task commands.
func DefaultTasks() map[string][]string {
	return map[string][]string{
		TaskCheck:   {"cargo", "clippy", "--workspace", "--all-targets"},
		TaskFix:     {"cargo", "clippy", "--workspace", "--all-targets", "--fix", "--allow-dirty", "--allow-staged"},
		TaskTest:    {"cargo", "nextest", "run", "-p", "{{package}}"},
		TaskRun:     {"cargo", "run", "-p", "{{package}}", "--bin", "part{{part}}"},
		TaskBench:   {"cargo", "bench", "-p", "{{package}}"},
		TaskProfile: {"cargo", "flamegraph", "--profile", "flamegraph", "--root", "-p", "{{package}}", "--bin", "part{{part}}", "-o", "flamegraphs/{{year}}-day-{{day}}-part{{part}}.svg"},
	}
}

// Load reads advent.yaml from root. A missing file yields Default().
// Returns E_INVALID_CONFIG if the file cannot be parsed.
// Does NOT perform semantic validation; call Validate for that.
func Load(fsys fs.FS, root string) (Config, error) {
	path := filepath.Join(root, FileName)

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.EInvalidConfig, "failed to read "+FileName, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Source = SourceFile
	cfg.Path = path
	return cfg, nil
}

// Parse decodes advent.yaml content, filling absent sections from Default().
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if err == io.EOF {
			return Config{}, errors.New(errors.EInvalidConfig, FileName+" is empty")
		}
		return Config{}, errors.Wrap(errors.EInvalidConfig, "invalid yaml: "+err.Error(), err)
	}

	cfg := Default()
	cfg.Version = 0
	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	if fc.Generator != nil {
		cfg.Generator = fc.Generator.Command
	}
	if fc.Fetch != nil {
		if fc.Fetch.Command != nil {
			cfg.Fetch.Command = fc.Fetch.Command
		}
		if fc.Fetch.TimeoutSeconds != nil {
			cfg.Fetch.TimeoutSeconds = *fc.Fetch.TimeoutSeconds
		}
	}
	for name, argv := range fc.Tasks {
		cfg.Tasks[name] = argv
	}
	return cfg, nil
}

// FindRoot walks up from start looking for advent.yaml and returns the
// directory holding it. If none is found, start itself is returned with found=false.
func FindRoot(fsys fs.FS, start string) (root string, found bool, err error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false, errors.Wrap(errors.EInternal, "failed to resolve working directory", err)
	}

	cur := filepath.Clean(abs)
	for {
		if _, err := fsys.Stat(filepath.Join(cur, FileName)); err == nil {
			return cur, true, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return filepath.Clean(abs), false, nil
		}
		cur = parent
	}
}
