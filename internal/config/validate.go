package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// Validate checks the semantic rules for a loaded configuration.
// Returns E_INVALID_CONFIG on the first violation.
func Validate(cfg Config) error {
	if cfg.Version != CurrentVersion {
		return errors.New(errors.EInvalidConfig, fmt.Sprintf("version must be %d", CurrentVersion))
	}

	if err := validateCommand("generator.command", cfg.Generator); err != nil {
		return err
	}
	if err := validateCommand("fetch.command", cfg.Fetch.Command); err != nil {
		return err
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		return errors.New(errors.EInvalidConfig, "fetch.timeout_seconds must be a positive integer")
	}

	known := make(map[string]bool, len(TaskNames))
	for _, name := range TaskNames {
		known[name] = true
	}
	names := make([]string, 0, len(cfg.Tasks))
	for name := range cfg.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !known[name] {
			return errors.New(errors.EInvalidConfig,
				fmt.Sprintf("unknown task %q (known: %s)", name, strings.Join(TaskNames, ", ")))
		}
		if err := validateCommand("tasks."+name, cfg.Tasks[name]); err != nil {
			return err
		}
	}
	for _, name := range TaskNames {
		if _, ok := cfg.Tasks[name]; !ok {
			return errors.New(errors.EInvalidConfig, "missing task "+name)
		}
	}
	return nil
}

func validateCommand(field string, argv []string) error {
	if len(argv) == 0 {
		return errors.New(errors.EInvalidConfig, field+" must be a non-empty list")
	}
	if strings.TrimSpace(argv[0]) == "" {
		return errors.New(errors.EInvalidConfig, field+"[0] must name an executable")
	}
	return nil
}

// LoadAndValidate loads advent.yaml from root (or defaults) and validates it.
func LoadAndValidate(fsys fs.FS, root string) (Config, error) {
	cfg, err := Load(fsys, root)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
