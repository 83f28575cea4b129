// Package core holds the naming rules for day packages and command templates.
package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Day identifies one daily solution package. Year and Day are opaque tokens;
// "05" and "5" name different packages.
type Day struct {
	Year string
	Day  string
}

// DirName returns the package directory name, e.g. "day-05".
func (d Day) DirName() string {
	return "day-" + d.Day
}

// PackageName returns the generated package name, e.g. "aoc2024-day-05".
func (d Day) PackageName() string {
	return "aoc" + d.Year + "-day-" + d.Day
}

// RelDir returns the day directory relative to the workspace root.
func (d Day) RelDir() string {
	return filepath.Join(d.Year, d.DirName())
}

// YearDir returns the absolute year directory under root.
func (d Day) YearDir(root string) string {
	return filepath.Join(root, d.Year)
}

// DayDir returns the absolute day directory under root.
func (d Day) DayDir(root string) string {
	return filepath.Join(root, d.Year, d.DirName())
}

func (d Day) String() string {
	return d.Year + " day " + d.Day
}

// Validate checks that both tokens are usable as a single path component.
// Format is otherwise unchecked.
func (d Day) Validate() error {
	if err := ValidateToken("year", d.Year); err != nil {
		return err
	}
	return ValidateToken("day", d.Day)
}

// ValidateToken rejects values that are empty or could escape their
// directory when used as a path component.
func ValidateToken(name, v string) error {
	switch {
	case v == "":
		return fmt.Errorf("%s must not be empty", name)
	case v == "." || v == "..":
		return fmt.Errorf("%s must not be %q", name, v)
	case strings.ContainsAny(v, `/\`):
		return fmt.Errorf("%s must not contain path separators: %q", name, v)
	case strings.ContainsRune(v, 0):
		return fmt.Errorf("%s must not contain NUL", name)
	}
	return nil
}
