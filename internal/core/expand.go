package core

import (
	"strconv"
	"strings"
)

// Vars holds the values substituted into command templates.
type Vars struct {
	Root    string
	Day     Day
	Part    string
	Timeout int // seconds; zero leaves {{timeout}} empty
}

// Placeholders recognised by Expand.
const (
	PlaceholderYear    = "{{year}}"
	PlaceholderDay     = "{{day}}"
	PlaceholderPart    = "{{part}}"
	PlaceholderRoot    = "{{root}}"
	PlaceholderPackage = "{{package}}"
	PlaceholderDayDir  = "{{day_dir}}"
	PlaceholderTimeout = "{{timeout}}"
)

// Expand substitutes placeholders in every argv element. Substitution is
// textual and happens per element, so values containing spaces stay one argument.
func Expand(argv []string, v Vars) []string {
	timeout := ""
	if v.Timeout > 0 {
		timeout = strconv.Itoa(v.Timeout)
	}
	r := strings.NewReplacer(
		PlaceholderYear, v.Day.Year,
		PlaceholderDay, v.Day.Day,
		PlaceholderPart, v.Part,
		PlaceholderRoot, v.Root,
		PlaceholderPackage, v.Day.PackageName(),
		PlaceholderDayDir, v.Day.DayDir(v.Root),
		PlaceholderTimeout, timeout,
	)
	out := make([]string, len(argv))
	for i, a := range argv {
		out[i] = r.Replace(a)
	}
	return out
}
