package scaffold

import (
	"github.com/NielsdaWheelz/advent/internal/core"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// RemoveResult reports what RemoveDay found.
type RemoveResult string

const (
	Removed RemoveResult = "removed"
	Absent  RemoveResult = "absent"
)

// RemoveDay recursively removes <root>/<year>/day-<day>. An absent directory
// is not an error. The year directory is never touched.
func RemoveDay(fsys fs.FS, root string, day core.Day) (RemoveResult, error) {
	dir := day.DayDir(root)
	_, statErr := fsys.Stat(dir)
	if err := fsys.RemoveAll(dir); err != nil {
		return "", err
	}
	if statErr != nil {
		return Absent, nil
	}
	return Removed, nil
}
