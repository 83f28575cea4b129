package fs

import (
	"os"
	"path/filepath"
)

const atomicTempPattern = ".advent-tmp-*"

type syncer interface {
	Sync() error
}

// WriteFileAtomic replaces path with data via a temp file in the same
// directory followed by rename. On failure the previous content of path is
// untouched and the temp file is removed. The parent directory must exist.
func WriteFileAtomic(fsys FS, path string, data []byte, perm os.FileMode) (err error) {
	tmpPath, w, err := fsys.CreateTemp(filepath.Dir(path), atomicTempPattern)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err = w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	if s, ok := w.(syncer); ok {
		if err = s.Sync(); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err = w.Close(); err != nil {
		return err
	}
	if err = fsys.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return fsys.Rename(tmpPath, path)
}
