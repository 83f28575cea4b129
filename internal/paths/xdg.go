// Package paths resolves advent's per-user directories following XDG conventions.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "advent"

// Env is the interface for environment variable lookups.
// Implementations must return "" for unset variables.
type Env interface {
	Get(key string) string
}

// OSEnv implements Env using os.Getenv.
type OSEnv struct{}

func (OSEnv) Get(key string) string {
	return os.Getenv(key)
}

// Dirs holds the resolved per-user directories.
type Dirs struct {
	CacheDir string
}

// LocksDir returns the directory holding workspace lock files.
func (d Dirs) LocksDir() string {
	return filepath.Join(d.CacheDir, "locks")
}

// ResolveDirs computes advent's directories for the current OS.
//
// Cache directory resolution order:
//  1. ADVENT_CACHE_DIR (if set)
//  2. macOS: ~/Library/Caches/advent
//  3. XDG_CACHE_HOME/advent (if set)
//  4. ~/.cache/advent
//
// homeDir must be absolute. Nothing is created on disk.
// ~ inside env vars is taken literally.
func ResolveDirs(env Env, homeDir string) Dirs {
	return ResolveDirsWithOS(env, homeDir, runtime.GOOS == "darwin")
}

// ResolveDirsWithOS is like ResolveDirs but accepts an explicit OS flag for testing.
func ResolveDirsWithOS(env Env, homeDir string, isDarwin bool) Dirs {
	return Dirs{CacheDir: resolveCacheDir(env, homeDir, isDarwin)}
}

func resolveCacheDir(env Env, homeDir string, isDarwin bool) string {
	if v := env.Get("ADVENT_CACHE_DIR"); v != "" {
		return v
	}
	if isDarwin {
		return filepath.Join(homeDir, "Library", "Caches", appName)
	}
	if v := env.Get("XDG_CACHE_HOME"); v != "" {
		return filepath.Join(v, appName)
	}
	return filepath.Join(homeDir, ".cache", appName)
}
