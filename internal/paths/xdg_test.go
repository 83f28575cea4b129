package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapEnv map[string]string

func (m mapEnv) Get(key string) string {
	return m[key]
}

func TestResolveDirs_CacheDir(t *testing.T) {
	home := filepath.FromSlash("/home/testuser")

	tests := []struct {
		name     string
		env      mapEnv
		isDarwin bool
		want     string
	}{
		{"override (darwin)", mapEnv{"ADVENT_CACHE_DIR": "/custom/cache"}, true, "/custom/cache"},
		{"override (linux)", mapEnv{"ADVENT_CACHE_DIR": "/custom/cache"}, false, "/custom/cache"},
		{"darwin default", mapEnv{}, true, filepath.FromSlash("/home/testuser/Library/Caches/advent")},
		{"XDG_CACHE_HOME (linux)", mapEnv{"XDG_CACHE_HOME": "/xdg/cache"}, false, filepath.FromSlash("/xdg/cache/advent")},
		{"default (linux)", mapEnv{}, false, filepath.FromSlash("/home/testuser/.cache/advent")},
		{"override beats XDG", mapEnv{"ADVENT_CACHE_DIR": "/o", "XDG_CACHE_HOME": "/xdg/cache"}, false, "/o"},
		{"darwin ignores XDG", mapEnv{"XDG_CACHE_HOME": "/xdg/cache"}, true, filepath.FromSlash("/home/testuser/Library/Caches/advent")},
		{"tilde is literal", mapEnv{"ADVENT_CACHE_DIR": "~/cache"}, false, "~/cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDirsWithOS(tt.env, home, tt.isDarwin).CacheDir)
		})
	}
}

func TestDirs_LocksDir(t *testing.T) {
	d := Dirs{CacheDir: filepath.FromSlash("/c/advent")}
	assert.Equal(t, filepath.FromSlash("/c/advent/locks"), d.LocksDir())
}

func TestOSEnv(t *testing.T) {
	t.Setenv("ADVENT_CACHE_DIR", "/from/env")
	assert.Equal(t, "/from/env", ResolveDirs(OSEnv{}, "/home/x").CacheDir)
}
