package config

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NielsdaWheelz/advent/internal/errors"
	"github.com/NielsdaWheelz/advent/internal/fs"
)

// stubFS serves ReadFile from memory; other methods are inert.
type stubFS struct {
	files map[string][]byte
}

func newStubFS() *stubFS {
	return &stubFS{files: make(map[string][]byte)}
}

func (s *stubFS) ReadFile(path string) ([]byte, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (s *stubFS) MkdirAll(path string, perm os.FileMode) error         { return nil }
func (s *stubFS) WriteFile(path string, d []byte, p os.FileMode) error { return nil }
func (s *stubFS) Stat(path string) (iofs.FileInfo, error)              { return nil, os.ErrNotExist }
func (s *stubFS) Rename(o, n string) error                             { return nil }
func (s *stubFS) Remove(path string) error                             { return nil }
func (s *stubFS) RemoveAll(path string) error                          { return nil }
func (s *stubFS) Chmod(path string, perm os.FileMode) error            { return nil }
func (s *stubFS) CreateTemp(dir, pattern string) (string, io.WriteCloser, error) {
	return "", nil, nil
}

var _ fs.FS = (*stubFS)(nil)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(newStubFS(), "/ws")
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, SourceDefaults, cfg.Source)
	assert.Empty(t, cfg.Path)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_FileOverridesSections(t *testing.T) {
	fsys := newStubFS()
	fsys.files[filepath.Join("/ws", FileName)] = []byte(`
version: 1
generator:
  command: [gen, "{{year}}", "{{day}}"]
fetch:
  timeout_seconds: 5
tasks:
  test: [go, test, "./{{year}}/day-{{day}}/..."]
`)

	cfg, err := Load(fsys, "/ws")
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, SourceFile, cfg.Source)
	assert.Equal(t, filepath.Join("/ws", FileName), cfg.Path)
	assert.Equal(t, []string{"gen", "{{year}}", "{{day}}"}, cfg.Generator)
	assert.Equal(t, Default().Fetch.Command, cfg.Fetch.Command, "fetch.command falls back to default")
	assert.Equal(t, 5, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, []string{"go", "test", "./{{year}}/day-{{day}}/..."}, cfg.Tasks[TaskTest])
	assert.Equal(t, DefaultTasks()[TaskBench], cfg.Tasks[TaskBench], "unlisted tasks keep defaults")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"not yaml", "version: [1"},
		{"unknown top-level key", "version: 1\nbogus: true\n"},
		{"unknown fetch key", "version: 1\nfetch:\n  retries: 3\n"},
		{"wrong type", "version: one\n"},
		{"command not a list", "version: 1\ngenerator:\n  command: cargo generate\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newStubFS()
			fsys.files[filepath.Join("/ws", FileName)] = []byte(tt.content)

			_, err := Load(fsys, "/ws")
			require.Error(t, err)
			assert.Equal(t, errors.EInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"ok", func(*Config) {}, ""},
		{"version", func(c *Config) { c.Version = 2 }, "version must be 1"},
		{"missing version", func(c *Config) { c.Version = 0 }, "version must be 1"},
		{"empty generator", func(c *Config) { c.Generator = nil }, "generator.command must be a non-empty list"},
		{"blank generator exe", func(c *Config) { c.Generator = []string{" "} }, "generator.command[0] must name an executable"},
		{"empty fetch", func(c *Config) { c.Fetch.Command = []string{} }, "fetch.command must be a non-empty list"},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }, "fetch.timeout_seconds must be a positive integer"},
		{"negative timeout", func(c *Config) { c.Fetch.TimeoutSeconds = -1 }, "fetch.timeout_seconds must be a positive integer"},
		{"unknown task", func(c *Config) { c.Tasks["deploy"] = []string{"x"} }, `unknown task "deploy"`},
		{"empty task", func(c *Config) { c.Tasks[TaskBench] = nil }, "tasks.bench must be a non-empty list"},
		{"missing task", func(c *Config) { delete(c.Tasks, TaskProfile) }, "missing task profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.EInvalidConfig, errors.GetCode(err))
			ae, _ := errors.AsAdventError(err)
			assert.Contains(t, ae.Msg, tt.wantMsg)
		})
	}
}

func TestLoadAndValidate_InvalidVersion(t *testing.T) {
	fsys := newStubFS()
	fsys.files[filepath.Join("/ws", FileName)] = []byte("version: 3\n")

	_, err := LoadAndValidate(fsys, "/ws")
	assert.Equal(t, errors.EInvalidConfig, errors.GetCode(err))
}

func TestDefault_ReturnsFreshMaps(t *testing.T) {
	a := Default()
	a.Tasks[TaskTest][0] = "mutated"
	a.Tasks[TaskRun] = nil

	b := Default()
	assert.Equal(t, "cargo", b.Tasks[TaskTest][0])
	assert.NotNil(t, b.Tasks[TaskRun])
}

func TestFindRoot(t *testing.T) {
	realFS := fs.NewRealFS()

	t.Run("found in ancestor", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("version: 1\n"), 0o644))
		nested := filepath.Join(root, "2024", "day-05", "src")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		got, found, err := FindRoot(realFS, nested)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, root, got)
	})

	t.Run("not found falls back to start", func(t *testing.T) {
		start := t.TempDir()

		got, found, err := FindRoot(realFS, start)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, start, got)
	})
}
