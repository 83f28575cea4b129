package scaffold

import (
	"os"
	"path/filepath"

	"github.com/NielsdaWheelz/advent/internal/fs"
)

// StubScript represents a stub script to create.
type StubScript struct {
	RelPath string // relative to the workspace root
	Content string
}

// FetchInputStub downloads one day's input with the AOC_SESSION cookie.
// Contract: <year> <day-dir> --cwd <root> --timeout <seconds>; writes
// <root>/<year>/<day-dir>/input.txt; non-zero exit on any failure.
const FetchInputStub = `#!/usr/bin/env bash
set -euo pipefail

year="$1"
pkg="$2"
shift 2

cwd="."
timeout=60
while [ $# -gt 0 ]; do
  case "$1" in
    --cwd) cwd="$2"; shift 2 ;;
    --timeout) timeout="$2"; shift 2 ;;
    *) echo "unknown option: $1" >&2; exit 2 ;;
  esac
done

: "${AOC_SESSION:?set AOC_SESSION to your adventofcode.com session cookie}"

day="$((10#${pkg#day-}))"
curl --fail --silent --show-error \
  --max-time "$timeout" \
  --cookie "session=${AOC_SESSION}" \
  --output "${cwd}/${year}/${pkg}/input.txt" \
  "https://adventofcode.com/${year}/day/${day}/input"
`

// DefaultStubs returns the scripts `advent init` creates when missing.
func DefaultStubs() []StubScript {
	return []StubScript{
		{RelPath: "scripts/get-aoc-input.sh", Content: FetchInputStub},
	}
}

// CreateStubsResult holds the result of stub creation.
type CreateStubsResult struct {
	Created []string // relative paths of scripts that were created
	Skipped []string // relative paths of scripts that already existed
}

// CreateStubs creates stub scripts under root if they don't exist.
// Never overwrites existing scripts. Created scripts are mode 0755.
func CreateStubs(fsys fs.FS, root string) (CreateStubsResult, error) {
	result := CreateStubsResult{}

	for _, stub := range DefaultStubs() {
		absPath := filepath.Join(root, stub.RelPath)

		_, err := fsys.Stat(absPath)
		if err == nil {
			result.Skipped = append(result.Skipped, stub.RelPath)
			continue
		}
		if !os.IsNotExist(err) {
			return result, err
		}

		if err := fsys.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return result, err
		}
		if err := fsys.WriteFile(absPath, []byte(stub.Content), 0o644); err != nil {
			return result, err
		}
		if err := fsys.Chmod(absPath, 0o755); err != nil {
			return result, err
		}
		result.Created = append(result.Created, stub.RelPath)
	}

	return result, nil
}
