package scaffold

import (
	"os"
	"strings"

	"github.com/NielsdaWheelz/advent/internal/fs"
)

// Puzzle inputs are per-user and must not be published.
const inputIgnoreEntry = "input*.txt"

// GitignoreResult indicates what happened to .gitignore.
type GitignoreResult string

const (
	GitignoreUpdated   GitignoreResult = "updated"
	GitignoreUnchanged GitignoreResult = "unchanged"
	GitignoreSkipped   GitignoreResult = "skipped"
)

// EnsureGitignore makes sure .gitignore ignores puzzle input files.
// Creates the file if missing, never duplicates the entry, and leaves the
// file newline-terminated.
func EnsureGitignore(fsys fs.FS, gitignorePath string) (GitignoreResult, error) {
	content, err := fsys.ReadFile(gitignorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err := fsys.WriteFile(gitignorePath, []byte(inputIgnoreEntry+"\n"), 0o644); err != nil {
			return "", err
		}
		return GitignoreUpdated, nil
	}

	text := string(content)
	if hasInputEntry(text) {
		if text != "" && !strings.HasSuffix(text, "\n") {
			if err := fsys.WriteFile(gitignorePath, []byte(text+"\n"), 0o644); err != nil {
				return "", err
			}
			return GitignoreUpdated, nil
		}
		return GitignoreUnchanged, nil
	}

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	text += inputIgnoreEntry + "\n"
	if err := fsys.WriteFile(gitignorePath, []byte(text), 0o644); err != nil {
		return "", err
	}
	return GitignoreUpdated, nil
}

// hasInputEntry accepts any pattern that already covers input.txt.
func hasInputEntry(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		switch strings.TrimSpace(line) {
		case inputIgnoreEntry, "input.txt", "**/input.txt", "**/input*.txt", "*.txt":
			return true
		}
	}
	return false
}
