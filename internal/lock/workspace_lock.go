// Package lock serialises mutating advent commands within one workspace.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// DefaultStaleAfter is the age after which a lock is broken even if its pid looks alive.
const DefaultStaleAfter = 2 * time.Hour

const maxAttempts = 3

// LockInfo is the JSON body of a lock file.
type LockInfo struct {
	PID       int       `json:"pid"`
	CreatedAt time.Time `json:"created_at"`
	Root      string    `json:"root"`
	Cmd       string    `json:"cmd,omitempty"`
}

// ErrLocked indicates a live lock is held by another process.
type ErrLocked struct {
	Root string
	Info *LockInfo // nil if the lock file is unreadable
	Path string
}

func (e *ErrLocked) Error() string {
	if e.Info != nil {
		return fmt.Sprintf("workspace %s is locked by pid %d (%s) since %s (lock file: %s)",
			e.Root, e.Info.PID, e.Info.Cmd, e.Info.CreatedAt.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("workspace %s is locked (lock file: %s)", e.Root, e.Path)
}

// WorkspaceLock hands out one lock per workspace root.
type WorkspaceLock struct {
	LocksDir   string
	StaleAfter time.Duration
	Now        func() time.Time
	IsPIDAlive func(pid int) bool
}

// NewWorkspaceLock returns a WorkspaceLock with production defaults.
func NewWorkspaceLock(locksDir string) WorkspaceLock {
	return WorkspaceLock{
		LocksDir:   locksDir,
		StaleAfter: DefaultStaleAfter,
		Now:        time.Now,
		IsPIDAlive: isPIDAlive,
	}
}

// Path returns the lock file used for root.
func (l WorkspaceLock) Path(root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(l.LocksDir, hex.EncodeToString(sum[:8])+".lock")
}

// Lock acquires the lock for root and returns its release func.
// cmd is recorded for diagnostics. A live holder yields *ErrLocked;
// a dead or expired holder is broken and acquisition retried.
func (l WorkspaceLock) Lock(root, cmd string) (unlock func() error, err error) {
	path := l.Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		created, err := l.tryCreate(path, root, cmd)
		if err != nil {
			return nil, err
		}
		if created {
			return func() error {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
				return nil
			}, nil
		}

		info, readErr := readLockInfo(path)
		if !l.isStale(path, info, readErr) {
			return nil, &ErrLocked{Root: root, Info: info, Path: path}
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, &ErrLocked{Root: root, Info: info, Path: path}
		}
	}
	return nil, &ErrLocked{Root: root, Path: path}
}

// tryCreate creates the lock file with O_EXCL. created=false means it already exists.
func (l WorkspaceLock) tryCreate(path, root, cmd string) (created bool, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create lock file: %w", err)
	}

	data, _ := json.Marshal(LockInfo{PID: os.Getpid(), CreatedAt: l.Now(), Root: root, Cmd: cmd})
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("failed to write lock file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("failed to close lock file: %w", err)
	}
	return true, nil
}

// isStale decides whether an existing lock may be broken. Unreadable lock
// files are judged by mtime only.
func (l WorkspaceLock) isStale(path string, info *LockInfo, readErr error) bool {
	if readErr != nil {
		stat, err := os.Stat(path)
		if err != nil {
			return os.IsNotExist(err)
		}
		return l.Now().Sub(stat.ModTime()) > l.StaleAfter
	}
	if !l.IsPIDAlive(info.PID) {
		return true
	}
	return l.Now().Sub(info.CreatedAt) > l.StaleAfter
}

func readLockInfo(path string) (*LockInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// isPIDAlive sends signal 0; EPERM still means the process exists.
func isPIDAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
