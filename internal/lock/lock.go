// Package lock provides the project-level advisory lock held by mutating
// gk commands. The lock serializes goal-number allocation so two concurrent
// invocations cannot compute the same next ID.
package lock

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// FileName is the lock file name inside the .goalkit directory.
const FileName = ".lock"

// Info is the metadata stored in the lock file.
type Info struct {
	PID       int       `json:"pid"`
	CreatedAt time.Time `json:"created_at"`
	Cmd       string    `json:"cmd,omitempty"`
}

// ErrLocked indicates a live lock is held by another process.
type ErrLocked struct {
	Path string
	Info *Info // nil if the lock file is unreadable
}

func (e *ErrLocked) Error() string {
	if e.Info != nil {
		return fmt.Sprintf("project is locked by pid %d since %s (lock file: %s)",
			e.Info.PID, e.Info.CreatedAt.Format(time.RFC3339), e.Path)
	}
	return fmt.Sprintf("project is locked (lock file: %s)", e.Path)
}

// ProjectLock acquires and releases the per-project lock file.
type ProjectLock struct {
	Dir        string // .goalkit directory
	StaleAfter time.Duration
	Now        func() time.Time
	IsPIDAlive func(pid int) bool
}

// New returns a ProjectLock with defaults: 2h staleness, live-PID probing.
func New(dir string) ProjectLock {
	return ProjectLock{
		Dir:        dir,
		StaleAfter: 2 * time.Hour,
		Now:        time.Now,
		IsPIDAlive: isPIDAlive,
	}
}

func (l ProjectLock) path() string {
	return filepath.Join(l.Dir, FileName)
}

// Acquire takes the lock and returns an unlock function. cmd is stored for
// diagnostics. Returns *ErrLocked when a live lock is held elsewhere; stale
// locks (dead PID or expired age) are removed and retried.
func (l ProjectLock) Acquire(cmd string) (unlock func() error, err error) {
	lockPath := l.path()

	for attempt := 0; attempt < 3; attempt++ {
		if err := os.MkdirAll(l.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}

		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			info := Info{PID: os.Getpid(), CreatedAt: l.Now(), Cmd: cmd}
			data, _ := json.Marshal(info)
			if _, werr := f.Write(data); werr != nil {
				f.Close()
				os.Remove(lockPath)
				return nil, fmt.Errorf("write lock file: %w", werr)
			}
			if cerr := f.Close(); cerr != nil {
				os.Remove(lockPath)
				return nil, fmt.Errorf("close lock file: %w", cerr)
			}
			return func() error {
				if rerr := os.Remove(lockPath); rerr != nil && !os.IsNotExist(rerr) {
					return rerr
				}
				return nil
			}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		info, readErr := l.readInfo(lockPath)
		if readErr != nil {
			// Unreadable lock file: judge staleness by mtime only.
			stat, statErr := os.Stat(lockPath)
			if statErr != nil || l.Now().Sub(stat.ModTime()) <= l.StaleAfter {
				return nil, &ErrLocked{Path: lockPath}
			}
			if rerr := os.Remove(lockPath); rerr != nil && !os.IsNotExist(rerr) {
				return nil, &ErrLocked{Path: lockPath}
			}
			continue
		}

		if l.isStale(info) {
			if rerr := os.Remove(lockPath); rerr != nil && !os.IsNotExist(rerr) {
				return nil, &ErrLocked{Path: lockPath, Info: info}
			}
			continue
		}

		return nil, &ErrLocked{Path: lockPath, Info: info}
	}

	return nil, &ErrLocked{Path: lockPath}
}

func (l ProjectLock) readInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (l ProjectLock) isStale(info *Info) bool {
	if !l.IsPIDAlive(info.PID) {
		return true
	}
	return l.Now().Sub(info.CreatedAt) > l.StaleAfter
}

// isPIDAlive probes a process with signal 0. EPERM means the process exists
// but belongs to another user; treat as alive.
func isPIDAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
