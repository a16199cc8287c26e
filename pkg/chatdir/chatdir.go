// Package chatdir encapsulates all path knowledge for the .e2echat/ runtime
// directory. It provides a Dir value object with accessors for the config
// file and the persisted session history.
package chatdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within a .e2echat/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use EnsureStructure to create the
// directory layout.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .e2echat/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the main config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// HistoryPath returns the path to the persisted session history.
func (d Dir) HistoryPath() string { return filepath.Join(d.root, "history.json") }

// Exists reports whether the .e2echat/ root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}

// EnsureStructure creates the root directory if it is missing. It is safe to
// call multiple times.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.root, 0o750); err != nil {
		return fmt.Errorf("chatdir: create root: %w", err)
	}

	return nil
}
