// Package quilldir encapsulates path knowledge for quill's configuration
// directories: the per-user global directory and the optional per-project
// workspace directory (.quill/).
package quilldir

import (
	"fmt"
	"os"
	"path/filepath"
)

// WorkspaceDirName is the name of the per-project directory.
const WorkspaceDirName = ".quill"

// Dir is a value object that resolves paths within a quill directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Global returns the per-user directory, e.g. ~/.config/quill on Linux.
func Global() (Dir, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Dir{}, fmt.Errorf("quilldir: user config dir: %w", err)
	}

	return New(filepath.Join(base, "quill")), nil
}

// Workspace returns the .quill/ directory inside project.
func Workspace(project string) Dir {
	return New(filepath.Join(project, WorkspaceDirName))
}

// Root returns the absolute path to the directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the settings file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// CredentialsPath returns the path to the stored API key.
func (d Dir) CredentialsPath() string { return filepath.Join(d.root, "credentials") }

// Exists reports whether the directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}

// Ensure creates the directory if it is missing. It is safe to call multiple
// times.
func (d Dir) Ensure() error {
	if err := os.MkdirAll(d.root, 0o700); err != nil {
		return fmt.Errorf("quilldir: create %s: %w", d.root, err)
	}

	return nil
}
