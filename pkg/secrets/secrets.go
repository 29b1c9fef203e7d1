// Package secrets stores the Gemini API key.
//
// The key is looked up in the GEMINI_API_KEY environment variable first (which
// may come from a .env file) and then in a credentials file readable only by
// the current user.
package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvVar is the environment variable holding the API key.
const EnvVar = "GEMINI_API_KEY"

// Store reads and writes the API key.
type Store struct {
	path   string
	getenv func(string) string
}

// New creates a Store backed by the credentials file at path.
func New(path string) *Store {
	return &Store{path: path, getenv: os.Getenv}
}

// APIKey returns the stored key, or "" when none is configured.
func (s *Store) APIKey(_ context.Context) (string, error) {
	if v := strings.TrimSpace(s.getenv(EnvVar)); v != "" {
		return v, nil
	}

	data, err := os.ReadFile(s.path) //nolint:gosec // path comes from quill's own directory layout
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("secrets: read credentials: %w", err)
	}

	return string(bytes.TrimSpace(data)), nil
}

// Save writes key to the credentials file with owner-only permissions.
func (s *Store) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("secrets: empty API key")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("secrets: create dir: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("secrets: write credentials: %w", err)
	}

	return nil
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
