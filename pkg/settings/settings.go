// Package settings stores quill's persisted configuration in YAML files.
//
// Two scopes exist. The global file lives in the per-user config directory;
// the workspace file lives in the project's .quill/ directory and, when
// present, overrides the global values it sets.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/germanamz/quill/pkg/prompt"
	"gopkg.in/yaml.v3"
)

// Known keys.
const (
	KeyModel    = "model"
	KeyPrompt   = "prompt"
	KeyExamples = "examples"
)

// Keys lists the keys a Store reads and writes. Other keys in a file are
// left alone.
var Keys = []string{KeyModel, KeyPrompt, KeyExamples}

// Scope selects which file a write goes to.
type Scope int

const (
	Global Scope = iota
	Workspace
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "global"
	case Workspace:
		return "workspace"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// File is the decoded content of a settings file.
type File struct {
	Model    string          `yaml:"model,omitempty"`
	Prompt   string          `yaml:"prompt,omitempty"`
	Examples prompt.Examples `yaml:"examples,omitempty"`
}

// ErrUnknownKey is returned when writing a key outside the schema.
var ErrUnknownKey = errors.New("settings: unknown key")

// Store reads and writes the settings files. It is safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	globalPath    string
	workspacePath string
}

// Option configures a Store.
type Option func(*Store)

// WithWorkspace sets the workspace settings file. An empty path disables the
// workspace scope.
func WithWorkspace(path string) Option {
	return func(s *Store) { s.workspacePath = path }
}

// New creates a Store backed by the global settings file at globalPath.
// Missing files are treated as empty.
func New(globalPath string, opts ...Option) *Store {
	s := &Store{globalPath: globalPath}

	for _, o := range opts {
		o(s)
	}

	return s
}

// Path returns the file backing the given scope, or "" if the scope is disabled.
func (s *Store) Path(scope Scope) string {
	if scope == Workspace {
		return s.workspacePath
	}
	return s.globalPath
}

// Registered reports whether key is one of Keys.
func (s *Store) Registered(key string) bool {
	return slices.Contains(Keys, key)
}

// Load returns the merged settings: workspace values override global ones
// field by field.
//
// Load is lenient. A key whose value cannot be decoded is skipped and the
// other keys are still returned; a file that cannot be read or parsed
// contributes nothing while the other file is still merged. The returned
// error describes everything that was skipped and is nil when both files
// decoded cleanly.
func (s *Store) Load() (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, globalErr := readFile(s.globalPath)

	if s.workspacePath == "" {
		return f, globalErr
	}

	ws, wsErr := readFile(s.workspacePath)

	if ws.Model != "" {
		f.Model = ws.Model
	}
	if ws.Prompt != "" {
		f.Prompt = ws.Prompt
	}
	if ws.Examples != nil {
		f.Examples = ws.Examples
	}

	return f, errors.Join(globalErr, wsErr)
}

// Update writes value under key in the file for scope. Other keys and
// comments in the file are preserved.
func (s *Store) Update(key string, value any, scope Scope) error {
	if !s.Registered(key) {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	path := s.Path(scope)
	if path == "" {
		return fmt.Errorf("settings: %s scope is not configured", scope)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := readNode(path)
	if err != nil {
		return err
	}

	if err := setKey(doc, key, value); err != nil {
		return fmt.Errorf("settings: set %s: %w", key, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}

	return writeAtomic(path, buf.Bytes())
}

// readFile decodes the known keys of path one at a time, so a bad value
// only costs its own key.
func readFile(path string) (File, error) {
	var f File

	data, err := os.ReadFile(path) //nolint:gosec // path comes from quill's own directory layout
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("settings: read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return f, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return f, nil
	}

	m := doc.Content[0]
	if m.Kind == yaml.ScalarNode && m.Tag == "!!null" {
		return f, nil
	}
	if m.Kind != yaml.MappingNode {
		return f, fmt.Errorf("settings: %s: top level is not a mapping", path)
	}

	var errs []error
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i].Value, m.Content[i+1]

		var dest any
		switch key {
		case KeyModel:
			dest = &f.Model
		case KeyPrompt:
			dest = &f.Prompt
		case KeyExamples:
			dest = &f.Examples
		default:
			continue
		}

		if err := value.Decode(dest); err != nil {
			errs = append(errs, fmt.Errorf("settings: %s: skipping %s: %w", path, key, err))
		}
	}

	return f, errors.Join(errs...)
}

// readNode loads path as a YAML document node. A missing or empty file yields
// a document holding an empty mapping.
func readNode(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from quill's own directory layout
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("settings: parse %s: %w", path, err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode}
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("settings: %s: top level is not a mapping", path)
	}

	return &doc, nil
}

func setKey(doc *yaml.Node, key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return err
	}

	m := doc.Content[0]
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &v
			return nil
		}
	}

	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&v,
	)

	return nil
}

// writeAtomic replaces path through a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("settings: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("settings: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("settings: write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("settings: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("settings: rename temp file: %w", err)
	}

	return nil
}
