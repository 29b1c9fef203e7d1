// Package editor captures a text selection from a file or stream and writes
// the rewritten text back in its place.
package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrChanged is returned when the file was modified between reading the
// selection and replacing it.
var ErrChanged = errors.New("editor: file changed on disk")

// LineRange selects lines Start..End, 1-based and inclusive. A zero Start
// selects the whole file; a zero End runs to the end of the file.
type LineRange struct {
	Start int
	End   int
}

// ParseLineRange parses "a:b", "a:", "a", or "" (whole file).
func ParseLineRange(s string) (LineRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LineRange{}, nil
	}

	startStr, endStr, hasColon := strings.Cut(s, ":")

	start, err := strconv.Atoi(startStr)
	if err != nil || start < 1 {
		return LineRange{}, fmt.Errorf("editor: invalid line range %q", s)
	}

	r := LineRange{Start: start, End: start}
	if hasColon {
		r.End = 0
		if endStr != "" {
			end, err := strconv.Atoi(endStr)
			if err != nil || end < start {
				return LineRange{}, fmt.Errorf("editor: invalid line range %q", s)
			}
			r.End = end
		}
	}

	return r, nil
}

// FileDocument is a file with a selected line range.
type FileDocument struct {
	path     string
	original []byte
	start    int // Byte offset of the selection.
	end      int // Byte offset just past the selection.
}

// Open reads path and selects the lines in r.
func Open(path string, r LineRange) (*FileDocument, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the file the user asked to edit
	if err != nil {
		return nil, fmt.Errorf("editor: open: %w", err)
	}

	d := &FileDocument{path: path, original: data, end: len(data)}

	if r.Start == 0 {
		return d, nil
	}

	offsets := lineOffsets(data)
	lines := len(offsets) - 1
	if r.Start > lines {
		return nil, fmt.Errorf("editor: %s has %d lines, range starts at %d", path, lines, r.Start)
	}

	end := r.End
	if end == 0 || end > lines {
		end = lines
	}

	d.start = offsets[r.Start-1]
	d.end = offsets[end]

	return d, nil
}

// lineOffsets returns the byte offset of the start of every line plus a final
// entry for the end of the data.
func lineOffsets(data []byte) []int {
	offsets := []int{0}
	for i, b := range data {
		if b == '\n' && i+1 < len(data) {
			offsets = append(offsets, i+1)
		}
	}
	return append(offsets, len(data))
}

// Path returns the file path.
func (d *FileDocument) Path() string { return d.path }

// Selection returns the selected text.
func (d *FileDocument) Selection() string {
	return string(d.original[d.start:d.end])
}

// Apply returns the full file content with the selection replaced by text.
// When the selection ends in a newline and text does not, one is added so the
// following line stays on its own line.
func (d *FileDocument) Apply(text string) string {
	sel := d.original[d.start:d.end]
	if bytes.HasSuffix(sel, []byte("\n")) && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	var b strings.Builder
	b.Grow(len(d.original) - len(sel) + len(text))
	b.Write(d.original[:d.start])
	b.WriteString(text)
	b.Write(d.original[d.end:])

	return b.String()
}

// Preview returns a unified diff of the change Replace would make.
func (d *FileDocument) Preview(text string) string {
	return Diff(d.path, string(d.original), d.Apply(text))
}

// Replace writes the file with the selection replaced by text. It refuses to
// write if the file changed since Open.
func (d *FileDocument) Replace(_ context.Context, text string) error {
	current, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("editor: reread: %w", err)
	}
	if !bytes.Equal(current, d.original) {
		return fmt.Errorf("%w: %s", ErrChanged, d.path)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}

	updated := d.Apply(text)
	if err := writeAtomic(d.path, []byte(updated), mode); err != nil {
		return err
	}

	d.end = len(updated) - (len(current) - d.end)
	d.original = []byte(updated)

	return nil
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".quill-*.tmp")
	if err != nil {
		return fmt.Errorf("editor: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("editor: write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("editor: close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("editor: chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("editor: rename temp file: %w", err)
	}

	return nil
}

// WriterTarget replaces a streamed selection by writing the new text to W.
type WriterTarget struct {
	W io.Writer
}

// Replace writes text to the underlying writer.
func (t WriterTarget) Replace(_ context.Context, text string) error {
	if _, err := io.WriteString(t.W, text); err != nil {
		return fmt.Errorf("editor: write output: %w", err)
	}
	return nil
}

// Diff returns a unified diff between oldContent and newContent labeled with
// name. It returns an empty string when the contents are equal.
func Diff(name, oldContent, newContent string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	}

	result, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("(diff error: %v)", err)
	}

	return result
}
