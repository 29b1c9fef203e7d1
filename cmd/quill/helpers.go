package main

import (
	"errors"
	"strings"

	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/germanamz/quill/pkg/secrets"
)

// oneLine flattens err to a single line for the terminal and adds a hint for
// errors the user can fix with a quill command.
func oneLine(err error) string {
	msg := strings.Join(strings.Fields(err.Error()), " ")

	switch {
	case errors.Is(err, rewrite.ErrMissingCredential):
		msg += " (run `quill auth` or set " + secrets.EnvVar + ")"
	case errors.Is(err, rewrite.ErrDeprecatedModel):
		msg += " (run `quill select`)"
	}

	return msg
}

// truncate returns s shortened to at most n runes, with "..." appended if
// truncated. Newlines are replaced with spaces for single-line display.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
