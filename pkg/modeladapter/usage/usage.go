// Package usage records token counts reported by the model API.
package usage

import (
	"fmt"
	"sync"
)

// TokenCount holds the token counts reported for a single model call.
type TokenCount struct {
	InputTokens    int
	OutputTokens   int
	ThinkingTokens int // Tokens spent on internal reasoning; zero for models without it.
}

// Total returns the sum of all counted tokens.
func (tc TokenCount) Total() int {
	return tc.InputTokens + tc.OutputTokens + tc.ThinkingTokens
}

// String formats the count for log lines, e.g. "in=10 out=5".
func (tc TokenCount) String() string {
	if tc.ThinkingTokens > 0 {
		return fmt.Sprintf("in=%d out=%d thinking=%d", tc.InputTokens, tc.OutputTokens, tc.ThinkingTokens)
	}
	return fmt.Sprintf("in=%d out=%d", tc.InputTokens, tc.OutputTokens)
}

// Tracker accumulates token usage across the calls made by one process.
// It is safe for concurrent use; the MCP server shares one tracker between
// tool calls.
type Tracker struct {
	mu    sync.Mutex
	last  TokenCount
	total TokenCount
	calls int
}

// Add records a token count entry.
func (t *Tracker) Add(tc TokenCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = tc
	t.total.InputTokens += tc.InputTokens
	t.total.OutputTokens += tc.OutputTokens
	t.total.ThinkingTokens += tc.ThinkingTokens
	t.calls++
}

// Last returns the most recent token count entry.
// The bool is false when nothing has been recorded.
func (t *Tracker) Last() (TokenCount, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.last, t.calls > 0
}

// Total returns the aggregate token count across all entries.
func (t *Tracker) Total() TokenCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.total
}

// Count returns the number of recorded entries.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.calls
}
