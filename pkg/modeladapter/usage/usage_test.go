package usage_test

import (
	"sync"
	"testing"

	"github.com/germanamz/quill/pkg/modeladapter/usage"
	"github.com/stretchr/testify/assert"
)

func TestTokenCount_Total(t *testing.T) {
	tc := usage.TokenCount{InputTokens: 100, OutputTokens: 50, ThinkingTokens: 7}
	assert.Equal(t, 157, tc.Total())
}

func TestTokenCount_String(t *testing.T) {
	assert.Equal(t, "in=3 out=4", usage.TokenCount{InputTokens: 3, OutputTokens: 4}.String())
	assert.Equal(t, "in=3 out=4 thinking=2", usage.TokenCount{InputTokens: 3, OutputTokens: 4, ThinkingTokens: 2}.String())
}

func TestTracker_Empty(t *testing.T) {
	var tr usage.Tracker

	_, ok := tr.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Count())
	assert.Equal(t, usage.TokenCount{}, tr.Total())
}

func TestTracker_AddLastTotal(t *testing.T) {
	var tr usage.Tracker

	tr.Add(usage.TokenCount{InputTokens: 10, OutputTokens: 5})
	tr.Add(usage.TokenCount{InputTokens: 20, OutputTokens: 10, ThinkingTokens: 1})

	last, ok := tr.Last()
	assert.True(t, ok)
	assert.Equal(t, 20, last.InputTokens)
	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, usage.TokenCount{InputTokens: 30, OutputTokens: 15, ThinkingTokens: 1}, tr.Total())
}

func TestTracker_ConcurrentAdd(t *testing.T) {
	var tr usage.Tracker
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Add(usage.TokenCount{InputTokens: 1, OutputTokens: 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Count())
	assert.Equal(t, 100, tr.Total().Total())
}
