package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/quill/pkg/modeladapter"
	"github.com/germanamz/quill/pkg/prompt"
	"github.com/germanamz/quill/pkg/providers/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *gemini.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return gemini.New(srv.URL, "test-key", "gemini-test")
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	return req
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     10,
			"candidatesTokenCount": 5,
			"totalTokenCount":      15,
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	a := gemini.New("", "k", "m")
	assert.Equal(t, gemini.DefaultBaseURL, a.BaseURL)

	a = gemini.New("http://localhost:9999/", "k", "m")
	assert.Equal(t, "http://localhost:9999", a.BaseURL)
}

func TestGenerate_SendsPartsInOrder(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		req := readBody(t, r)

		contents, ok := req["contents"].([]any)
		require.True(t, ok)
		require.Len(t, contents, 1)

		c0, _ := contents[0].(map[string]any)
		assert.Equal(t, "user", c0["role"])

		parts, _ := c0["parts"].([]any)
		var texts []string
		for _, p := range parts {
			m, _ := p.(map[string]any)
			s, _ := m["text"].(string)
			texts = append(texts, s)
		}
		assert.Equal(t, []string{
			"instruction: shout",
			"input: a",
			"output: A",
			"input: hello",
			"output: ",
		}, texts)

		_, hasGenCfg := req["generationConfig"]
		assert.False(t, hasGenCfg)

		writeJSON(t, w, textResponse("HELLO"))
	})

	payload := prompt.Build("shout", prompt.Examples{{Input: "a", Output: "A"}}, "hello")

	out, err := adapter.Generate(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)

	last, ok := adapter.Usage.Last()
	require.True(t, ok)
	assert.Equal(t, 10, last.InputTokens)
	assert.Equal(t, 5, last.OutputTokens)
}

func TestGenerate_SafetySettingsBlockNothing(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		settings, ok := req["safetySettings"].([]any)
		require.True(t, ok)
		require.Len(t, settings, 4)

		seen := map[string]bool{}
		for _, s := range settings {
			m, _ := s.(map[string]any)
			assert.Equal(t, gemini.BlockNone, m["threshold"])
			cat, _ := m["category"].(string)
			seen[cat] = true
		}
		for _, c := range gemini.HarmCategories {
			assert.True(t, seen[c], c)
		}

		writeJSON(t, w, textResponse("ok"))
	})

	_, err := adapter.Generate(context.Background(), prompt.Build("", nil, "x"))
	require.NoError(t, err)
}

func TestGenerate_SkipsThoughtParts(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{
						{"text": "thinking about it", "thought": true},
						{"text": "Hello, "},
						{"text": "world"},
					},
				},
			}},
			"usageMetadata": map[string]any{"thoughtsTokenCount": 3},
		})
	})

	out, err := adapter.Generate(context.Background(), prompt.Build("", nil, "x"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", out)

	last, _ := adapter.Usage.Last()
	assert.Equal(t, 3, last.ThinkingTokens)
}

func TestGenerate_PromptBlocked(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"promptFeedback": map[string]any{"blockReason": "OTHER"},
		})
	})

	_, err := adapter.Generate(context.Background(), prompt.Build("", nil, "x"))
	require.ErrorIs(t, err, gemini.ErrNoText)
	assert.ErrorContains(t, err, "OTHER")
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"candidates": []any{}})
	})

	_, err := adapter.Generate(context.Background(), prompt.Build("", nil, "x"))
	assert.ErrorIs(t, err, gemini.ErrNoText)
}

func TestGenerate_NoTextFinishReason(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"parts": []any{}},
				"finishReason": "MAX_TOKENS",
			}},
		})
	})

	_, err := adapter.Generate(context.Background(), prompt.Build("", nil, "x"))
	require.ErrorIs(t, err, gemini.ErrNoText)
	assert.ErrorContains(t, err, "MAX_TOKENS")
}

func TestGenerate_APIError(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := adapter.Generate(context.Background(), prompt.Build("", nil, "x"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "gemini:")
	assert.ErrorContains(t, err, "API key not valid")

	var se *modeladapter.StatusError
	assert.True(t, errors.As(err, &se))
}
