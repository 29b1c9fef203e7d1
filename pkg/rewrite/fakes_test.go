package rewrite_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/germanamz/quill/pkg/modeladapter/usage"
	"github.com/germanamz/quill/pkg/prompt"
	"github.com/germanamz/quill/pkg/providers/gemini"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/germanamz/quill/pkg/settings"
)

// fakeStore is an in-memory settings store.
type fakeStore struct {
	mu        sync.Mutex
	file      settings.File
	loadErr   error
	updateErr error
	known     map[string]bool
	writes    []string
}

func newFakeStore(f settings.File) *fakeStore {
	return &fakeStore{
		file:  f,
		known: map[string]bool{settings.KeyModel: true, settings.KeyPrompt: true, settings.KeyExamples: true},
	}
}

func (s *fakeStore) Load() (settings.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file, s.loadErr
}

func (s *fakeStore) Registered(key string) bool { return s.known[key] }

func (s *fakeStore) Update(key string, value any, _ settings.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}
	if key == settings.KeyModel {
		s.file.Model, _ = value.(string)
	}
	s.writes = append(s.writes, key)

	return nil
}

// fakeGenerator records calls and returns a canned reply.
type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	payload prompt.Payload
	usage   usage.Tracker
}

func (g *fakeGenerator) Generate(_ context.Context, p prompt.Payload) (string, error) {
	g.calls++
	g.payload = p
	g.usage.Add(usage.TokenCount{InputTokens: 4, OutputTokens: 2})
	return g.reply, g.err
}

func (g *fakeGenerator) UsageTracker() *usage.Tracker { return &g.usage }

// fakeLister returns a fixed catalog.
type fakeLister struct {
	models []gemini.Model
	err    error
	calls  int
	key    string
}

func (l *fakeLister) ListModels(context.Context) ([]gemini.Model, error) {
	l.calls++
	return l.models, l.err
}

func (l *fakeLister) factory() rewrite.ListerFactory {
	return func(apiKey string) rewrite.ModelLister {
		l.key = apiKey
		return l
	}
}

// recordingReplacer captures Replace calls.
type recordingReplacer struct {
	texts []string
	err   error
}

func (r *recordingReplacer) Replace(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

func staticKey(key string) rewrite.CredentialSource {
	return rewrite.CredentialFunc(func(context.Context) (string, error) { return key, nil })
}

var errBoom = errors.New("boom")

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
