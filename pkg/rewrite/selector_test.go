package rewrite_test

import (
	"context"
	"testing"

	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/germanamz/quill/pkg/settings"
	"github.com/stretchr/testify/assert"
)

func TestApply_PersistsAndKeepsOverride(t *testing.T) {
	session := rewrite.NewSession()
	store := newFakeStore(settings.File{})

	out := rewrite.NewSelector(session, store, nil).Apply(context.Background(), "x")

	assert.Equal(t, rewrite.Persisted, out)
	assert.Equal(t, "x", store.file.Model)

	m, ok := session.Model()
	assert.True(t, ok)
	assert.Equal(t, "x", m)
}

func TestApply_WriteFailureIsSwallowed(t *testing.T) {
	session := rewrite.NewSession()
	store := newFakeStore(settings.File{Model: "old"})
	store.updateErr = errBoom
	log, buf := captureLogger()

	out := rewrite.NewSelector(session, store, log).Apply(context.Background(), "x")

	assert.Equal(t, rewrite.PersistFailed, out)
	m, _ := session.Model()
	assert.Equal(t, "x", m)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "rewrite: persistence: save model selection: boom")

	// The override still wins over the stale persisted value.
	r := rewrite.NewResolver(session, store, nil)
	assert.Equal(t, "x", r.Resolve("k").Model)
}

func TestApply_UnregisteredKeyIsSessionOnly(t *testing.T) {
	session := rewrite.NewSession()
	store := newFakeStore(settings.File{})
	store.known = map[string]bool{}

	out := rewrite.NewSelector(session, store, nil).Apply(context.Background(), "x")

	assert.Equal(t, rewrite.SessionOnly, out)
	assert.Empty(t, store.writes)
	m, _ := session.Model()
	assert.Equal(t, "x", m)
}

func TestApply_NilStoreIsSessionOnly(t *testing.T) {
	session := rewrite.NewSession()

	out := rewrite.NewSelector(session, nil, nil).Apply(context.Background(), "x")

	assert.Equal(t, rewrite.SessionOnly, out)
}

func TestApply_NilSession(t *testing.T) {
	sel := rewrite.NewSelector(nil, newFakeStore(settings.File{}), nil)

	assert.NotPanics(t, func() {
		assert.Equal(t, rewrite.Persisted, sel.Apply(context.Background(), "x"))
	})
}

func TestApply_OverrideSurvivesLaterPersistedChange(t *testing.T) {
	session := rewrite.NewSession()
	store := newFakeStore(settings.File{})
	rewrite.NewSelector(session, store, nil).Apply(context.Background(), "x")

	// Someone edits the settings file behind our back.
	store.file.Model = "edited"

	assert.Equal(t, "x", rewrite.NewResolver(session, store, nil).Resolve("k").Model)
}

func TestApply_LastWriteWins(t *testing.T) {
	session := rewrite.NewSession()
	sel := rewrite.NewSelector(session, newFakeStore(settings.File{}), nil)

	sel.Apply(context.Background(), "first")
	sel.Apply(context.Background(), "second")

	m, _ := session.Model()
	assert.Equal(t, "second", m)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "persisted", rewrite.Persisted.String())
	assert.Equal(t, "session-only", rewrite.SessionOnly.String())
	assert.Equal(t, "persist-failed", rewrite.PersistFailed.String())
}
