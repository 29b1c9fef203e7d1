package rewrite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/germanamz/quill/pkg/settings"
)

// SettingsWriter is the write side of the persisted settings.
type SettingsWriter interface {
	Registered(key string) bool
	Update(key string, value any, scope settings.Scope) error
}

// Outcome reports how far a selection got.
type Outcome int

const (
	// Persisted: the session override is set and the settings were written.
	Persisted Outcome = iota
	// SessionOnly: the settings do not know the model key; only the session
	// override is set.
	SessionOnly
	// PersistFailed: the session override is set; writing the settings failed
	// and the failure was logged.
	PersistFailed
)

func (o Outcome) String() string {
	switch o {
	case Persisted:
		return "persisted"
	case SessionOnly:
		return "session-only"
	case PersistFailed:
		return "persist-failed"
	default:
		return "unknown"
	}
}

// Selector applies a model choice.
type Selector struct {
	session *Session
	store   SettingsWriter
	log     *slog.Logger
}

// NewSelector creates a Selector. A nil store means session-only mode. A nil
// session gets a fresh one and a nil logger falls back to slog.Default().
func NewSelector(session *Session, store SettingsWriter, log *slog.Logger) *Selector {
	if session == nil {
		session = NewSession()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Selector{session: session, store: store, log: log}
}

// Apply makes name the model for the rest of the process and tries to save it
// in the global settings. Saving is best effort: a failure is logged and
// reported through the Outcome, never returned. The session override is kept
// after a successful save.
func (s *Selector) Apply(ctx context.Context, name string) Outcome {
	s.session.SetModel(name)

	if s.store == nil || !s.store.Registered(settings.KeyModel) {
		s.log.InfoContext(ctx, "model selected for this session", "model", name)
		return SessionOnly
	}

	if err := s.store.Update(settings.KeyModel, name, settings.Global); err != nil {
		s.log.WarnContext(ctx, "model selection not saved",
			"model", name,
			"error", fmt.Errorf("%w: %w", ErrPersistence, err),
		)
		return PersistFailed
	}

	s.log.InfoContext(ctx, "model selected", "model", name)

	return Persisted
}
