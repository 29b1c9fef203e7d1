package rewrite

import (
	"log/slog"

	"github.com/germanamz/quill/pkg/prompt"
	"github.com/germanamz/quill/pkg/settings"
)

// SettingsReader loads the persisted settings.
type SettingsReader interface {
	Load() (settings.File, error)
}

// EffectiveConfig is the configuration one rewrite runs with. It is built
// fresh for every invocation and never persisted.
type EffectiveConfig struct {
	APIKey   string
	Model    string
	Prompt   string
	Examples prompt.Examples
}

// Source reports which tier a resolved model came from.
type Source string

const (
	SourceSession  Source = "session"
	SourceSettings Source = "settings"
	SourceDefault  Source = "default"
)

// Resolver computes the effective configuration.
type Resolver struct {
	session *Session
	store   SettingsReader
	log     *slog.Logger
}

// NewResolver creates a Resolver. A nil session gets a fresh one and a nil
// logger falls back to slog.Default().
func NewResolver(session *Session, store SettingsReader, log *slog.Logger) *Resolver {
	if session == nil {
		session = NewSession()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Resolver{session: session, store: store, log: log}
}

// Resolve returns the effective configuration for apiKey. It never fails:
// settings the store could not read fall back to their defaults one field at
// a time, and whatever it did read is still used.
func (r *Resolver) Resolve(apiKey string) EffectiveConfig {
	cfg, _ := r.resolve(apiKey)
	return cfg
}

func (r *Resolver) resolve(apiKey string) (EffectiveConfig, Source) {
	var persisted settings.File

	if r.store != nil {
		f, err := r.store.Load()
		if err != nil {
			r.log.Warn("settings partly unreadable, missing values use defaults", "error", err)
		}
		persisted = f
	}

	cfg := EffectiveConfig{
		APIKey:   apiKey,
		Prompt:   persisted.Prompt,
		Examples: persisted.Examples,
	}
	if cfg.Examples == nil {
		cfg.Examples = prompt.Examples{}
	}

	if m, ok := r.session.Model(); ok {
		cfg.Model = m
		return cfg, SourceSession
	}

	if persisted.Model != "" {
		cfg.Model = persisted.Model
		return cfg, SourceSettings
	}

	cfg.Model = DefaultModel

	return cfg, SourceDefault
}
