package rewrite

import (
	"errors"
	"fmt"
)

// Kind classifies a rewrite failure by the phase that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredential
	KindDeprecatedModel
	KindCatalogFetch
	KindEmptyCatalog
	KindGeneration
	KindPersistence
	KindReplace
)

// String names the failing phase.
func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "credential"
	case KindDeprecatedModel:
		return "model validation"
	case KindCatalogFetch, KindEmptyCatalog:
		return "model catalog"
	case KindGeneration:
		return "generation"
	case KindPersistence:
		return "persistence"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Error is a rewrite failure. Every kind except KindPersistence is terminal
// for the invocation that produced it.
type Error struct {
	Kind  Kind
	Model string // Set for KindDeprecatedModel and KindGeneration.
	Err   error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
	ErrDeprecatedModel   = &Error{Kind: KindDeprecatedModel}
	ErrCatalogFetch      = &Error{Kind: KindCatalogFetch}
	ErrEmptyCatalog      = &Error{Kind: KindEmptyCatalog}
	ErrGeneration        = &Error{Kind: KindGeneration}
	ErrPersistence       = &Error{Kind: KindPersistence}
	ErrReplace           = &Error{Kind: KindReplace}
)

func (e *Error) Error() string {
	var msg string

	switch e.Kind {
	case KindMissingCredential:
		msg = "no API key configured"
	case KindDeprecatedModel:
		msg = fmt.Sprintf("model %q is deprecated, select another model", e.Model)
	case KindCatalogFetch:
		msg = "fetch model list"
	case KindEmptyCatalog:
		msg = "no available model supports text generation"
	case KindGeneration:
		msg = "generate text"
		if e.Model != "" {
			msg += " with " + e.Model
		}
	case KindPersistence:
		msg = "save model selection"
	case KindReplace:
		msg = "replace selection"
	default:
		msg = "failed"
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return fmt.Sprintf("rewrite: %s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Err == nil && t.Model == "" && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
