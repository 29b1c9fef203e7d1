package rewrite

import (
	"context"
	"log/slog"
	"time"

	"github.com/germanamz/quill/pkg/modeladapter"
	"github.com/germanamz/quill/pkg/modeladapter/usage"
	"github.com/germanamz/quill/pkg/prompt"
	"github.com/google/uuid"
)

// State is a step of a single rewrite invocation.
type State string

const (
	StateIdle           State = "idle"
	StateConfigResolved State = "config-resolved"
	StateValidated      State = "validated"
	StateAssembled      State = "assembled"
	StateInvoked        State = "invoked"
	StateSucceeded      State = "succeeded"
	StateFailed         State = "failed"
)

// CredentialSource provides the API key. An empty key means none is stored.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

// CredentialFunc adapts a plain function to the CredentialSource interface.
type CredentialFunc func(ctx context.Context) (string, error)

// APIKey calls the underlying function.
func (f CredentialFunc) APIKey(ctx context.Context) (string, error) { return f(ctx) }

// Generator sends a payload to a model and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, payload prompt.Payload) (string, error)
}

// GeneratorFactory returns a Generator for the given key and model.
type GeneratorFactory func(apiKey, model string) Generator

// Replacer writes the generated text back in place of the selection.
type Replacer interface {
	Replace(ctx context.Context, text string) error
}

// ReplacerFunc adapts a plain function to the Replacer interface.
type ReplacerFunc func(ctx context.Context, text string) error

// Replace calls the underlying function.
func (f ReplacerFunc) Replace(ctx context.Context, text string) error { return f(ctx, text) }

// DeprecatedHook runs when a rewrite is refused because of DeprecatedModel.
// It typically starts the model selection flow.
type DeprecatedHook func(ctx context.Context, apiKey string) error

// Orchestrator runs rewrites. It makes at most one model call per invocation
// and never retries.
type Orchestrator struct {
	resolver     *Resolver
	credentials  CredentialSource
	newGenerator GeneratorFactory
	onDeprecated DeprecatedHook
	log          *slog.Logger
	usage        usage.Tracker
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDeprecatedHook sets the hook run when the resolved model is deprecated.
func WithDeprecatedHook(h DeprecatedHook) Option {
	return func(o *Orchestrator) { o.onDeprecated = h }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(resolver *Resolver, creds CredentialSource, newGenerator GeneratorFactory, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolver:     resolver,
		credentials:  creds,
		newGenerator: newGenerator,
		log:          slog.Default(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Usage returns the token usage summed over every rewrite this Orchestrator
// has run.
func (o *Orchestrator) Usage() *usage.Tracker { return &o.usage }

// Rewrite runs one invocation: resolve config, validate the model, assemble
// the payload, call the model, and hand the result to dst. dst is called
// exactly once, and only after a successful generation. A nil dst only
// returns the text.
func (o *Orchestrator) Rewrite(ctx context.Context, req Request, dst Replacer) (string, error) {
	log := o.log.With("invocation", uuid.NewString())
	state := StateIdle

	fail := func(err error) (string, error) {
		log.DebugContext(ctx, "rewrite failed", "from", state, "error", err)
		return "", err
	}

	apiKey, err := o.credentials.APIKey(ctx)
	if err != nil {
		return fail(&Error{Kind: KindMissingCredential, Err: err})
	}
	if apiKey == "" {
		return fail(ErrMissingCredential)
	}

	cfg, source := o.resolver.resolve(apiKey)
	state = StateConfigResolved
	log.DebugContext(ctx, "config resolved", "model", cfg.Model, "source", source, "examples", len(cfg.Examples))

	if cfg.Model == DeprecatedModel {
		if o.onDeprecated != nil {
			if err := o.onDeprecated(ctx, apiKey); err != nil {
				log.WarnContext(ctx, "model selection after deprecated model failed", "error", err)
			}
		}
		return fail(&Error{Kind: KindDeprecatedModel, Model: cfg.Model})
	}
	state = StateValidated

	payload := Assemble(cfg, req)
	state = StateAssembled

	gen := o.newGenerator(cfg.APIKey, cfg.Model)

	start := time.Now()
	text, err := gen.Generate(ctx, payload)
	state = StateInvoked
	if err != nil {
		return fail(&Error{Kind: KindGeneration, Model: cfg.Model, Err: err})
	}

	attrs := []any{"model", cfg.Model, "duration", time.Since(start)}
	if ur, ok := gen.(modeladapter.UsageReporter); ok {
		if last, ok := ur.UsageTracker().Last(); ok {
			o.usage.Add(last)
			attrs = append(attrs,
				"tokens", last.String(),
				"total_tokens", o.usage.Total().Total(),
				"calls", o.usage.Count(),
			)
		}
	}
	log.InfoContext(ctx, "rewrite generated", attrs...)

	if dst != nil {
		if err := dst.Replace(ctx, text); err != nil {
			return fail(&Error{Kind: KindReplace, Err: err})
		}
	}

	log.DebugContext(ctx, "rewrite finished", "state", StateSucceeded)

	return text, nil
}
