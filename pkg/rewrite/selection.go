package rewrite

import (
	"context"
	"fmt"
)

// Chooser asks the user to pick one of the offered models.
type Chooser interface {
	Choose(ctx context.Context, models []string) (string, error)
}

// ChooserFunc adapts a plain function to the Chooser interface.
type ChooserFunc func(ctx context.Context, models []string) (string, error)

// Choose calls the underlying function.
func (f ChooserFunc) Choose(ctx context.Context, models []string) (string, error) {
	return f(ctx, models)
}

// SelectionFlow lists the rewrite-capable models, lets the user pick one, and
// applies the pick.
type SelectionFlow struct {
	Catalog  *Catalog
	Selector *Selector
	Chooser  Chooser
}

// Run executes the flow and returns the chosen model. An empty catalog is a
// KindEmptyCatalog error, distinct from a fetch failure.
func (f *SelectionFlow) Run(ctx context.Context, apiKey string) (string, error) {
	if apiKey == "" {
		return "", ErrMissingCredential
	}

	models, err := f.Catalog.ListRewriteCapable(ctx, apiKey)
	if err != nil {
		return "", err
	}

	if len(models) == 0 {
		return "", &Error{Kind: KindEmptyCatalog}
	}

	name, err := f.Chooser.Choose(ctx, models)
	if err != nil {
		return "", fmt.Errorf("rewrite: choose model: %w", err)
	}

	f.Selector.Apply(ctx, name)

	return name, nil
}
