package rewrite

import (
	"context"

	"github.com/germanamz/quill/pkg/providers/gemini"
)

// ModelLister fetches the remote model catalog.
type ModelLister interface {
	ListModels(ctx context.Context) ([]gemini.Model, error)
}

// ListerFactory returns a ModelLister authenticated with apiKey.
type ListerFactory func(apiKey string) ModelLister

// Catalog lists the models that can rewrite text.
type Catalog struct {
	newLister ListerFactory
}

// NewCatalog creates a Catalog.
func NewCatalog(newLister ListerFactory) *Catalog {
	return &Catalog{newLister: newLister}
}

// Models returns the catalog entries whose capability set includes
// generateContent. A transport or HTTP failure is a KindCatalogFetch error;
// an empty result is not an error.
func (c *Catalog) Models(ctx context.Context, apiKey string) ([]gemini.Model, error) {
	all, err := c.newLister(apiKey).ListModels(ctx)
	if err != nil {
		return nil, &Error{Kind: KindCatalogFetch, Err: err}
	}

	capable := make([]gemini.Model, 0, len(all))
	for _, m := range all {
		if m.Supports(gemini.GenerateContent) {
			capable = append(capable, m)
		}
	}

	return capable, nil
}

// ListRewriteCapable returns the names of the rewrite-capable models with the
// "models/" prefix removed.
func (c *Catalog) ListRewriteCapable(ctx context.Context, apiKey string) ([]string, error) {
	models, err := c.Models(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.ShortName()
	}

	return names, nil
}
