package gemini

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ModelPrefix is the resource prefix the API puts on every model name.
const ModelPrefix = "models/"

// maxPages bounds pagination in case the server keeps returning a token.
const maxPages = 50

// Model describes one entry of the model catalog. The set of supported
// generation methods is controlled by the server and is treated as an open
// list of strings.
type Model struct {
	Name                       string   `json:"name"`
	BaseModelID                string   `json:"baseModelId,omitempty"`
	Version                    string   `json:"version,omitempty"`
	DisplayName                string   `json:"displayName,omitempty"`
	Description                string   `json:"description,omitempty"`
	InputTokenLimit            int      `json:"inputTokenLimit,omitempty"`
	OutputTokenLimit           int      `json:"outputTokenLimit,omitempty"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// Supports reports whether method is in the model's capability set.
func (m Model) Supports(method string) bool {
	return slices.Contains(m.SupportedGenerationMethods, method)
}

// ShortName returns the model name without the "models/" prefix.
func (m Model) ShortName() string {
	return strings.TrimPrefix(m.Name, ModelPrefix)
}

type listModelsResponse struct {
	Models        []Model `json:"models"`
	NextPageToken string  `json:"nextPageToken"`
}

// ListModels fetches the whole model catalog, following page tokens.
// Any failing page fails the call; no partial list is returned.
func (a *Adapter) ListModels(ctx context.Context) ([]Model, error) {
	var (
		models []Model
		token  string
	)

	for range maxPages {
		q := url.Values{}
		q.Set("pageSize", "1000")
		if token != "" {
			q.Set("pageToken", token)
		}

		var page listModelsResponse
		if err := a.GetJSON(ctx, "/v1beta/models?"+q.Encode(), &page); err != nil {
			return nil, fmt.Errorf("gemini: list models: %w", err)
		}

		models = append(models, page.Models...)

		if page.NextPageToken == "" {
			return models, nil
		}
		token = page.NextPageToken
	}

	return nil, fmt.Errorf("gemini: list models: more than %d pages", maxPages)
}
