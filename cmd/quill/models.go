package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/germanamz/quill/pkg/providers/gemini"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newModelsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models that can rewrite text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			return a.listModels(cmd.Context())
		},
	}
}

func (a *app) listModels(ctx context.Context) error {
	key, err := a.apiKey(ctx)
	if err != nil {
		return err
	}

	models, err := a.catalog.Models(ctx, key)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return rewrite.ErrEmptyCatalog
	}

	current := a.resolver.Resolve(key).Model
	fmt.Fprint(a.stdout, formatModels(models, current))

	return nil
}

// apiKey returns the stored key or a missing-credential error.
func (a *app) apiKey(ctx context.Context) (string, error) {
	key, err := a.secrets.APIKey(ctx)
	if err != nil {
		return "", &rewrite.Error{Kind: rewrite.KindMissingCredential, Err: err}
	}
	if key == "" {
		return "", rewrite.ErrMissingCredential
	}
	return key, nil
}

// formatModels renders one model per line: a marker for the current model,
// the short name padded to a common width, and the display name.
func formatModels(models []gemini.Model, current string) string {
	width := 0
	for _, m := range models {
		width = max(width, runewidth.StringWidth(m.ShortName()))
	}

	var b strings.Builder
	for _, m := range models {
		name := m.ShortName()

		head := "  " + runewidth.FillRight(name, width)
		if name == current {
			head = currentStyle.Render("* " + runewidth.FillRight(name, width))
		}
		b.WriteString(head)

		if m.DisplayName != "" {
			b.WriteString("  " + dimStyle.Render(m.DisplayName))
		}
		b.WriteByte('\n')
	}

	return b.String()
}
