package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/quill/pkg/providers/gemini"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/spf13/cobra"
)

func newSelectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select [model]",
		Short: "Choose the model used for rewrites",
		Long: `Select makes a model the one used for rewrites and saves it in the global
settings. Without an argument it lists the models that can rewrite text and
lets you pick one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return a.selectModel(cmd.Context(), args[0])
			}

			key, err := a.apiKey(cmd.Context())
			if err != nil {
				return err
			}

			name, err := a.selectionFlow(rewrite.ChooserFunc(chooseModel)).Run(cmd.Context(), key)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.stdout, successStyle.Render("now using "+name))

			return nil
		},
	}
}

func (a *app) selectModel(ctx context.Context, name string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), gemini.ModelPrefix)
	if name == "" {
		return errors.New("model name is required")
	}

	switch out := a.selector.Apply(ctx, name); out {
	case rewrite.Persisted:
		fmt.Fprintln(a.stdout, successStyle.Render("now using "+name))
	default:
		fmt.Fprintln(a.stdout, warnStyle.Render(fmt.Sprintf("using %s for this run only (%s)", name, out)))
	}

	return nil
}
