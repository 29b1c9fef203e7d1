package main

import (
	"context"
	"fmt"
	"io"

	"github.com/germanamz/quill/pkg/secrets"
	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			return a.showConfig(cmd.Context())
		},
	}
}

func (a *app) showConfig(ctx context.Context) error {
	key, err := a.secrets.APIKey(ctx)
	if err != nil {
		return err
	}

	cfg := a.resolver.Resolve(key)

	apiKey := dimStyle.Render("(not set)")
	if key != "" {
		apiKey = secrets.Mask(key)
	}

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = dimStyle.Render("(none)")
	}

	w := a.stdout
	field(w, "global config", a.global.ConfigPath())
	field(w, "workspace config", a.workspace.ConfigPath())
	field(w, "api key", apiKey)
	field(w, "model", cfg.Model)
	field(w, "prompt", prompt)
	field(w, "examples", fmt.Sprintf("%d", len(cfg.Examples)))
	for _, ex := range cfg.Examples {
		fmt.Fprintf(w, "  %s -> %s\n", truncate(ex.Input, 40), truncate(ex.Output, 40))
	}

	return nil
}

func field(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%-17s %s\n", name+":", value)
}
