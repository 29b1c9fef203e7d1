package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/germanamz/quill/pkg/editor"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/spf13/cobra"
)

type rewriteOptions struct {
	lines    string
	prompt   string
	showDiff bool
	yes      bool
}

func newRewriteCmd(root *rootOptions) *cobra.Command {
	opts := &rewriteOptions{}

	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Rewrite a selection of a file, or stdin to stdout",
		Long: `Rewrite sends the selected text to the configured model and replaces the
selection with the result. With a file, --lines picks the selection (a:b, a:, or
a; the whole file by default) and the file is rewritten in place after
confirmation. Without a file, stdin is rewritten to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if opts.lines != "" {
					return errors.New("--lines requires a file")
				}
				return a.rewriteStream(cmd.Context(), opts)
			}

			return a.rewriteFile(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.lines, "lines", "", "line range to rewrite: a:b, a:, or a (1-based, inclusive)")
	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "instruction for this rewrite only, replacing the configured prompt")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "print a unified diff of the change before replacing")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "replace without asking for confirmation")

	return cmd
}

func (a *app) rewriteStream(ctx context.Context, opts *rewriteOptions) error {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	_, err = a.orchestrator(a.secrets, rewrite.WithDeprecatedHook(a.reselect)).Rewrite(ctx,
		rewrite.Request{Text: string(data), Prompt: opts.prompt},
		editor.WriterTarget{W: a.stdout},
	)

	return err
}

func (a *app) rewriteFile(ctx context.Context, path string, opts *rewriteOptions) error {
	lr, err := editor.ParseLineRange(opts.lines)
	if err != nil {
		return err
	}

	doc, err := editor.Open(path, lr)
	if err != nil {
		return err
	}

	replaced := false
	dst := rewrite.ReplacerFunc(func(ctx context.Context, text string) error {
		if opts.showDiff {
			fmt.Fprint(a.stdout, doc.Preview(text))
		}

		if !opts.yes {
			ok, err := confirmReplace(ctx, path)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		if err := doc.Replace(ctx, text); err != nil {
			return err
		}
		replaced = true

		return nil
	})

	_, err = a.orchestrator(a.promptingCredentials(), rewrite.WithDeprecatedHook(a.reselect)).Rewrite(ctx,
		rewrite.Request{Text: doc.Selection(), Prompt: opts.prompt},
		dst,
	)
	if err != nil {
		return err
	}

	if replaced {
		fmt.Fprintln(a.stdout, successStyle.Render("rewrote "+path))
	} else {
		fmt.Fprintln(a.stdout, dimStyle.Render(path+" left unchanged"))
	}

	return nil
}

// reselect runs when the configured model is deprecated. It lets the user
// pick a replacement so the next rewrite can proceed.
func (a *app) reselect(ctx context.Context, apiKey string) error {
	fmt.Fprintln(a.stderr, warnStyle.Render("The configured model is deprecated. Pick a replacement, then run the rewrite again."))

	name, err := a.selectionFlow(rewrite.ChooserFunc(chooseModel)).Run(ctx, apiKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stderr, successStyle.Render("now using "+name))

	return nil
}
