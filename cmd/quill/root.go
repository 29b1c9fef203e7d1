package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/germanamz/quill/pkg/providers/gemini"
	"github.com/germanamz/quill/pkg/quilldir"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/germanamz/quill/pkg/secrets"
	"github.com/germanamz/quill/pkg/settings"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// baseURLEnv overrides the Gemini API base URL.
const baseURLEnv = "QUILL_BASE_URL"

type rootOptions struct {
	configDir string
	workspace string
	envFile   string
	baseURL   string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Rewrite selected text with a Gemini model",
		Long: `quill rewrites a text selection with a Gemini model, guided by a
configured instruction and few-shot examples, and replaces the selection with
the result.

Quick Start:
  quill auth                         # store your Gemini API key
  quill rewrite notes.md --lines 3:7 # rewrite lines 3-7 in place
  echo "some text" | quill rewrite   # rewrite stdin to stdout
  quill select                       # pick a model interactively`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDotEnv(opts.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "global configuration directory (default: user config dir/quill)")
	cmd.PersistentFlags().StringVar(&opts.workspace, "workspace", ".", "project directory whose .quill/config.yaml overrides the global settings")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "path to .env file (ignored if missing)")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Gemini API base URL (default: $"+baseURLEnv+" or the public endpoint)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(
		newRewriteCmd(opts),
		newModelsCmd(opts),
		newSelectCmd(opts),
		newAuthCmd(opts),
		newConfigCmd(opts),
		newServeCmd(opts),
	)

	return cmd
}

// loadDotEnv loads environment variables from path. A missing file is not an
// error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolveBaseURL picks the API base URL: flag, then environment. An empty
// result lets the adapter use its default.
func resolveBaseURL(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	return getenv(baseURLEnv)
}

// app holds the components shared by the subcommands for one process.
type app struct {
	log       *slog.Logger
	global    quilldir.Dir
	workspace quilldir.Dir
	settings  *settings.Store
	secrets   *secrets.Store
	session   *rewrite.Session
	resolver  *rewrite.Resolver
	catalog   *rewrite.Catalog
	selector  *rewrite.Selector
	baseURL   string
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	global := quilldir.New(opts.configDir)
	if opts.configDir == "" {
		var err error
		if global, err = quilldir.Global(); err != nil {
			return nil, err
		}
	}
	workspace := quilldir.Workspace(opts.workspace)

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store := settings.New(global.ConfigPath(), settings.WithWorkspace(workspace.ConfigPath()))
	session := rewrite.NewSession()
	baseURL := resolveBaseURL(opts.baseURL, os.Getenv)

	return &app{
		log:       log,
		global:    global,
		workspace: workspace,
		settings:  store,
		secrets:   secrets.New(global.CredentialsPath()),
		session:   session,
		resolver:  rewrite.NewResolver(session, store, log),
		catalog: rewrite.NewCatalog(func(apiKey string) rewrite.ModelLister {
			return gemini.New(baseURL, apiKey, "")
		}),
		selector: rewrite.NewSelector(session, store, log),
		baseURL:  baseURL,
		stdin:    cmd.InOrStdin(),
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
	}, nil
}

func (a *app) newGenerator(apiKey, model string) rewrite.Generator {
	return gemini.New(a.baseURL, apiKey, model)
}

func (a *app) orchestrator(creds rewrite.CredentialSource, opts ...rewrite.Option) *rewrite.Orchestrator {
	opts = append([]rewrite.Option{rewrite.WithLogger(a.log)}, opts...)
	return rewrite.NewOrchestrator(a.resolver, creds, a.newGenerator, opts...)
}

// promptingCredentials returns the stored key. When none is stored and stdin
// is a terminal it asks for one with the auth form and saves it.
func (a *app) promptingCredentials() rewrite.CredentialSource {
	return rewrite.CredentialFunc(func(ctx context.Context) (string, error) {
		key, err := a.secrets.APIKey(ctx)
		if err != nil || key != "" || !isTerminal(a.stdin) {
			return key, err
		}

		fmt.Fprintln(a.stderr, warnStyle.Render("No Gemini API key is stored yet."))

		if key, err = askAPIKey(ctx); err != nil {
			return "", err
		}
		if err := a.secrets.Save(key); err != nil {
			a.log.WarnContext(ctx, "API key not saved", "error", err)
		}

		return key, nil
	})
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (a *app) selectionFlow(chooser rewrite.Chooser) *rewrite.SelectionFlow {
	return &rewrite.SelectionFlow{
		Catalog:  a.catalog,
		Selector: a.selector,
		Chooser:  chooser,
	}
}
