package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/germanamz/quill/pkg/secrets"
	"github.com/spf13/cobra"
)

func newAuthCmd(root *rootOptions) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store the Gemini API key",
		Long: `Auth prompts for a Gemini API key and stores it in the credentials file
of the global configuration directory, readable only by you. The ` + secrets.EnvVar + `
environment variable takes precedence over the stored key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, root)
			if err != nil {
				return err
			}

			var key string
			if fromStdin {
				line, err := bufio.NewReader(a.stdin).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read API key: %w", err)
				}
				key = strings.TrimSpace(line)
			} else {
				if key, err = askAPIKey(cmd.Context()); err != nil {
					return err
				}
			}

			if err := a.global.Ensure(); err != nil {
				return err
			}
			if err := a.secrets.Save(key); err != nil {
				return err
			}

			fmt.Fprintln(a.stdout, successStyle.Render("saved API key "+secrets.Mask(key)))

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the key from the first line of stdin instead of prompting")

	return cmd
}
