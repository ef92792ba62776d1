package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/submit"
)

func newFillCmd() *cobra.Command {
	var (
		recordID   int64
		contextTag string
		submitURL  string
		withSchema bool
	)

	cmd := &cobra.Command{
		Use:   "fill [schema-file]",
		Short: "Fill a form interactively in the terminal",
		Long: "Fill walks the schema's fields as terminal prompts, enforces\n" +
			"required fields, and prints the collected values as JSON. With\n" +
			"--submit the values are POSTed to the given endpoint instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := resolveForm(cmd, args, recordID, contextTag)
			if err != nil {
				return err
			}

			renderer := tui.New()
			session, err := renderer.Fill(cmd.Context(), form, render.Options{})
			if err != nil {
				return err
			}

			if submitURL != "" {
				var options []submit.Option
				if withSchema {
					options = append(options, submit.WithSchemaBundled())
				}
				client := submit.NewClient(options...)
				if err := client.Post(cmd.Context(), submitURL, session); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "submitted to %s\n", submitURL)
				return nil
			}

			if err := session.Submit(cmd.Context()); err != nil {
				return err
			}
			payload, err := json.MarshalIndent(session.Values(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}

	cmd.Flags().Int64Var(&recordID, "id", 0, "load the schema from the store by record id")
	cmd.Flags().StringVar(&contextTag, "context", "", "load the active schema for a context tag from the store")
	cmd.Flags().StringVar(&submitURL, "submit", "", "POST the collected values to this endpoint")
	cmd.Flags().BoolVar(&withSchema, "bundle-schema", false, "include the serialized schema in the submission payload")

	return cmd
}
