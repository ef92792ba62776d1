package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func newImportCmd() *cobra.Command {
	var (
		operationID string
		title       string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "import <openapi-file>",
		Short: "Derive a form schema from an OpenAPI operation",
		Long: "Import reads an OpenAPI 3 document, finds the operation named\n" +
			"by --operation, and converts its JSON request body into a form\n" +
			"schema written to stdout or --out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			form, err := openapi.Import(cmd.Context(), document, operationID)
			if err != nil {
				return err
			}
			if title != "" {
				form.Title = title
			}

			blob, err := schema.MarshalIndent(form)
			if err != nil {
				return err
			}

			if outPath != "" {
				return os.WriteFile(outPath, blob, 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(blob))
			return nil
		},
	}

	cmd.Flags().StringVar(&operationID, "operation", "", "operationId of the OpenAPI operation to import")
	cmd.Flags().StringVar(&title, "title", "", "override the derived form title")
	cmd.Flags().StringVar(&outPath, "out", "", "write the schema to a file instead of stdout")
	cmd.MarkFlagRequired("operation")

	return cmd
}
