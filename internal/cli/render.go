package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func newRenderCmd() *cobra.Command {
	var (
		recordID   int64
		contextTag string
		endpoint   string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "render [schema-file]",
		Short: "Render a form schema to HTML",
		Long: "Render reads a schema from a JSON or YAML file, or from the\n" +
			"schema store via --id or --context, and writes the vanilla HTML\n" +
			"rendering to stdout or --out.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := resolveForm(cmd, args, recordID, contextTag)
			if err != nil {
				return err
			}

			var options []vanilla.Option
			if endpoint != "" {
				options = append(options, vanilla.WithEndpoint(endpoint))
			}
			renderer, err := vanilla.New(options...)
			if err != nil {
				return err
			}

			markup, err := renderer.Render(cmd.Context(), form, render.Options{})
			if err != nil {
				return err
			}

			if outPath != "" {
				return os.WriteFile(outPath, markup, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(markup)
			return err
		},
	}

	cmd.Flags().Int64Var(&recordID, "id", 0, "load the schema from the store by record id")
	cmd.Flags().StringVar(&contextTag, "context", "", "load the active schema for a context tag from the store")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "form action URL baked into the rendered markup")
	cmd.Flags().StringVar(&outPath, "out", "", "write the rendering to a file instead of stdout")

	return cmd
}

// resolveForm loads a form from a file argument, or from the schema store
// when --id or --context is given. Exactly one source must be named.
func resolveForm(cmd *cobra.Command, args []string, recordID int64, contextTag string) (schema.Form, error) {
	switch {
	case len(args) == 1:
		return readSchemaFile(args[0])
	case recordID != 0:
		record, err := loadRecord(cmd, recordID, "")
		if err != nil {
			return schema.Form{}, err
		}
		return schema.Parse([]byte(record.SchemaJSON))
	case contextTag != "":
		record, err := loadRecord(cmd, 0, contextTag)
		if err != nil {
			return schema.Form{}, err
		}
		return schema.Parse([]byte(record.SchemaJSON))
	}
	return schema.Form{}, fmt.Errorf("name a schema file, --id, or --context")
}

// readSchemaFile parses a schema file; YAML is selected by file extension.
func readSchemaFile(path string) (schema.Form, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return schema.Form{}, fmt.Errorf("read schema: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.ParseYAML(blob)
	default:
		return schema.Parse(blob)
	}
}
