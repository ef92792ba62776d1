package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/store"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage stored form schemas",
	}
	cmd.AddCommand(newSchemaSaveCmd())
	cmd.AddCommand(newSchemaGetCmd())
	cmd.AddCommand(newSchemaListCmd())
	cmd.AddCommand(newSchemaDeleteCmd())
	return cmd
}

func newSchemaSaveCmd() *cobra.Command {
	var (
		recordID   int64
		title      string
		contextTag string
		inactive   bool
	)

	cmd := &cobra.Command{
		Use:   "save <schema-file>",
		Short: "Save a schema file to the store",
		Long: "Save validates the schema file and writes it to the store.\n" +
			"Without --id a new record is created; with --id the existing\n" +
			"record is replaced and keeps its creation timestamp.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readSchemaFile(args[0])
			if err != nil {
				return err
			}
			blob, err := schema.Marshal(form)
			if err != nil {
				return err
			}

			s, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if title == "" {
				title = form.Title
			}
			if contextTag == "" {
				cfg, err := loadConfig(resolveConfigDir())
				if err != nil {
					return err
				}
				contextTag = cfg.GetString(cfgKeyContext)
			}

			record, err := s.Save(cmd.Context(), store.Record{
				ID:         recordID,
				Title:      title,
				SchemaJSON: string(blob),
				Context:    contextTag,
				IsActive:   !inactive,
			})
			if err != nil {
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd, record)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved schema %d (%s)\n", record.ID, record.Title)
			return nil
		},
	}

	cmd.Flags().Int64Var(&recordID, "id", 0, "update an existing record instead of creating one")
	cmd.Flags().StringVar(&title, "title", "", "record title (default: the schema's title)")
	cmd.Flags().StringVar(&contextTag, "context", "", "context tag the schema belongs to")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "save the record as inactive")

	return cmd
}

func newSchemaGetCmd() *cobra.Command {
	var contextTag string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Fetch a stored schema by id or context",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var recordID int64
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid record id %q", args[0])
				}
				recordID = id
			} else if contextTag == "" {
				return fmt.Errorf("name a record id or --context")
			}

			record, err := loadRecord(cmd, recordID, contextTag)
			if err != nil {
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd, record)
			}
			fmt.Fprintln(cmd.OutOrStdout(), record.SchemaJSON)
			return nil
		},
	}

	cmd.Flags().StringVar(&contextTag, "context", "", "fetch the active schema for a context tag")
	return cmd
}

func newSchemaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := s.List(cmd.Context())
			if err != nil {
				return err
			}

			if flags.jsonMode {
				return printJSON(cmd, records)
			}
			for _, record := range records {
				status := "active"
				if !record.IsActive {
					status = "inactive"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					record.ID, record.Title, record.Context, status,
					record.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newSchemaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}

			s, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := s.Delete(cmd.Context(), recordID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted schema %d\n", recordID)
			return nil
		},
	}
}

// loadRecord fetches a record by id, or the active record for a context tag
// when id is zero.
func loadRecord(cmd *cobra.Command, recordID int64, contextTag string) (store.Record, error) {
	s, closeStore, err := openStore()
	if err != nil {
		return store.Record{}, err
	}
	defer closeStore()

	if recordID != 0 {
		return s.Load(cmd.Context(), recordID)
	}
	return s.LoadByContext(cmd.Context(), contextTag)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
