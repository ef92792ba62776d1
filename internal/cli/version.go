package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	formkit "github.com/goliatone/go-formkit"
)

const modulePath = "github.com/goliatone/go-formkit"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the formkit version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "formkit v%s\nmodule: %s\n", formkit.Version, modulePath)
			return nil
		},
	}
}
