// Package cli implements the formkit command-line interface: rendering,
// interactive fill, schema storage, OpenAPI import, and the HTTP service.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/internal/sqlite"
	"github.com/goliatone/go-formkit/pkg/store"
)

const exitUserError = 1

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	storeURL  string
	dbPath    string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "formkit" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formkit",
		Short: "Build, render, and persist dynamic form schemas",
		Long: "Formkit turns form schemas into rendered forms: HTML output,\n" +
			"interactive terminal fill sessions, OpenAPI imports, and a\n" +
			"schema store reachable over SQLite or a remote REST service.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .formkit)")
	root.PersistentFlags().StringVar(&flags.storeURL, "store", "", "base URL of a remote schema store (overrides --db)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "path to the local SQLite schema store (default: .formkit/forms.db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newFillCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newServeCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// openStore resolves the schema store for the current invocation: a remote
// REST store when --store (or the config key) names one, the local SQLite
// database otherwise. The returned closer is a no-op for remote stores.
func openStore() (store.Store, func() error, error) {
	cfg, err := loadConfig(resolveConfigDir())
	if err != nil {
		return nil, nil, err
	}

	baseURL := flags.storeURL
	if baseURL == "" {
		baseURL = cfg.GetString(cfgKeyStore)
	}
	if baseURL != "" {
		remote, err := store.NewRESTStore(baseURL)
		if err != nil {
			return nil, nil, err
		}
		return remote, func() error { return nil }, nil
	}

	local, err := sqlite.Open(resolveDBPath(cfg))
	if err != nil {
		return nil, nil, err
	}
	return local, local.Close, nil
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("FORMKIT_CONFIG_DIR"); v != "" {
		return v
	}
	return ".formkit"
}
