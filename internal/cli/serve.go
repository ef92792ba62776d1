package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/internal/httpapi"
	"github.com/goliatone/go-formkit/internal/sqlite"
)

func newServeCmd() *cobra.Command {
	var (
		listenAddr string
		origins    []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the schema store HTTP service",
		Long: "Serve exposes the SQLite-backed schema store over HTTP:\n" +
			"create, update, fetch, list, delete, and server-side rendering\n" +
			"under /v1/schemas.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := loadConfig(resolveConfigDir())
			if err != nil {
				return err
			}
			if listenAddr == "" {
				listenAddr = cfg.GetString(cfgKeyListen)
			}

			db, err := sqlite.Open(resolveDBPath(cfg))
			if err != nil {
				return err
			}
			defer db.Close()

			controller, err := httpapi.NewSchemaController(db, logger)
			if err != nil {
				return err
			}

			server := httpapi.NewServer(
				[]httpapi.Controller{controller},
				httpapi.WithAddr(listenAddr),
				httpapi.WithLogger(logger),
				httpapi.WithAllowedOrigins(origins...),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Run()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (default: :8080)")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "allowed CORS origins (default: allow all)")

	return cmd
}
