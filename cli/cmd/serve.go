package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cubeworks/cubeinsight/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Routes:
  POST /api/v1/analyze   resolve a natural-language question
  GET  /api/v1/presets   curated question catalog
  GET  /health           liveness probe
  GET  /metrics          Prometheus metrics

Examples:
  cubeinsight serve
  CUBEINSIGHT_SERVER_ADDRESS=:9090 cubeinsight serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, store, resolver, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	server := api.NewServer(resolver)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Server.Address)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		return server.Shutdown()
	}
}
