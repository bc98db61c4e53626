package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/metrics"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP verification API",
	Long: `Serve exposes the verification pipeline over HTTP:

  POST /api/factcheck/text   {"text": "..."}
  POST /api/factcheck/url    {"url": "https://..."}
  POST /api/factcheck/image  {"image_url": "https://..."}
  GET  /health
  GET  /metrics

Example:
  claimlens serve
  claimlens serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	resolveCredentials(cfg)
	if err := requireAPIKey(cfg); err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logLevel := cfg.Server.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log, err := logger.NewLogger(cfg.Server.Env, logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	metrics.RegisterPipelineMetrics()

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(p, log)
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return err
	}

	log.Info("server stopped", zap.String("addr", cfg.Server.Addr))
	return nil
}
