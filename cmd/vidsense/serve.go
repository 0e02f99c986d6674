package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/vidsense/internal/config"
	"github.com/nao1215/vidsense/internal/log"
	"github.com/nao1215/vidsense/internal/web"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis form as a web page",
		Long: `Serve starts a web server with the video analysis form.

The page submits to the server itself, which forwards requests to the
analysis backend, so the browser never needs to reach the backend directly.
Prometheus metrics are exposed on /metrics and a health check on /health.

Examples:
  # Serve on the default address
  vidsense serve

  # Listen on all interfaces with structured JSON logs
  vidsense serve -l :8080 --log-json`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addBackendFlags(cmd)

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress,
		"Address the web server listens on")
	cmd.Flags().Bool("content-analysis", config.DefaultContentAnalysis,
		"Initial state of the content analysis checkbox")
	cmd.Flags().Bool("log-json", false,
		"Write request logs as JSON")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	if logJSON {
		logger = log.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}

	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.New(cfg.ListenAddress, c,
		web.WithLogger(logger),
		web.WithContentAnalysis(cfg.ContentAnalysis),
	)

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving on http://%s (backend %s)\n", cfg.ListenAddress, c.Endpoint())

	return srv.Run(ctx)
}
