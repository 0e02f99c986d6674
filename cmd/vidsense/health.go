package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis backend is up",
		Long: `Health queries the backend's health endpoint, which lives next to the
analyze endpoint (http://127.0.0.1:8000/health by default).

The command exits with a non-zero status unless the backend reports "ok".`,
		Args: cobra.NoArgs,
		RunE: runHealthCmd,
	}

	addBackendFlags(cmd)

	return cmd
}

// runHealthCmd executes the health command.
func runHealthCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	status, err := c.Health(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.HealthURL(), status)
	if err != nil {
		logger.Debug("health check failed", "url", c.HealthURL(), "error", err)
		return fmt.Errorf("%w: %w", status.Error(), err)
	}
	return nil
}
