package main

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/vidsense/internal/client"
	"github.com/nao1215/vidsense/internal/config"
	"github.com/nao1215/vidsense/internal/log"
	"github.com/spf13/cobra"
)

// addBackendFlags registers the flags every command talking to the backend
// shares.
func addBackendFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint,
		"Analyze endpoint of the sentiment analysis backend")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each backend request (0 waits indefinitely)")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy for backend requests (e.g., 127.0.0.1:1080)")
	cmd.Flags().StringToStringP("header", "H", nil,
		"Extra header sent to the backend, as Name=Value (repeatable)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .vidsense in current or home directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a validated Config for cmd.
//
// Values are layered as defaults, then the configuration file, then the
// flags the user set explicitly. Flag defaults never override the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if f := cmd.Flags().Lookup("config"); f != nil {
		cfg.ConfigFilePath = f.Value.String()
	}
	if _, err = config.Load(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("endpoint") {
		if cfg.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return nil, err
		}
	}
	if changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if changed("header") {
		headers, err := flags.GetStringToString("header")
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			cfg.Headers[k] = v
		}
	}
	if changed("content-analysis") {
		if cfg.ContentAnalysis, err = flags.GetBool("content-analysis"); err != nil {
			return nil, err
		}
	}
	if changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if changed("listen") {
		if cfg.ListenAddress, err = flags.GetString("listen"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// newClient creates the backend client described by cfg.
func newClient(cfg *config.Config) (*client.Client, error) {
	c, err := client.New(cfg.Endpoint,
		client.WithTimeout(cfg.Timeout),
		client.WithProxy(cfg.ProxyAddress),
		client.WithHeaders(cfg.Headers),
		client.WithUserAgent(cfg.UserAgent),
		client.WithMaxBodySize(cfg.MaxBodySize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return c, nil
}

// setupLogger creates the terminal logger for cmd and makes it the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		"endpoint", cfg.Endpoint,
		"timeout", cfg.Timeout,
		"proxy", cfg.ProxyAddress,
		"headers", cfg.Headers,
	)
	return logger
}
