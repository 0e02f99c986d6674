package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errReported is returned by commands that have already shown their
// failure to the user. Execute exits non-zero without printing it again.
var errReported = errors.New("failure already reported")

// NewRootCmd creates the root command for vidsense.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidsense",
		Short: "Sentiment analysis front end for online videos",
		Long: `vidsense sends a video URL to a sentiment analysis backend and shows the
report it returns.

The backend is expected at http://127.0.0.1:8000/analyze by default.
Use --endpoint or a .vidsense configuration file to point elsewhere.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
