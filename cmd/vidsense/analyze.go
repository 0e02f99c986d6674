package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/vidsense/internal/config"
	"github.com/nao1215/vidsense/internal/console"
	"github.com/nao1215/vidsense/internal/form"
	"github.com/nao1215/vidsense/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [video-url]",
		Short: "Analyze the sentiment of a video and its comments",
		Long: `Analyze sends a video URL to the sentiment analysis backend and prints
the report it returns.

The backend fetches the video's comments and classifies their sentiment.
With content analysis enabled (the default) it also transcribes and
classifies the video itself, which takes considerably longer.

Examples:
  # Analyze a single video
  vidsense analyze https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Comments only, rendered as Markdown into a file
  vidsense analyze --content-analysis=false -f markdown -o report.md https://youtu.be/dQw4w9WgXcQ

  # Read URLs from a prompt until "quit"
  vidsense analyze -i

  # Use a backend on another host
  vidsense analyze -e http://gpu-box:8000/analyze https://youtu.be/dQw4w9WgXcQ`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	addBackendFlags(cmd)

	cmd.Flags().Bool("content-analysis", config.DefaultContentAnalysis,
		"Also analyze the video content, not only its comments")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Report format: json, markdown or text")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("interactive", "i", false,
		"Read video URLs from standard input until EOF or \"quit\"")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}

	var url string
	if len(args) > 0 {
		url = args[0]
	}

	logger := setupLogger(cmd, cfg)

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, h, err := newConsoleForm(cmd, cfg, url, logger)
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(ctx, cmd, f, h, url != "")
	}

	outcome := h.Submit(ctx)
	if err := f.Err(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Debug("submission finished", "outcome", outcome)

	if outcome != form.OutcomeReport {
		return errReported
	}
	return nil
}

// newConsoleForm binds a form.Handler to terminal elements.
func newConsoleForm(cmd *cobra.Command, cfg *config.Config, url string, logger *slog.Logger) (*console.Form, *form.Handler, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	formatter, err := report.NewFormatter(format)
	if err != nil {
		return nil, nil, err
	}

	f, err := console.NewForm(console.Options{
		URL:             url,
		ContentAnalysis: cfg.ContentAnalysis,
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
		ReportFile:      cfg.ReportFile,
	})
	if err != nil {
		return nil, nil, err
	}

	h, err := form.New(f.Elements(), c,
		form.WithFormatter(formatter),
		form.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return f, h, nil
}

// runInteractive submits the initial URL, if any, then reads more URLs from
// standard input. Failed submissions do not end the session.
func runInteractive(ctx context.Context, cmd *cobra.Command, f *console.Form, h *form.Handler, submitFirst bool) error {
	var first console.Summary
	if submitFirst {
		switch h.Submit(ctx) {
		case form.OutcomeReport:
			first.Reports++
		case form.OutcomeError:
			first.Errors++
		case form.OutcomeInvalid:
			first.Invalid++
		}
	}

	sum, err := console.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr()).Run(ctx, f, h)
	sum.Reports += first.Reports
	sum.Errors += first.Errors
	sum.Invalid += first.Invalid

	fmt.Fprintf(cmd.ErrOrStderr(), "\n%d submitted: %d reports, %d errors, %d invalid\n",
		sum.Total(), sum.Reports, sum.Errors, sum.Invalid)

	if err != nil && ctx.Err() == nil {
		return err
	}
	if werr := f.Err(); werr != nil {
		return fmt.Errorf("failed to write report: %w", werr)
	}
	return nil
}
