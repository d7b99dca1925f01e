package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/spendy-app/spendy/internal/ingest"
	"github.com/spendy-app/spendy/internal/session"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Analyze OFX/QFX bank statements",
		Long: `Parse OFX or QFX (Quicken) statements exported from your bank and feed
their debit transactions into an analysis session.

Examples:
  # Single statement
  spendy import-ofx ~/Downloads/bank_jan_2026.qfx

  # Everything in a directory
  spendy import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().Bool("finish", false, "save the analysis as a snapshot and reset the session")
	cmd.Flags().StringSlice("exclude", nil, "categories to exclude from the displayed aggregate")
	cmd.Flags().Bool("icons", false, "generate persona icons for the result")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sess := session.New(store)
	reader := ingest.NewOFXReader()

	bar := progressbar.Default(int64(len(files)), "OFX 처리 중")
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			_ = bar.Add(1)
			continue
		}

		rows, err := reader.Parse(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			_ = bar.Add(1)
			continue
		}

		added := sess.Ingest(rows)
		slog.Info("Processed file", "file", filepath.Base(path), "rows", added)
		_ = bar.Add(1)
	}

	return showResult(cmd, ctx, store, sess)
}

// expandGlobs resolves glob patterns into concrete file paths. A pattern
// with no matches is still accepted when it names an existing file.
func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
