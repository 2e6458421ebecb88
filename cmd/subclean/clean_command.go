package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subclean/internal/config"
	"subclean/internal/fileutil"
	"subclean/internal/history"
	"subclean/internal/logging"
	"subclean/internal/subtitles"
)

type cleanFlags struct {
	report      bool
	jsonOutput  bool
	stripAds    bool
	history     bool
	maxPasses   int
	convergence string
}

func (f *cleanFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.report, "report", false, "Print a table of every removed line")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print the run summary as JSON")
	cmd.Flags().BoolVar(&f.stripAds, "strip-ads", false, "Drop advertisement cues before cleaning")
	cmd.Flags().BoolVar(&f.history, "history", false, "Record this run in the history database")
	cmd.Flags().IntVar(&f.maxPasses, "max-passes", 0, "Maximum duplicate-removal passes (count convergence)")
	cmd.Flags().StringVar(&f.convergence, "convergence", "", `Stop rule: "count" or "content"`)
}

type cleanSettings struct {
	options subtitles.Options
	report  bool
	json    bool
	history bool
}

// resolve merges explicitly set flags over the loaded configuration.
func (f *cleanFlags) resolve(cmd *cobra.Command, cfg *config.Config) (cleanSettings, error) {
	settings := cleanSettings{
		options: subtitles.Options{
			MaxPasses:           cfg.Cleaning.MaxPasses,
			Convergence:         subtitles.Convergence(cfg.Cleaning.Convergence),
			StripAdvertisements: cfg.Cleaning.StripAdvertisements,
		},
		report:  cfg.Output.Report,
		json:    f.jsonOutput,
		history: cfg.History.Enabled,
	}

	changed := cmd.Flags().Changed
	if changed("report") {
		settings.report = f.report
	}
	if changed("strip-ads") {
		settings.options.StripAdvertisements = f.stripAds
	}
	if changed("history") {
		settings.history = f.history
	}
	if changed("max-passes") {
		if f.maxPasses < 1 {
			return cleanSettings{}, fmt.Errorf("--max-passes must be at least 1, got %d", f.maxPasses)
		}
		settings.options.MaxPasses = f.maxPasses
	}
	if changed("convergence") {
		mode := strings.ToLower(strings.TrimSpace(f.convergence))
		switch mode {
		case config.ConvergenceCount, config.ConvergenceContent:
			settings.options.Convergence = subtitles.Convergence(mode)
		default:
			return cleanSettings{}, fmt.Errorf("--convergence must be %q or %q, got %q", config.ConvergenceCount, config.ConvergenceContent, f.convergence)
		}
	}
	return settings, nil
}

type cleanSummary struct {
	RunID  string `json:"run_id"`
	Input  string `json:"input"`
	Output string `json:"output"`
	subtitles.CleanStats
}

func runClean(cmd *cobra.Command, ctx *commandContext, flags *cleanFlags, inputPath, outputPath string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	settings, err := flags.resolve(cmd, cfg)
	if err != nil {
		return err
	}
	baseLogger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	runCtx := logging.WithRunID(cmd.Context(), runID)
	logger := logging.WithContext(runCtx, baseLogger)
	started := time.Now()

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return reportProcessingError(cmd, logger, err)
	}

	cleaned, stats := subtitles.NewCleaner(settings.options, logger).Clean(raw)

	if err := fileutil.WriteFileAtomic(outputPath, []byte(cleaned), 0o644); err != nil {
		return reportProcessingError(cmd, logger, err)
	}

	if settings.history {
		recordRun(runCtx, cfg, logger, history.Run{
			RunID:                 runID,
			StartedAt:             started,
			InputPath:             absPath(inputPath),
			OutputPath:            absPath(outputPath),
			InputSHA256:           digest(raw),
			Convergence:           string(settings.options.Convergence),
			OriginalEntries:       stats.OriginalEntries,
			CleanedEntries:        stats.CleanedEntries,
			Passes:                stats.Passes,
			TrimmedLines:          stats.TrimmedLines,
			DroppedEntries:        stats.DroppedEntries,
			RemovedAdvertisements: stats.RemovedAdvertisements,
			Duration:              time.Since(started),
		})
	}

	if settings.json {
		return printJSON(cmd.OutOrStdout(), cleanSummary{RunID: runID, Input: inputPath, Output: outputPath, CleanStats: stats})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully cleaned subtitles from %s to %s\n", inputPath, outputPath)
	fmt.Fprintf(out, "Original entries: %d, Cleaned entries: %d\n", stats.OriginalEntries, stats.CleanedEntries)
	if settings.report {
		fmt.Fprintln(out, renderRemovalReport(out, stats.Removals))
	}
	return nil
}

func reportProcessingError(cmd *cobra.Command, logger *slog.Logger, err error) error {
	logger.Debug("processing failed", logging.Error(err))
	fmt.Fprintf(cmd.OutOrStdout(), "Error processing file: %v\n", err)
	return reportedError{err: err}
}

// recordRun stores the run in history. Failures are logged, never fatal: the
// output file is already written.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run history.Run) {
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String("path", cfg.History.Path),
			logging.String(logging.FieldErrorHint, "check history.path or delete the database"),
			logging.String(logging.FieldImpact, "this run was not recorded"),
		)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "failed to record run", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run was not recorded"),
		)
		return
	}
	logger.Debug("run recorded", logging.String("path", store.Path()))
}

func digest(raw []byte) string {
	sum, err := fileutil.SHA256Hex(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	return sum
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
