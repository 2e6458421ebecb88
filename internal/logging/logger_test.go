package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subclean/internal/config"
	"subclean/internal/logging"
)

func TestNewFromConfigDefaultsToWarn(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer

	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hidden info")
	logger.Warn("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden info") {
		t.Fatalf("expected info to be filtered at default level, got %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "visible warning") {
		t.Fatalf("expected warning line, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no colour for non-terminal writer, got %q", out)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerRendersComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "cleaner")
	component.Info("cleaned", logging.Int("passes", 2), logging.String("input", "my file.srt"))

	out := buf.String()
	if !strings.Contains(out, "INFO [cleaner] – cleaned") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "    - passes: 2\n") {
		t.Fatalf("expected passes field, got %q", out)
	}
	if !strings.Contains(out, `    - input: "my file.srt"`) {
		t.Fatalf("expected quoted input field, got %q", out)
	}
}

func TestColorOptionWrapsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf, Color: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("boom")
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI colour codes, got %q", buf.String())
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["msg"] != "json message" || record["level"] != "info" || record["k"] != "v" {
		t.Fatalf("unexpected json record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "invalid", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("should be filtered")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestFileOutputReceivesJSONCopy(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "subclean.log")
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("tee message")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"tee message"`) {
		t.Fatalf("expected json line in file, got %q", content)
	}
	if !strings.Contains(buf.String(), "tee message") {
		t.Fatalf("expected console copy, got %q", buf.String())
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "0f8c2a4e-run")
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldRunID] != "0f8c2a4e-run" {
		t.Fatalf("expected run id field, got %v", record)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
		logging.String(logging.FieldErrorHint, "check history.path"))
	if strings.Count(buf.String(), logging.FieldErrorHint) != 1 {
		t.Fatalf("expected a single error_hint key, got %q", buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldEventType] != "history_open_failed" {
		t.Fatalf("unexpected event type: %v", record)
	}
	if record[logging.FieldErrorHint] != "check history.path" {
		t.Fatalf("expected caller hint to be preserved: %v", record)
	}
	if record[logging.FieldImpact] == nil {
		t.Fatalf("expected default impact: %v", record)
	}
}

func TestConsoleLoggerLiftsRunPassAndEntry(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "1a2b3c4d-5e6f-4a5b-8c9d-0e1f2a3b4c5d")
	cleaner := logging.NewComponentLogger(logging.WithContext(ctx, logger), "cleaner")
	cleaner.Info("duplicate line trimmed", logging.Pass(2), logging.Entry(7), logging.String("line", "World"))

	out := buf.String()
	if !strings.Contains(out, "INFO [cleaner] run 1a2b3c4d pass 2 entry 7 – duplicate line trimmed") {
		t.Fatalf("unexpected header: %q", out)
	}
	if strings.Contains(out, "- pass:") || strings.Contains(out, "- run_id:") {
		t.Fatalf("expected header fields not to repeat as lines, got %q", out)
	}
	if !strings.Contains(out, "    - line: World\n") {
		t.Fatalf("expected line field, got %q", out)
	}
}

func TestConsoleLoggerPrefixesGroupedFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.WithGroup("stats").With(logging.Int("passes", 3)).Info("done", logging.Int("trimmed", 1))

	out := buf.String()
	if !strings.Contains(out, "    - stats.passes: 3\n") || !strings.Contains(out, "    - stats.trimmed: 1\n") {
		t.Fatalf("expected group prefix on fields, got %q", out)
	}
}

func TestFileCopyAppliesItsOwnFilter(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "subclean.log")
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "cli").Debug("filtered")
	logging.NewComponentLogger(logger, "cli").Warn("kept")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "filtered") || strings.Contains(buf.String(), "filtered") {
		t.Fatalf("expected debug record to be dropped everywhere")
	}
	if !strings.Contains(string(content), `"component":"cli"`) {
		t.Fatalf("expected bound attrs in file copy, got %q", content)
	}
	if !strings.Contains(buf.String(), "WARN [cli] – kept") {
		t.Fatalf("expected console copy, got %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.NewComponentLogger(nil, "x").Error("dropped")
}
