package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"subclean/internal/testsupport"
)

var rollingCues = []testsupport.Cue{
	{Start: "00:00:01,000", End: "00:00:02,000", Lines: []string{"Hello", "World"}},
	{Start: "00:00:02,000", End: "00:00:03,000", Lines: []string{"World", "How are you"}},
	{Start: "00:00:03,000", End: "00:00:04,000", Lines: []string{"How are you"}},
}

const rollingCleaned = "1\n00:00:01,000 --> 00:00:02,000\nHello\nWorld\n\n2\n00:00:02,000 --> 00:00:03,000\nHow are you\n"

type cliTestEnv struct {
	baseDir string
	homeDir string
}

// setupCLITestEnv isolates HOME and the working directory so no real
// configuration is picked up.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	t.Setenv("HOME", home)
	t.Setenv("SUBCLEAN_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")
	work := filepath.Join(base, "work")
	testsupport.WriteFile(t, filepath.Join(work, ".keep"), "")
	t.Chdir(work)
	return &cliTestEnv{baseDir: work, homeDir: home}
}

func (e *cliTestEnv) path(name string) string {
	return filepath.Join(e.baseDir, name)
}

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
