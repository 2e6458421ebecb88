package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subclean/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, code := runCLI(t, "config", "validate")
	if code != 0 {
		t.Fatalf("config validate exit %d: %q", code, out)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(env.baseDir, "conf", "subclean.toml")
	out, _, code = runCLI(t, "config", "init", "--path", target)
	if code != 0 {
		t.Fatalf("config init exit %d: %q", code, out)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, stderr, code := runCLI(t, "config", "init", "--path", target)
	if code != 1 {
		t.Fatalf("expected second init to fail without --overwrite, got %d", code)
	}
	requireContains(t, stderr, "already exists")

	out, _, code = runCLI(t, "--config", target, "config", "validate")
	if code != 0 {
		t.Fatalf("validate sample exit %d: %q", code, out)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "max_passes=5 convergence=count")
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteFile(t, env.path("bad.toml"), "[cleaning]\nconvergence = \"never\"\n")

	_, stderr, code := runCLI(t, "--config", path, "config", "validate")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	requireContains(t, stderr, "cleaning.convergence")
}

func TestCleanHonoursConfigFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteFile(t, env.path("subclean.toml"), "[output]\nreport = true\n")
	input := testsupport.WriteSRT(t, env.baseDir, "in.srt", rollingCues...)

	stdout, _, code := runCLI(t, "--config", path, input, env.path("out.srt"))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%q)", code, stdout)
	}
	requireContains(t, stdout, "duplicate_line")

	stdout, _, code = runCLI(t, "--config", path, "--report=false", input, env.path("out2.srt"))
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%q)", code, stdout)
	}
	if strings.Contains(stdout, "duplicate_line") {
		t.Fatalf("expected --report=false to override config, got %q", stdout)
	}
}
