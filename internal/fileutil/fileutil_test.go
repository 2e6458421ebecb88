package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.srt")

	if err := WriteFileAtomic(dst, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "out.srt" || names[1] != "out.srt.lock" {
		t.Fatalf("expected output plus lock sidecar, got %v", names)
	}
}

func TestWriteFileAtomicReusesLockSidecar(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.srt")
	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(LockPath(dst))
	if err != nil {
		t.Fatalf("expected lock sidecar to persist: %v", err)
	}

	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}
	after, err := os.Stat(LockPath(dst))
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(before, after) {
		t.Fatal("expected the same lock file to be reused across writes")
	}

	holder := flock.New(LockPath(dst))
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("expected lock to be released after write: ok=%v err=%v", ok, err)
	}
	_ = holder.Unlock()
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.srt")
	if err := os.WriteFile(dst, []byte("old content that is longer"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteFileAtomic(dst, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o044 == 0 {
		t.Fatalf("expected requested permissions to apply, got %o", info.Mode().Perm())
	}
}

func TestWriteFileAtomicRejectsLockedPath(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.srt")
	holder := flock.New(LockPath(dst))
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("failed to take lock: ok=%v err=%v", ok, err)
	}
	defer holder.Unlock() //nolint:errcheck

	err = WriteFileAtomic(dst, []byte("data"), 0o644)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Fatalf("expected destination to be untouched, stat err=%v", statErr)
	}
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "out.srt")
	if err := WriteFileAtomic(dst, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}

func TestSHA256Hex(t *testing.T) {
	got, err := SHA256Hex(strings.NewReader("abc"))
	if err != nil {
		t.Fatal(err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("digest mismatch: got %s want %s", got, want)
	}
}
