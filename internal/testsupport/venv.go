package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"sublaunch/internal/interpreter"
)

// VenvOptions selects which virtual environment entries MakeVenv creates.
type VenvOptions struct {
	Activation  bool
	Interpreter bool
}

// MakeVenv creates a fake virtual environment at dir using the host layout and
// returns the interpreter path inside it (whether or not it was created).
func MakeVenv(t testing.TB, dir string, opts VenvOptions) string {
	t.Helper()

	layout := interpreter.DefaultLayout()
	if err := os.MkdirAll(filepath.Join(dir, layout.BinDir), 0o755); err != nil {
		t.Fatalf("mkdir venv: %v", err)
	}
	if opts.Activation {
		WriteExecutable(t, layout.ActivationPath(dir), "# activate\n")
	}
	python := layout.InterpreterPath(dir)
	if opts.Interpreter {
		WriteExecutable(t, python, "#!/bin/sh\nexit 0\n")
	}
	return python
}

// WriteExecutable writes content to path with executable permissions.
func WriteExecutable(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ExecutableName appends the host executable suffix.
func ExecutableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
