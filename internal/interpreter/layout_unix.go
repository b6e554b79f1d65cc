//go:build !windows

package interpreter

// DefaultLayout returns the virtual environment layout created by venv and virtualenv on POSIX hosts.
func DefaultLayout() Layout {
	return Layout{
		BinDir:           "bin",
		ActivationScript: "activate",
		Interpreter:      "python",
	}
}
