//go:build windows

package interpreter

// DefaultLayout returns the virtual environment layout created by venv and virtualenv on Windows.
func DefaultLayout() Layout {
	return Layout{
		BinDir:           "Scripts",
		ActivationScript: "activate.bat",
		Interpreter:      "python.exe",
	}
}
