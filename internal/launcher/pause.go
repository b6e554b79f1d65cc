package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// PausePrompt is printed before waiting for a key press.
const PausePrompt = "Press any key to continue . . . "

// Pauser blocks until the user acknowledges the end of a launch.
type Pauser interface {
	Pause() error
}

// NopPauser returns immediately.
type NopPauser struct{}

func (NopPauser) Pause() error { return nil }

// ConsolePauser waits for a single key press on In. A terminal is switched to
// raw mode so any key (not just Enter) continues; other inputs are read one
// byte at a time and end of input counts as a key press.
type ConsolePauser struct {
	In  io.Reader
	Out io.Writer
}

// NewConsolePauser returns a pauser bound to the process console.
func NewConsolePauser() ConsolePauser {
	return ConsolePauser{In: os.Stdin, Out: os.Stdout}
}

func (p ConsolePauser) Pause() error {
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprint(out, PausePrompt)
	defer fmt.Fprintln(out)

	if p.In == nil {
		return nil
	}
	if file, ok := p.In.(*os.File); ok && isTerminal(file) {
		fd := int(file.Fd())
		if state, err := term.MakeRaw(fd); err == nil {
			defer func() { _ = term.Restore(fd, state) }()
		}
	}

	buf := make([]byte, 1)
	if _, err := p.In.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("wait for key press: %w", err)
	}
	return nil
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
