package launcher

import (
	"io"
	"strings"
)

// NoPreviewFlag is always passed to the subtitle script ahead of forwarded arguments.
const NoPreviewFlag = "--no-preview"

// ChildArgs returns the script arguments: NoPreviewFlag followed by the
// forwarded arguments in their original order.
func ChildArgs(forwarded []string) []string {
	args := make([]string, 0, len(forwarded)+1)
	args = append(args, NoPreviewFlag)
	return append(args, forwarded...)
}

// Command describes the single child process of a launch.
type Command struct {
	Program string
	Args    []string
	// Env replaces the child environment when non-nil; nil inherits.
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// String renders the command line for display.
func (c Command) String() string {
	parts := c.Argv()
	for i, part := range parts {
		if part == "" || strings.ContainsAny(part, " \t\"") {
			parts[i] = `"` + strings.ReplaceAll(part, `"`, `\"`) + `"`
		}
	}
	return strings.Join(parts, " ")
}
