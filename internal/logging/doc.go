// Package logging assembles structured slog loggers used by the launcher and
// the operator CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so every line written during a launch
// carries the same run ID. A no-op logger is provided for tests and wiring code
// that cannot fail.
package logging
