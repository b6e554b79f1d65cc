// Package launcher runs the subtitle script with the resolved interpreter.
//
// A launch is a fixed linear sequence: resolve the interpreter, tell the user
// which one was chosen, spawn exactly one child with inherited standard
// streams, wait for it, print a completion notice and pause once for a key
// press. Failures to start the child are reported, never retried, and never
// skip the pause.
//
// The process boundary is the Runner interface and the console boundary is the
// Pauser interface, so tests drive the whole sequence with fakes.
package launcher
