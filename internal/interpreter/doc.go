// Package interpreter decides which Python interpreter the launcher runs.
//
// Resolution walks an ordered candidate chain and the first present candidate
// wins: a virtual environment activation script, then the virtual
// environment's own interpreter, then a bare interpreter name left for PATH
// lookup at spawn time. Activation is never executed; the environment changes
// an activation script would make are applied to the child's environment
// instead.
package interpreter
