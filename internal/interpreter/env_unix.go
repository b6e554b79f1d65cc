//go:build !windows

package interpreter

func envKeyEqual(a, b string) bool { return a == b }
