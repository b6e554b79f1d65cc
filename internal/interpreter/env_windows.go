//go:build windows

package interpreter

import "strings"

func envKeyEqual(a, b string) bool { return strings.EqualFold(a, b) }
