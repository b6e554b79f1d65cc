package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(defaultShimEnv())
	if err := execute(cmd, os.Args[1:]); err != nil {
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
