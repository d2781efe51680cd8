// Command benglang scans and parses benglang source and prints the result.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes, following sysexits(3).
const (
	exitDataErr = 65 // Source had lexical or syntax errors.
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "Fail: %s.\n", err)
		os.Exit(1)
	}
}
