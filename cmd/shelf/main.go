// Package main provides the shelf CLI, a personal library catalog.
package main

import (
	"io"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = sysError(cerr)
	}
	if err != nil {
		reportError(stderr, err)
	}
	return exitCode(err)
}
