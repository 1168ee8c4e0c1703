// Package cmdutils runs external commands for adapters that have no
// library-level data source.
package cmdutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
)

// Run executes cmd with args and returns the captured output streams.
// LANG=C is prepended to the environment so output is locale independent.
func Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer

	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = &out
	c.Stderr = &errOut
	c.Env = append([]string{"LANG=C"}, os.Environ()...)
	err = c.Run()

	return out.String(), errOut.String(), err
}

// RunWithTimeout is Run with a deadline layered onto the provided context.
func RunWithTimeout(ctx context.Context, timeout time.Duration, cmd string, args ...string) (stdout, stderr string, err error) {
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return Run(c, cmd, args...)
}
