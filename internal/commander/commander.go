// Package commander abstracts external process execution behind a small
// capability interface so syntax validation runs against recorded fakes in
// tests and real toolchains in production.
package commander

import (
	"bytes"
	"context"
	"os/exec"
)

// Commander looks up and runs external commands. Run returns captured
// stdout and stderr separately; diagnostics prefer stderr.
type Commander interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args []string, dir string) (stdout, stderr string, err error)
}

// Real executes actual system commands.
type Real struct{}

// NewReal creates a commander backed by the host system.
func NewReal() *Real {
	return &Real{}
}

// LookPath checks whether a command exists on PATH.
func (r *Real) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes a command in dir, bounded by ctx. When the context deadline
// kills the process the returned error wraps the context error; callers
// classify timeouts by checking ctx.Err().
func (r *Real) Run(ctx context.Context, name string, args []string, dir string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
