package commander

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Mock implements Commander for tests.
type Mock struct {
	Commands      map[string]bool       // which commands exist on the fake PATH
	Results       map[string]MockResult // command-line prefix -> canned outcome
	RecordedCalls []RecordedCall
}

// MockResult is a canned command outcome. Delay simulates a slow toolchain;
// a run whose context expires during the delay returns the context error,
// same as a killed process.
type MockResult struct {
	Stdout string
	Stderr string
	Err    error
	Delay  time.Duration
}

// RecordedCall captures one command invocation.
type RecordedCall struct {
	Name string
	Args []string
	Dir  string
}

// NewMock creates a mock commander with no commands available.
func NewMock() *Mock {
	return &Mock{
		Commands: make(map[string]bool),
		Results:  make(map[string]MockResult),
	}
}

// LookPath resolves only commands registered in Commands.
func (m *Mock) LookPath(name string) (string, error) {
	if m.Commands[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Run records the call and plays back the first canned outcome whose key is
// an exact match or prefix of "name arg1 arg2 ...".
func (m *Mock) Run(ctx context.Context, name string, args []string, dir string) (string, string, error) {
	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{Name: name, Args: args, Dir: dir})

	key := name
	if len(args) > 0 {
		key += " " + strings.Join(args, " ")
	}

	res, ok := m.Results[key]
	if !ok {
		for pattern, r := range m.Results {
			if strings.HasPrefix(key, pattern) {
				res, ok = r, true
				break
			}
		}
	}
	if !ok {
		return "", "", nil
	}

	if res.Delay > 0 {
		select {
		case <-time.After(res.Delay):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	return res.Stdout, res.Stderr, res.Err
}
