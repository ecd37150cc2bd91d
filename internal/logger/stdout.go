package logger

import (
	"fmt"
	"os"
)

type StdoutLogger struct{}

func (l *StdoutLogger) Logf(format string, args ...interface{}) { fmt.Printf(format, args...) }
func (l *StdoutLogger) Log(msg string)                          { fmt.Println(msg) }

// StderrLogger keeps progress lines off stdout so machine-readable output
// stays parseable.
type StderrLogger struct{}

func (l *StderrLogger) Logf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}
func (l *StderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, msg) }
