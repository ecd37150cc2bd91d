// Package logger carries progress output for the patch pipeline. The
// dispatcher reports each stage through the Logger interface without
// knowing how lines are presented; implementations print them plainly,
// divert them to stderr, or fold them into an animated status line.
package logger

// Logger receives progress lines from long-running operations.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// StartTask begins an animated status line on loggers that render one.
// Progress logged while the task runs replaces the status text instead
// of printing. The returned stop function clears the line and waits for
// the animation to quit; call it before printing the final result.
func StartTask(log Logger, title string) (stop func()) {
	if ul, ok := log.(*UILogger); ok {
		return ul.startTask(title)
	}
	return func() {}
}
