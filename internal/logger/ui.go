package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// UILogger prints progress for interactive terminal sessions. While a
// task is running, its status line animates in place and logged lines
// become the status text; outside a task it prints like StdoutLogger.
type UILogger struct {
	mu   sync.Mutex
	out  io.Writer
	task *statusLine
}

func NewUILogger() *UILogger {
	return &UILogger{out: os.Stdout}
}

// IsInteractive reports whether stdout is attached to a terminal.
// Piped or redirected output (tests, CI, shell pipelines) never gets
// in-place rendering.
func IsInteractive() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func (l *UILogger) Logf(format string, args ...interface{}) {
	l.emit(fmt.Sprintf(format, args...), false)
}

func (l *UILogger) Log(msg string) {
	l.emit(msg, true)
}

func (l *UILogger) emit(text string, newline bool) {
	l.mu.Lock()
	task := l.task
	l.mu.Unlock()
	if task != nil {
		task.setText(strings.ReplaceAll(strings.TrimSuffix(text, "\n"), "\n", " "))
		return
	}
	if newline {
		fmt.Fprintln(l.out, text)
		return
	}
	fmt.Fprint(l.out, text)
}

// startTask replaces any running status line with a fresh one and
// returns the function that ends it.
func (l *UILogger) startTask(title string) func() {
	t := &statusLine{
		out:  l.out,
		text: title,
		quit: make(chan struct{}),
		gone: make(chan struct{}),
	}
	l.mu.Lock()
	if l.task != nil {
		l.task.end()
	}
	l.task = t
	l.mu.Unlock()
	go t.animate()

	return func() {
		t.end()
		l.mu.Lock()
		if l.task == t {
			l.task = nil
		}
		l.mu.Unlock()
	}
}

// statusLine is a single line redrawn in place. The animation goroutine
// is the only writer between start and end; end does not return until
// the goroutine has cleared the line, so later prints cannot interleave
// with a stale frame.
type statusLine struct {
	out  io.Writer
	mu   sync.Mutex
	text string
	quit chan struct{}
	gone chan struct{}
	once sync.Once
}

var statusFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

func (t *statusLine) animate() {
	defer close(t.gone)
	tick := time.NewTicker(90 * time.Millisecond)
	defer tick.Stop()
	for frame := 0; ; frame++ {
		select {
		case <-t.quit:
			// Leave a clean line; the caller renders the outcome itself.
			fmt.Fprint(t.out, "\r\033[2K")
			return
		case <-tick.C:
			t.mu.Lock()
			text := t.text
			t.mu.Unlock()
			fmt.Fprintf(t.out, "\r\033[2K%c %s", statusFrames[frame%len(statusFrames)], text)
		}
	}
}

func (t *statusLine) setText(text string) {
	t.mu.Lock()
	t.text = text
	t.mu.Unlock()
}

func (t *statusLine) end() {
	t.once.Do(func() { close(t.quit) })
	<-t.gone
}
