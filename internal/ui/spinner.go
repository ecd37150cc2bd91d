package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled reports that the user dismissed a running operation from
// the keyboard.
var ErrCanceled = errors.New("operation canceled")

// RunSpinner animates a spinner labelled title while action runs in the
// background, then returns the action's error. When the user quits the
// display first it returns ErrCanceled; the action itself keeps running
// to completion.
func RunSpinner(ctx context.Context, title string, action func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	outcome := make(chan error, 1)
	go func() { outcome <- action() }()

	final, err := tea.NewProgram(newTaskModel(ctx, title, outcome)).Run()
	if err != nil {
		return err
	}
	return final.(taskModel).err
}

type taskDoneMsg struct{ err error }

var (
	taskFrameStyle = lipgloss.NewStyle().Padding(0, 1)
	taskOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	taskErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type taskModel struct {
	label   string
	spin    spinner.Model
	ctx     context.Context
	outcome <-chan error
	settled bool
	err     error
}

func newTaskModel(ctx context.Context, label string, outcome <-chan error) taskModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return taskModel{label: label, spin: s, ctx: ctx, outcome: outcome}
}

func (m taskModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.awaitOutcome())
}

// awaitOutcome parks a program goroutine until the action settles or the
// context is canceled, whichever comes first.
func (m taskModel) awaitOutcome() tea.Cmd {
	return func() tea.Msg {
		select {
		case err := <-m.outcome:
			return taskDoneMsg{err: err}
		case <-m.ctx.Done():
			return taskDoneMsg{err: m.ctx.Err()}
		}
	}
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.settled = true
			m.err = ErrCanceled
			return m, tea.Quit
		}
	case taskDoneMsg:
		m.settled = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskModel) View() string {
	if m.settled {
		if m.err != nil {
			return taskFrameStyle.Render(taskErrStyle.Render("✗")+" "+m.label+": "+m.err.Error()) + "\n"
		}
		return taskFrameStyle.Render(taskOKStyle.Render("✓")+" "+m.label) + "\n"
	}
	return taskFrameStyle.Render(m.spin.View() + " " + m.label)
}
