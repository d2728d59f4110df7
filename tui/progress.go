// Package tui renders the live assembly progress screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavan-vyas/epe-video-editor/engine"
	"github.com/kavan-vyas/epe-video-editor/tui/styles"
)

// ProgressMsg carries a progress update from the running assembly.
type ProgressMsg struct {
	Stage    engine.Stage
	Fraction float64
}

// DoneMsg signals that the assembly finished successfully.
type DoneMsg struct {
	Result *engine.Result
}

// ErrorMsg signals that the assembly failed.
type ErrorMsg struct {
	Err error
}

// ProgressModel is the Bubble Tea model for the assembly progress screen.
// Messages arrive on a channel fed by the goroutine running the engine;
// ctrl+c cancels the assembly context and waits for the engine to unwind.
type ProgressModel struct {
	msgs   <-chan tea.Msg
	cancel context.CancelFunc

	stage      engine.Stage
	fraction   float64
	cancelling bool
	width      int

	result *engine.Result
	err    error
}

// NewProgress creates a progress model reading updates from msgs. cancel is
// invoked when the user interrupts.
func NewProgress(msgs <-chan tea.Msg, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		msgs:   msgs,
		cancel: cancel,
		stage:  engine.StageLoad,
		width:  80,
	}
}

// Result returns the assembly result, set once a DoneMsg arrives.
func (m ProgressModel) Result() *engine.Result { return m.result }

// Err returns the assembly error, set once an ErrorMsg arrives.
func (m ProgressModel) Err() error { return m.err }

func (m ProgressModel) Init() tea.Cmd {
	return waitForMsg(m.msgs)
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.cancelling {
				m.cancelling = true
				m.cancel()
			}
			// The engine unwinds and sends an ErrorMsg; keep reading.
			return m, nil
		}
		return m, nil

	case ProgressMsg:
		m.stage = msg.Stage
		if msg.Fraction > m.fraction {
			m.fraction = msg.Fraction
		}
		return m, waitForMsg(m.msgs)

	case DoneMsg:
		m.result = msg.Result
		m.fraction = 1
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Assembling video"))
	b.WriteString("\n\n")

	label := stageLabel(m.stage)
	if m.cancelling {
		label = "cancelling"
	}
	b.WriteString(styles.Stage.Render(label))
	b.WriteString("\n")
	b.WriteString(m.renderBar())
	b.WriteString(styles.PrimaryText.Render(fmt.Sprintf(" %3.0f%%", m.fraction*100)))
	b.WriteString("\n\n")
	b.WriteString(styles.SecondaryText.Render("ctrl+c to cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m ProgressModel) renderBar() string {
	width := m.width - 10
	if width > 50 {
		width = 50
	}
	if width < 10 {
		width = 10
	}
	filled := int(m.fraction * float64(width))
	if filled > width {
		filled = width
	}
	return styles.BarFilled.Render(strings.Repeat("█", filled)) +
		styles.BarEmpty.Render(strings.Repeat("░", width-filled))
}

func stageLabel(stage engine.Stage) string {
	switch stage {
	case engine.StageLoad:
		return "probing segments"
	case engine.StageTrim:
		return "cutting recording"
	case engine.StageAssemble:
		return "joining segments"
	case engine.StageExport:
		return "encoding output"
	default:
		return string(stage)
	}
}

// waitForMsg blocks until the assembly goroutine sends the next update.
func waitForMsg(msgs <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-msgs
	}
}
