package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/datatable/internal/batch"
	"github.com/wippyai/datatable/internal/config"
)

const recentLines = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type eventMsg batch.Event

type finishedMsg struct {
	report batch.Report
	err    error
}

type interactiveModel struct {
	err      error
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Config
	events   chan batch.Event
	report   *batch.Report
	spinner  spinner.Model
	progress progress.Model
	recent   []string
	running  []string
	jobs     int
	finished int
	total    int
}

func newInteractiveModel(ctx context.Context, cfg *config.Config, jobs int) *interactiveModel {
	ctx, cancel := context.WithCancel(ctx)
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statStyle
	return &interactiveModel{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		jobs:     jobs,
		events:   make(chan batch.Event, 64),
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(48)),
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runBatch, m.waitForEvent)
}

// runBatch compiles the project; the logger stays silent so the TUI owns the screen.
func (m *interactiveModel) runBatch() tea.Msg {
	report, err := batch.Run(m.ctx, m.cfg, batch.Options{
		Jobs:     m.jobs,
		Logger:   zap.NewNop(),
		Progress: func(ev batch.Event) {
			select {
			case m.events <- ev:
			case <-m.ctx.Done():
			}
		},
	})
	close(m.events)
	return finishedMsg{report: report, err: err}
}

func (m *interactiveModel) waitForEvent() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return nil
	}
	return eventMsg(ev)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			return m, tea.Quit
		}

	case eventMsg:
		m.apply(batch.Event(msg))
		return m, m.waitForEvent

	case finishedMsg:
		m.report = &msg.report
		m.err = msg.err
		m.running = nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-10, 10), 80)
	}
	return m, nil
}

func (m *interactiveModel) apply(ev batch.Event) {
	m.total = ev.Total
	name := ev.Set + "/" + ev.Table
	if ev.Kind == batch.EventStart {
		m.running = append(m.running, name)
		return
	}

	m.finished = ev.Finished
	for i, r := range m.running {
		if r == name {
			m.running = append(m.running[:i], m.running[i+1:]...)
			break
		}
	}

	var line string
	if ev.Kind == batch.EventFailed {
		line = errorStyle.Render("✗ "+name) + " " + helpStyle.Render(firstLine(ev.Err))
	} else {
		line = resultStyle.Render("✓ "+name) + " " +
			statStyle.Render(fmt.Sprintf("%d rows, %d omitted, %d bytes", ev.Stats.Written, ev.Stats.Omitted, ev.Stats.Bytes))
	}
	m.recent = append(m.recent, line)
	if len(m.recent) > recentLines {
		m.recent = m.recent[len(m.recent)-recentLines:]
	}
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	s, _, _ := strings.Cut(err.Error(), "\n")
	return s
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Table Compiler"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%d sets", len(m.cfg.Sets)))
	b.WriteString("\n\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.finished) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(pct))
	b.WriteString(fmt.Sprintf(" %d/%d\n\n", m.finished, m.total))

	for _, line := range m.recent {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.report == nil {
		for _, r := range m.running {
			b.WriteString(m.spinner.View())
			b.WriteString(" ")
			b.WriteString(tableStyle.Render(r))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q cancel"))
		return b.String()
	}

	totals := m.report.Totals()
	b.WriteString("\n")
	b.WriteString(resultStyle.Render(fmt.Sprintf("%d compiled", len(m.report.Results)-m.report.Failed())))
	b.WriteString(", ")
	if n := m.report.Failed(); n > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d failed", n)))
	} else {
		b.WriteString("0 failed")
	}
	b.WriteString(statStyle.Render(fmt.Sprintf("  %d rows, %d bytes", totals.Written, totals.Bytes)))
	b.WriteString("\n")
	if m.err != nil {
		for _, e := range multierr.Errors(m.err) {
			b.WriteString(errorStyle.Render("  " + firstLine(e)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}

func runInteractive(ctx context.Context, cfg *config.Config, jobs int) error {
	m := newInteractiveModel(ctx, cfg, jobs)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*interactiveModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
