package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quadlab/internal/quad"
	"github.com/san-kum/quadlab/internal/sweep"
)

const graphWidth = 70

type TickMsg time.Time

// Model runs one trial per tick and renders the sweep as it fills in.
type Model struct {
	runner  *sweep.Runner
	cfg     quad.Config
	step    float64
	trials  []quad.Trial
	ref     float64
	hasRef  bool
	running bool
	err     error
}

func NewModel(runner *sweep.Runner, cfg quad.Config, ref float64, hasRef bool) Model {
	return Model{
		runner:  runner,
		cfg:     cfg,
		step:    cfg.Step,
		trials:  make([]quad.Trial, 0, cfg.Halvings),
		ref:     ref,
		hasRef:  hasRef,
		running: true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.trials = m.trials[:0]
			m.step = m.cfg.Step
			m.err = nil
			m.running = true
		}

	case TickMsg:
		if m.running && m.err == nil && len(m.trials) < m.cfg.Halvings {
			trial, err := m.runner.Trial(m.cfg, m.step)
			if err != nil {
				m.err = err
				m.running = false
			} else {
				m.trials = append(m.trials, trial)
				m.step *= 0.5
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("quadlab sweep"))
	b.WriteByte('\n')

	b.WriteString(labelStyle.Render("interval"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%g, %g]", m.cfg.Start, m.cfg.Stop)))
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("trials"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d", len(m.trials), m.cfg.Halvings)))
	b.WriteByte('\n')
	if m.hasRef {
		b.WriteString(labelStyle.Render("reference"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.6f", m.ref)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for i, trial := range m.trials {
		line := fmt.Sprintf("%2d  step %-12.6g  est %-18.6f  %v",
			i, trial.Step, trial.Estimate, trial.Elapsed.Round(time.Microsecond))
		if m.hasRef {
			line += fmt.Sprintf("  err %.3e", abs(trial.Estimate-m.ref))
		}
		b.WriteString(valueStyle.Render(line))
		b.WriteByte('\n')
	}

	if len(m.trials) >= 2 {
		times := (&quad.Result{Trials: m.trials}).TimesSeconds()
		for i := range times {
			times[i] *= 1000
		}
		graph := asciigraph.Plot(times,
			asciigraph.Height(8),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("time per trial [ms]"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteByte('\n')
	}

	switch {
	case m.err != nil:
		b.WriteString(pausedStyle.Render(fmt.Sprintf("error: %v", m.err)))
	case len(m.trials) == m.cfg.Halvings:
		b.WriteString(doneStyle.Render("sweep complete"))
	case !m.running:
		b.WriteString(pausedStyle.Render("paused"))
	}
	b.WriteByte('\n')

	b.WriteString(helpStyle.Render("space pause · r restart · q quit"))
	b.WriteByte('\n')

	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
