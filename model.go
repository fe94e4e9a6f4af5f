package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newModel(app *App, sched *teaScheduler, config *Config) model {
	return model{
		app:    app,
		sched:  sched,
		config: config,
	}
}

func (m model) Init() tea.Cmd {
	m.app.Start()
	return tea.Batch(frameTick(), m.sched.Flush())
}

// Update is the only place callbacks run: timers, frames and input are all
// delivered here, one message at a time.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.app.Resize(msg.Width, msg.Height)

	case frameMsg:
		m.sched.RunFrame()
		m.app.Frame(time.Time(msg))
		return m, tea.Batch(frameTick(), m.sched.Flush())

	case timerFiredMsg:
		m.sched.Fire(msg.id)

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, tea.Batch(cmd, m.sched.Flush())
		}

	case tea.MouseMsg:
		m.handleMouse(msg, time.Now())
	}
	return m, m.sched.Flush()
}
