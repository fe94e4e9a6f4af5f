package main

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	if m.help {
		m.handleHelpKey(key)
		return nil
	}

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
		return nil
	}

	if m.app.Mode() == ModeDesktop {
		switch key {
		case "enter", " ":
			m.app.Desktop().Launch()
		}
		return nil
	}

	switch key {
	case "j", "down", "k", "up", "J", "K", "shift+down", "shift+up":
		m.handleScroll(key, m.getScrollSpeed(key))
	case "pgdown", "ctrl+d", " ":
		m.app.ScrollBy(m.pageSize())
	case "pgup", "ctrl+u":
		m.app.ScrollBy(-m.pageSize())
	case "g", "home":
		m.app.ScrollTo(0, true)
	case "G", "end":
		m.app.ScrollTo(m.app.maxScroll(), true)
	case "1", "2", "3", "4", "5", "6", "7":
		i, _ := strconv.Atoi(key)
		if i-1 < len(sectionConfigs) {
			m.app.ScrollToSection(sectionConfigs[i-1].Name)
		}
	case "tab":
		m.app.FocusNext(1)
	case "shift+tab":
		m.app.FocusNext(-1)
	case "enter":
		m.app.ToggleFocused()
	case "esc":
		m.app.ClearFocus()
	case "y":
		if err := copyContact(m.app.Document()); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Contact details copied to clipboard"
		}
	case "p":
		txt, png, err := m.exportView(time.Now())
		if err != nil {
			m.errorMessage = "Export failed: " + err.Error()
		} else {
			m.successMessage = "Saved " + txt + " and " + png
		}
	}
	return nil
}

func (m *model) handleScroll(key string, speed int) {
	switch key {
	case "k", "up", "K", "shift+up":
		m.app.ScrollBy(-speed)
	case "j", "down", "J", "shift+down":
		m.app.ScrollBy(speed)
	}
}

func (m *model) getScrollSpeed(key string) int {
	switch key {
	case "J", "K", "shift+up", "shift+down":
		return 5
	default:
		return 1
	}
}

func (m *model) pageSize() int {
	h := m.app.body().H - 2
	if h < 1 {
		return 1
	}
	return h
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "j", "down":
		if m.helpScroll < m.maxHelpScroll() {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m *model) maxHelpScroll() int {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	return clampInt(len(helpLines)-visible, 0, len(helpLines))
}

func (m *model) handleMouse(msg tea.MouseMsg, now time.Time) {
	if m.help {
		return
	}
	switch msg.Type {
	case tea.MouseWheelUp:
		m.app.ScrollBy(-1)
	case tea.MouseWheelDown:
		m.app.ScrollBy(1)
	case tea.MouseLeft:
		if m.app.Mode() == ModeDesktop {
			icon := desktopIconRect(m.width, m.height)
			if msg.X >= icon.X && msg.X < icon.X+icon.W && msg.Y >= icon.Y && msg.Y < icon.Y+icon.H {
				m.app.Desktop().Click(icon.Y, now)
			}
			return
		}
		win := windowRect(m.width, m.height)
		if msg.Y == win.Y+1 {
			if name := m.menuAt(msg.X); name != "" {
				m.app.ScrollToSection(name)
			}
			return
		}
		body := bodyRect(win)
		if msg.Y >= body.Y && msg.Y < body.Y+body.H {
			m.app.ClickBody(msg.Y - body.Y)
		}
	}
}
