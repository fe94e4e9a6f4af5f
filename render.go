package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

var helpLines = []string{
	"termfolio help",
	"==============",
	"",
	"Desktop:",
	"--------",
	"  Enter/Space      Open the terminal",
	"  Double-click     Open the terminal from its icon",
	"",
	"Scrolling:",
	"----------",
	"  j/↓/k/↑          Scroll one line",
	"  Shift+j/k        Scroll five lines",
	"  PgDn/PgUp        Scroll one page",
	"  g/G              Jump to the top/bottom",
	"  1-7              Jump to a section",
	"  Mouse wheel      Scroll",
	"",
	"Panels:",
	"-------",
	"  Tab/Shift+Tab    Focus the next/previous panel",
	"  Enter            Open or close the focused panel",
	"  Click            Open or close a panel by its summary",
	"",
	"General:",
	"  y                Copy contact details",
	"  p                Export the current view (txt and png)",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}
	return m.render(time.Now()).String()
}

// render draws one frame back to front: rain, desktop or window, taskbar.
func (m model) render(now time.Time) *screen {
	scr := newScreen(m.width, m.height, mustHex(colorBackground))
	if m.config.Rain {
		drawRain(scr, m.app.grid)
	}
	if m.app.Mode() == ModeDesktop {
		m.drawDesktop(scr, now)
		if op := m.app.Desktop().OverlayOpacity(now); op > 0 {
			m.drawTaskbar(scr, now, op)
		}
		return scr
	}
	m.drawWindow(scr, windowRect(m.width, m.height), now)
	return scr
}

func drawRain(scr *screen, g *gridSurface) {
	for y := 0; y < scr.h; y++ {
		for x := 0; x < scr.w; x++ {
			c := g.At(x, y)
			if c.glyph == 0 {
				continue
			}
			scr.set(x, y, c.glyph, rainShade(c.intensity))
		}
	}
}

func desktopIconRect(w, h int) rect {
	return rect{X: w/2 - 5, Y: h/2 - 3, W: 10, H: 4}
}

func (m model) drawDesktop(scr *screen, now time.Time) {
	d := m.app.Desktop()
	icon := desktopIconRect(m.width, m.height)
	fg := mustHex(colorTitle)
	label := mustHex(colorOutput)

	if d.Launched() {
		// The window grows out of the icon.
		p := d.Progress(now)
		win := windowRect(m.width, m.height)
		r := rect{
			X: lerpInt(icon.X, win.X, p),
			Y: lerpInt(icon.Y, win.Y, p),
			W: lerpInt(icon.W, win.W, p),
			H: lerpInt(icon.H-1, win.H, p),
		}
		scr.fill(r.X, r.Y, r.W, r.H, mustHex(colorWindow))
		drawBorder(scr, r, lipgloss.RoundedBorder(), mustHex(colorBorder))
		return
	}

	b := lipgloss.RoundedBorder()
	top := b.TopLeft + strings.Repeat(b.Top, icon.W-2) + b.TopRight
	mid := b.Left + runewidth.FillRight(" >_", icon.W-2) + b.Right
	bottom := b.BottomLeft + strings.Repeat(b.Bottom, icon.W-2) + b.BottomRight
	scr.text(icon.X, icon.Y, top, fg)
	scr.text(icon.X, icon.Y+1, mid, fg)
	scr.text(icon.X, icon.Y+2, bottom, fg)
	scr.text(icon.X+1, icon.Y+3, "terminal", label)

	hint := "double-click the icon or press enter"
	scr.text((m.width-runewidth.StringWidth(hint))/2, icon.Y+5, hint, mustHex(colorMuted))

	if p, ok := d.Cursor(now); ok {
		x, y := cursorCell(m.width, m.height, icon, p)
		scr.text(x, y, "↖", mustHex(colorCommand))
	}
}

// cursorCell places the fake cursor on its way from the bottom right
// corner to the middle of the icon.
func cursorCell(w, h int, icon rect, p float64) (int, int) {
	return lerpInt(w-2, icon.X+icon.W/2, p), lerpInt(h-2, icon.Y+1, p)
}

func (m model) drawTaskbar(scr *screen, now time.Time, opacity float64) {
	if m.height < 3 {
		return
	}
	y := m.height - 1
	bg := mustHex(colorBackground)
	barBg := bg.BlendRgb(mustHex(colorWindow), opacity)
	fg := bg.BlendRgb(mustHex(colorOutput), opacity)
	scr.fill(0, y, m.width, 1, barBg)
	scr.text(1, y, "termfolio", fg)
	clock := clockText(now)
	scr.text(m.width-runewidth.StringWidth(clock)-1, y, clock, fg)
}

func drawBorder(scr *screen, r rect, b lipgloss.Border, fg colorful.Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	inner := r.W - 2
	scr.text(r.X, r.Y, b.TopLeft+strings.Repeat(b.Top, inner)+b.TopRight, fg)
	scr.text(r.X, r.Y+r.H-1, b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight, fg)
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		scr.text(r.X, y, b.Left, fg)
		scr.text(r.X+r.W-1, y, b.Right, fg)
	}
}

func (m model) menuItems() []menuItem {
	current := m.app.CurrentSection()
	items := make([]menuItem, 0, len(sectionConfigs))
	for i, cfg := range sectionConfigs {
		items = append(items, menuItem{Key: fmt.Sprint(i + 1), Name: cfg.Name, Active: cfg.Name == current})
	}
	return items
}

func menuLabel(it menuItem) string {
	return it.Key + " " + it.Name
}

// menuAt returns the section under column x of the menu row.
func (m model) menuAt(x int) string {
	win := windowRect(m.width, m.height)
	col := win.X + 2
	for _, it := range m.menuItems() {
		w := runewidth.StringWidth(menuLabel(it))
		if x >= col && x < col+w {
			return it.Name
		}
		col += w + 2
	}
	return ""
}

func (m model) drawWindow(scr *screen, win rect, now time.Time) {
	if win.W < 8 || win.H < 5 {
		return
	}
	a := m.app
	winBg := mustHex(colorWindow)
	border := mustHex(colorBorder)
	b := lipgloss.RoundedBorder()

	scr.fill(win.X, win.Y, win.W, win.H, winBg)
	drawBorder(scr, win, b, border)

	// Title bar
	scr.text(win.X+2, win.Y, " ● ● ● ", mustHex(colorMuted))
	title := fmt.Sprintf(" %s@%s: ~ ", m.app.content.Profile.User, m.app.content.Profile.Host)
	scr.text(win.X+(win.W-runewidth.StringWidth(title))/2, win.Y, title, mustHex(colorTitle))

	// Menu
	col := win.X + 2
	for _, it := range m.menuItems() {
		fg := mustHex(colorMuted)
		if it.Active {
			fg = mustHex(colorMenu)
		}
		col = scr.text(col, win.Y+1, menuLabel(it), fg) + 2
	}
	sep := b.MiddleLeft + strings.Repeat(b.Top, win.W-2) + b.MiddleRight
	scr.text(win.X, win.Y+2, sep, border)

	// Body
	body := bodyRect(win)
	rows := a.Layout().Rows
	focus := a.Focused()
	for i := 0; i < body.H; i++ {
		idx := a.ScrollTop() + i
		if idx >= len(rows) {
			break
		}
		row := rows[idx]
		x := body.X + shiftCells(row.Owner)
		for _, seg := range row.Segments {
			op := seg.Owner.EffectiveOpacity(now)
			if op <= 0.01 {
				x += runewidth.StringWidth(seg.Text)
				continue
			}
			fg := winBg.BlendRgb(segmentColor(seg.Owner, focus), op)
			x = scr.text(x, body.Y+i, seg.Text, fg)
		}
	}

	// Status in the bottom border
	status := " j/k scroll · 1-7 jump · tab panels · ? help · q quit "
	statusFg := mustHex(colorMuted)
	switch {
	case m.errorMessage != "":
		status, statusFg = " "+m.errorMessage+" ", mustHex(colorFocus)
	case m.successMessage != "":
		status, statusFg = " "+m.successMessage+" ", mustHex(colorPrompt)
	}
	status = runewidth.Truncate(status, win.W-4, "…")
	scr.text(win.X+2, win.Y+win.H-1, status, statusFg)
}

// segmentColor picks the colour of a segment from its owner's classes.
func segmentColor(e *Element, focus *Element) colorful.Color {
	switch {
	case e.HasClass("prompt"):
		return mustHex(colorPrompt)
	case e.HasClass("command"):
		return mustHex(colorCommand)
	case e.HasClass("motto-text"), e.HasClass("skills-columns"):
		return mustHex(colorTitle)
	case e.HasClass("json-output"), e.HasClass("stats-container"):
		return mustHex(colorJSON)
	case e.HasClass("code-line"):
		return mustHex(colorCode)
	case e.HasClass("code-title"), e.HasClass("status"):
		return mustHex(colorMuted)
	case e.HasClass("summary"):
		if focus != nil && e.Parent() == focus {
			return mustHex(colorFocus)
		}
		return mustHex(colorMenu)
	}
	return mustHex(colorOutput)
}

func lerpInt(a, b int, p float64) int {
	return a + int(float64(b-a)*p)
}

func (m model) modeString() string {
	if m.help {
		return "HELP"
	}
	switch m.app.Mode() {
	case ModeDesktop:
		return "DESKTOP"
	case ModeTerminal:
		return "TERMINAL"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	heading := lipgloss.NewStyle().Foreground(lipgloss.Color(colorTitle)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	startLine := clampInt(m.helpScroll, 0, m.maxHelpScroll())
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	var visibleLines []string
	for _, line := range helpLines[startLine:endLine] {
		if strings.HasSuffix(line, ":") || strings.HasPrefix(line, "termfolio") {
			line = heading.Render(line)
		}
		visibleLines = append(visibleLines, line)
	}

	statusLine := fmt.Sprintf("%s (%d-%d of %d lines) | j/k to scroll, any other key to close",
		m.modeString(), startLine+1, endLine, len(helpLines))
	return strings.Join(visibleLines, "\n") + "\n" + muted.Render(statusLine)
}
