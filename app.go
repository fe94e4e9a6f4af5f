package main

import (
	"context"
	"log"
	"math/rand"
	"time"
)

type sessionStore interface {
	RecordSession(at time.Time) (int64, error)
	RecordReveal(sessionID int64, section string, at time.Time) error
	Stats() (Stats, error)
}

type rect struct {
	X, Y, W, H int
}

const bodyPadding = 2

// windowRect is the terminal window inside a w×h screen, leaving a margin
// for the rain and the taskbar when there is room.
func windowRect(w, h int) rect {
	mx := clampInt(w/20, 0, 4)
	my := clampInt(h/12, 0, 2)
	return rect{X: mx, Y: my, W: w - 2*mx, H: h - 2*my}
}

// bodyRect is the scrolling area: inside the border, below the title,
// menu and separator rows, with padding for the fade shift.
func bodyRect(win rect) rect {
	return rect{
		X: win.X + 1 + bodyPadding,
		Y: win.Y + 3,
		W: clampInt(win.W-2-2*bodyPadding, 0, win.W),
		H: clampInt(win.H-4, 0, win.H),
	}
}

type scrollAnim struct {
	from, to int
	start    time.Time
	dur      time.Duration
}

// App is the portfolio page and everything that animates it. It is driven
// by a Scheduler and a frame callback and knows nothing about the terminal.
type App struct {
	config    *Config
	content   *Content
	sched     Scheduler
	store     sessionStore
	sessionID int64

	doc      *Document
	seq      *Sequencer
	fade     *FadeEngine
	sections *Observer
	desktop  *Desktop
	grid     *gridSurface
	rain     *Rain

	mode          Mode
	opened        bool
	width, height int
	scrollTop     int
	anim          *scrollAnim
	layout        Layout
	focus         *Element

	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(config *Config, content *Content, sched Scheduler, store sessionStore, rng *rand.Rand) *App {
	a := &App{
		config:  config,
		content: content,
		sched:   sched,
		store:   store,
		mode:    ModeDesktop,
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	var stats Stats
	if store != nil {
		st, err := store.Stats()
		if err != nil {
			log.Printf("Warning: %v", err)
		} else {
			stats = st
		}
	}

	a.doc = BuildDocument(content, stats, sched.Now())
	a.fade = NewFadeEngine(sched, a.doc, a.measure, a.viewport)
	a.seq = NewSequencer(a.doc, sched, a.fade, content.Profile.Motto)
	a.seq.OnReveal = a.recordReveal
	a.sections = NewObserver(sectionThreshold, sectionBottomMargin)
	a.desktop = NewDesktop(sched)
	a.grid = newGridSurface(0, 0)
	a.rain = NewRain(a.grid, 1, config.Orientation, rng)
	a.rain.Interval = sched.Scale(rainInterval)
	return a
}

// Start records the session and either shows the desktop or opens the
// terminal straight away.
func (a *App) Start() {
	if a.store != nil {
		id, err := a.store.RecordSession(a.sched.Now())
		if err != nil {
			log.Printf("Warning: %v", err)
		}
		a.sessionID = id
	}
	if !a.config.Desktop {
		a.openTerminal()
		return
	}
	a.desktop.OnReady(a.openTerminal)
	if a.config.AutoLaunch {
		a.desktop.AutoLaunch()
	}
}

func (a *App) openTerminal() {
	if a.opened {
		return
	}
	a.opened = true
	a.mode = ModeTerminal
	a.seq.RunIntro(a.ctx, func() {
		log.Printf("Intro finished")
	})
	n := a.seq.WatchSections(a.ctx, a.sections)
	log.Printf("Watching %d sections", n)
	a.fade.Invalidate()
}

func (a *App) recordReveal(cfg SectionConfig) {
	log.Printf("Revealed section %s", cfg.Name)
	if a.store == nil {
		return
	}
	if err := a.store.RecordReveal(a.sessionID, cfg.Name, a.sched.Now()); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// Close stops every pending animation.
func (a *App) Close() {
	a.cancel()
}

func (a *App) Resize(w, h int) {
	a.width, a.height = w, h
	a.rain.Resize(w, h)
	a.fade.Invalidate()
	a.setScroll(a.scrollTop)
}

func (a *App) body() rect {
	return bodyRect(windowRect(a.width, a.height))
}

func (a *App) measure() Layout {
	a.layout = Measure(a.doc, a.body().W)
	return a.layout
}

// viewport is empty until the terminal is open, so nothing intersects
// behind the desktop.
func (a *App) viewport() Viewport {
	if a.mode != ModeTerminal {
		return Viewport{}
	}
	return Viewport{ScrollTop: a.scrollTop, Height: a.body().H}
}

// Frame runs once per display frame, after the scheduler's frame queue.
func (a *App) Frame(now time.Time) {
	a.animateScroll(now)
	l := a.measure()
	if a.scrollTop > a.maxScroll() {
		a.setScroll(a.scrollTop)
	}
	vp := a.viewport()
	a.sections.Check(l, vp)
	a.seq.CodeWindows().Check(l, vp)
	if a.config.Rain {
		a.rain.Animate(now)
	}
}

func (a *App) maxScroll() int {
	return clampInt(a.layout.Height()-a.body().H, 0, a.layout.Height())
}

// setScroll is the scroll event: it moves the body and asks the fade
// engine for a pass.
func (a *App) setScroll(v int) {
	a.scrollTop = clampInt(v, 0, a.maxScroll())
	a.fade.RequestUpdate()
}

func (a *App) ScrollBy(delta int) {
	a.anim = nil
	a.setScroll(a.scrollTop + delta)
}

func (a *App) ScrollTo(row int, smooth bool) {
	if !smooth {
		a.anim = nil
		a.setScroll(row)
		return
	}
	a.anim = &scrollAnim{
		from:  a.scrollTop,
		to:    clampInt(row, 0, a.maxScroll()),
		start: a.sched.Now(),
		dur:   a.sched.Scale(smoothScrollFor),
	}
}

func (a *App) animateScroll(now time.Time) {
	if a.anim == nil {
		return
	}
	elapsed := now.Sub(a.anim.start)
	if elapsed >= a.anim.dur {
		a.setScroll(a.anim.to)
		a.anim = nil
		return
	}
	p := easeProgress(elapsed, a.anim.dur)
	a.setScroll(a.anim.from + int(float64(a.anim.to-a.anim.from)*p))
}

func (a *App) ScrollToSection(name string) bool {
	el := a.doc.ByID(name)
	if el == nil {
		return false
	}
	b, ok := a.layout.Box(el)
	if !ok {
		return false
	}
	a.ScrollTo(b.Top, true)
	return true
}

// CurrentSection is the last section starting at or above the top of the
// body, give or take a few rows.
func (a *App) CurrentSection() string {
	current := ""
	for _, cfg := range sectionConfigs {
		el := a.doc.ByID(cfg.Name)
		if el == nil {
			continue
		}
		b, ok := a.layout.Box(el)
		if !ok {
			continue
		}
		if b.Top <= a.scrollTop+menuHighlightSlack {
			current = cfg.Name
		}
	}
	return current
}

// revealed reports whether every ancestor has been made visible.
func revealed(e *Element) bool {
	for n := e; n != nil; n = n.Parent() {
		if n.Opacity() <= 0 {
			return false
		}
	}
	return true
}

// Collapsibles lists the panels a visitor can currently see and toggle.
func (a *App) Collapsibles() []*Element {
	var out []*Element
	for _, el := range a.doc.QueryAll("collapsible") {
		if revealed(el) {
			out = append(out, el)
		}
	}
	return out
}

// FocusNext moves panel focus by delta and brings the panel into view.
func (a *App) FocusNext(delta int) *Element {
	panels := a.Collapsibles()
	if len(panels) == 0 {
		a.focus = nil
		return nil
	}
	idx := -1
	for i, p := range panels {
		if p == a.focus {
			idx = i
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(panels) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(panels)) % len(panels)
	}
	a.focus = panels[idx]
	if b, ok := a.layout.Box(a.focus); ok {
		if b.Top < a.scrollTop || b.Top >= a.scrollTop+a.body().H {
			a.ScrollTo(b.Top-menuHighlightSlack, true)
		}
	}
	return a.focus
}

func (a *App) Focused() *Element {
	return a.focus
}

func (a *App) ClearFocus() {
	a.focus = nil
}

// Toggle opens or closes a panel. Line positions are re-measured once the
// height change has settled.
func (a *App) Toggle(el *Element) {
	if el == nil || !el.HasClass("collapsible") {
		return
	}
	el.Collapsed = !el.Collapsed
	a.fade.InvalidateAfter(collapseSettleDelay)
}

func (a *App) ToggleFocused() bool {
	if a.focus == nil {
		return false
	}
	a.Toggle(a.focus)
	return true
}

// ClickBody toggles the panel whose summary is on the given body row.
func (a *App) ClickBody(row int) bool {
	idx := a.scrollTop + row
	if row < 0 || idx >= len(a.layout.Rows) {
		return false
	}
	owner := a.layout.Rows[idx].Owner
	for n := owner; n != nil; n = n.Parent() {
		p := n.Parent()
		if p != nil && p.HasClass("collapsible") && p.Children[0] == n && revealed(p) {
			a.focus = p
			a.Toggle(p)
			return true
		}
	}
	return false
}

func (a *App) Mode() Mode {
	return a.mode
}

func (a *App) Desktop() *Desktop {
	return a.desktop
}

func (a *App) Document() *Document {
	return a.doc
}

func (a *App) Layout() Layout {
	return a.layout
}

func (a *App) ScrollTop() int {
	return a.scrollTop
}

func (a *App) Fade() *FadeEngine {
	return a.fade
}
