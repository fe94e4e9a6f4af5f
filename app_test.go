package main

import (
	"math/rand"
	"testing"
	"time"
)

type fakeSessionStore struct {
	sessions int
	reveals  map[string]int
}

func (f *fakeSessionStore) RecordSession(at time.Time) (int64, error) {
	f.sessions++
	return int64(f.sessions), nil
}

func (f *fakeSessionStore) RecordReveal(sessionID int64, section string, at time.Time) error {
	f.reveals[section]++
	return nil
}

func (f *fakeSessionStore) Stats() (Stats, error) {
	return Stats{Sessions: int64(f.sessions)}, nil
}

func newTestApp(t *testing.T, desktop bool) (*App, *fakeScheduler, *fakeSessionStore) {
	t.Helper()
	content, err := LoadContent("")
	if err != nil {
		t.Fatal(err)
	}
	config := defaultConfig()
	config.Desktop = desktop
	config.AutoLaunch = false
	config.Rain = false

	fs := newFakeScheduler()
	store := &fakeSessionStore{reveals: make(map[string]int)}
	app := NewApp(config, content, fs, store, rand.New(rand.NewSource(1)))
	t.Cleanup(app.Close)
	return app, fs, store
}

// run drives the app frame by frame for d of virtual time.
func run(app *App, fs *fakeScheduler, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frameInterval {
		fs.Advance(frameInterval)
		fs.Frame()
		app.Frame(fs.Now())
	}
}

func TestAppIntroRevealsFirstSection(t *testing.T) {
	app, fs, store := newTestApp(t, false)
	app.Start()
	app.Resize(100, 20)

	if app.Mode() != ModeTerminal {
		t.Fatal("Expected terminal to open without the desktop")
	}
	if store.sessions != 1 {
		t.Errorf("Expected one recorded session, got %d", store.sessions)
	}

	run(app, fs, 8*time.Second)

	if got := app.Document().ByID("about-content").Opacity(); got != 1 {
		t.Errorf("Expected about revealed by the intro, got opacity %v", got)
	}
	if got := app.Document().ByID("typing-motto").Text; got != "成就感來自於學習" {
		t.Errorf("Expected motto typed out, got %q", got)
	}
	if store.reveals["about"] != 1 {
		t.Errorf("Expected about recorded once, got %d", store.reveals["about"])
	}
	if app.Document().ByID("contact-content").Opacity() != 0 {
		t.Error("Expected contact hidden before scrolling")
	}
}

func TestAppScrollRevealsOnce(t *testing.T) {
	app, fs, store := newTestApp(t, false)
	app.Start()
	app.Resize(100, 20)
	run(app, fs, 8*time.Second)

	app.ScrollBy(10000)
	if app.ScrollTop() != app.maxScroll() || app.ScrollTop() == 0 {
		t.Fatalf("Expected scroll clamped to the bottom, got %d of %d", app.ScrollTop(), app.maxScroll())
	}
	run(app, fs, 3*time.Second)

	if got := app.Document().ByID("contact-content").Opacity(); got != 1 {
		t.Errorf("Expected contact revealed at the bottom, got opacity %v", got)
	}

	app.ScrollTo(0, false)
	run(app, fs, time.Second)
	app.ScrollBy(10000)
	run(app, fs, 3*time.Second)

	if store.reveals["contact"] != 1 {
		t.Errorf("Expected contact recorded once, got %d", store.reveals["contact"])
	}
}

func TestAppDesktopGatesIntro(t *testing.T) {
	app, fs, _ := newTestApp(t, true)
	app.Start()
	app.Resize(100, 20)
	run(app, fs, 2*time.Second)

	if app.Mode() != ModeDesktop {
		t.Fatal("Expected desktop until launched")
	}
	if app.Document().ByID("typing-init-cmd").Text != "" {
		t.Error("Expected no typing behind the desktop")
	}

	app.Desktop().Launch()
	run(app, fs, launchDuration/2)
	if app.Mode() != ModeDesktop {
		t.Error("Expected terminal only after the expand animation")
	}
	run(app, fs, overlayFadeOut)
	if app.Mode() != ModeTerminal {
		t.Fatal("Expected terminal after launch")
	}

	run(app, fs, 8*time.Second)
	if app.Document().ByID("about-content").Opacity() != 1 {
		t.Error("Expected intro to run after launch")
	}
}

func TestAppToggleRebuildsAfterSettle(t *testing.T) {
	app, fs, _ := newTestApp(t, true)
	app.Resize(100, 40)
	before := len(app.Fade().Cache().Lines())

	panel := app.Document().QueryAll("collapsible")[0]
	app.Toggle(panel)
	if panel.Collapsed {
		t.Fatal("Expected panel expanded")
	}

	fs.Advance(collapseSettleDelay - time.Millisecond)
	if got := len(app.Fade().Cache().Lines()); got != before {
		t.Errorf("Expected cache untouched while settling, got %d lines, want %d", got, before)
	}
	fs.Advance(time.Millisecond)
	if got := len(app.Fade().Cache().Lines()); got != before+3 {
		t.Errorf("Expected detail lines cached after settle, got %d, want %d", got, before+3)
	}
}

func TestAppSectionNavigation(t *testing.T) {
	app, fs, _ := newTestApp(t, false)
	app.Start()
	app.Resize(100, 20)
	run(app, fs, frameInterval)

	if got := app.CurrentSection(); got != "" {
		t.Errorf("Expected no section at the top, got %q", got)
	}
	if app.ScrollToSection("nope") {
		t.Error("Expected unknown section to be ignored")
	}
	if !app.ScrollToSection("skills") {
		t.Fatal("Expected skills to be found")
	}
	run(app, fs, smoothScrollFor+frameInterval)

	box, _ := app.Layout().Box(app.Document().ByID("skills"))
	if app.ScrollTop() != box.Top {
		t.Errorf("Expected scroll at %d, got %d", box.Top, app.ScrollTop())
	}
	if got := app.CurrentSection(); got != "skills" {
		t.Errorf("Expected skills highlighted, got %q", got)
	}
}

func TestAppPanelFocus(t *testing.T) {
	app, fs, _ := newTestApp(t, false)
	app.Start()
	app.Resize(100, 20)
	run(app, fs, frameInterval)

	if app.FocusNext(1) != nil {
		t.Fatal("Expected no focus while panels are hidden")
	}

	app.Document().ByID("experience-content").SetOpacity(1, 0, fs.Now())
	panels := app.Collapsibles()
	if len(panels) != 2 {
		t.Fatalf("Expected 2 revealed panels, got %d", len(panels))
	}
	if app.FocusNext(1) != panels[0] {
		t.Error("Expected first panel focused")
	}
	if app.FocusNext(1) != panels[1] {
		t.Error("Expected second panel focused")
	}
	if app.FocusNext(1) != panels[0] {
		t.Error("Expected focus to wrap")
	}
	if !app.ToggleFocused() || panels[0].Collapsed {
		t.Error("Expected focused panel toggled open")
	}
	app.ClearFocus()
	if app.ToggleFocused() {
		t.Error("Expected nothing to toggle without focus")
	}
}

func TestAppClickSummary(t *testing.T) {
	app, fs, _ := newTestApp(t, false)
	app.Start()
	app.Resize(100, 20)
	app.Document().ByID("experience-content").SetOpacity(1, 0, fs.Now())
	run(app, fs, frameInterval)

	panel := app.Collapsibles()[0]
	row := -1
	for i, r := range app.Layout().Rows {
		if r.Owner == panel.Children[0] {
			row = i
			break
		}
	}
	if row < 0 {
		t.Fatal("Expected summary row in the layout")
	}

	if !app.ClickBody(row - app.ScrollTop()) {
		t.Fatal("Expected click on the summary to toggle")
	}
	if panel.Collapsed || app.Focused() != panel {
		t.Error("Expected clicked panel open and focused")
	}
	if app.ClickBody(-1) {
		t.Error("Expected click above the body to be ignored")
	}
}

func TestAppSmoothScrollFollowsSpeed(t *testing.T) {
	content, err := LoadContent("")
	if err != nil {
		t.Fatal(err)
	}
	config := defaultConfig()
	config.Desktop = false
	config.Rain = false
	fs := newFakeScheduler()
	app := NewApp(config, content, withSpeed(fs, 2), nil, rand.New(rand.NewSource(1)))
	t.Cleanup(app.Close)

	app.Start()
	app.Resize(100, 20)
	run(app, fs, frameInterval)

	if !app.ScrollToSection("skills") {
		t.Fatal("Expected skills to be found")
	}
	run(app, fs, smoothScrollFor/2+frameInterval)

	box, _ := app.Layout().Box(app.Document().ByID("skills"))
	if app.ScrollTop() != box.Top {
		t.Errorf("Expected scroll finished at double speed, got %d want %d", app.ScrollTop(), box.Top)
	}
}
