package main

import (
	"fmt"
	"testing"
	"time"
)

func TestDesktopReadyFiresOnce(t *testing.T) {
	fs := newFakeScheduler()
	d := NewDesktop(fs)
	ready := 0
	d.OnReady(func() { ready++ })

	d.Launch()
	d.Launch()
	fs.Advance(overlayFadeOut - time.Millisecond)
	if ready != 0 {
		t.Fatal("Expected ready only once the overlay has faded")
	}
	fs.Advance(time.Millisecond)
	if ready != 1 {
		t.Fatalf("Expected ready once, got %d", ready)
	}

	d.Launch()
	fs.Advance(time.Second)
	if ready != 1 {
		t.Errorf("Expected ready exactly once, got %d", ready)
	}

	late := false
	d.OnReady(func() { late = true })
	if !late {
		t.Error("Expected late subscriber to run immediately")
	}
}

func TestDesktopDoubleClick(t *testing.T) {
	tests := []struct {
		name   string
		gap    time.Duration
		row2   int
		launch bool
	}{
		{"quick double click", 200 * time.Millisecond, 5, true},
		{"too slow", 500 * time.Millisecond, 5, false},
		{"different row", 100 * time.Millisecond, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeScheduler()
			d := NewDesktop(fs)
			now := fs.Now()
			if d.Click(5, now) {
				t.Fatal("Expected single click not to launch")
			}
			if got := d.Click(tt.row2, now.Add(tt.gap)); got != tt.launch {
				t.Errorf("Expected launch=%v, got %v", tt.launch, got)
			}
		})
	}
}

func TestDesktopAutoLaunch(t *testing.T) {
	fs := newFakeScheduler()
	d := NewDesktop(fs)
	if _, ok := d.Cursor(fs.Now()); ok {
		t.Fatal("Expected no cursor before auto launch")
	}
	d.AutoLaunch()

	fs.Advance(autoLaunchDelay / 2)
	p, ok := d.Cursor(fs.Now())
	if !ok || p <= 0 || p >= 1 {
		t.Errorf("Expected cursor on its way, got %v visible=%v", p, ok)
	}

	fs.Advance(autoLaunchDelay / 2)
	if !d.Launched() {
		t.Fatal("Expected auto launch once the cursor arrives")
	}
	if _, ok := d.Cursor(fs.Now()); ok {
		t.Error("Expected cursor gone after launch")
	}
	fs.Advance(overlayFadeOut)
	if !d.Ready() {
		t.Error("Expected ready after auto launch")
	}
}

func TestDesktopLaunchFollowsSpeed(t *testing.T) {
	for _, speed := range []float64{0.5, 1, 2} {
		t.Run(fmt.Sprint(speed), func(t *testing.T) {
			fs := newFakeScheduler()
			sched := withSpeed(fs, speed)
			d := NewDesktop(sched)
			start := fs.Now()
			d.Launch()

			readyAt := sched.Scale(overlayFadeOut)
			fs.Advance(sched.Scale(launchDuration) - time.Millisecond)
			if d.Progress(fs.Now()) >= 1 || d.Ready() {
				t.Fatalf("Expected expand still running, got progress %v ready=%v", d.Progress(fs.Now()), d.Ready())
			}
			fs.Advance(start.Add(readyAt).Sub(fs.Now()) - time.Millisecond)
			if d.Ready() {
				t.Fatal("Expected ready only when the overlay is gone")
			}
			fs.Advance(time.Millisecond)
			if !d.Ready() {
				t.Fatalf("Expected ready at %v", readyAt)
			}
			if p := d.Progress(fs.Now()); p != 1 {
				t.Errorf("Expected expand finished when ready, got %v", p)
			}
			if op := d.OverlayOpacity(fs.Now()); op != 0 {
				t.Errorf("Expected overlay gone when ready, got %v", op)
			}
		})
	}
}

func TestDesktopProgress(t *testing.T) {
	fs := newFakeScheduler()
	d := NewDesktop(fs)
	start := fs.Now()
	if d.Progress(start) != 0 || d.OverlayOpacity(start) != 1 {
		t.Fatal("Expected idle desktop at rest")
	}

	d.Launch()
	mid := d.Progress(start.Add(launchDuration / 2))
	if mid <= 0.5 || mid >= 1 {
		t.Errorf("Expected eased progress past halfway, got %v", mid)
	}
	if d.Progress(start.Add(launchDuration)) != 1 {
		t.Error("Expected full progress at the end")
	}
	if op := d.OverlayOpacity(start.Add(overlayFadeOut / 2)); op != 0.5 {
		t.Errorf("Expected overlay fading during the expand, got %v", op)
	}
	if d.OverlayOpacity(start.Add(overlayFadeOut)) != 0 {
		t.Error("Expected overlay gone after fading out")
	}
}

func TestClockText(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 5, 0, 0, time.UTC)
	if got := clockText(now); got != "09:05" {
		t.Errorf("Expected 09:05, got %q", got)
	}
}
