package main

import (
	"time"
)

// Desktop is the overlay shown before the terminal opens. Launching plays
// the expand animation while the overlay fades, then signals ready, once.
type Desktop struct {
	sched Scheduler

	launched   bool
	launchedAt time.Time
	expandFor  time.Duration
	fadeFor    time.Duration
	ready      []func()
	readyFired bool

	cursorAt  time.Time
	cursorFor time.Duration

	lastTap    time.Time
	lastTapRow int
}

func NewDesktop(sched Scheduler) *Desktop {
	return &Desktop{sched: sched, lastTapRow: -1}
}

// OnReady registers fn for the ready signal. Registering after the signal
// has fired runs fn immediately.
func (d *Desktop) OnReady(fn func()) {
	if d.readyFired {
		fn()
		return
	}
	d.ready = append(d.ready, fn)
}

// Launch starts the expand and the overlay fade together. Ready fires when
// the overlay is gone, which is never before the expand has finished.
func (d *Desktop) Launch() {
	if d.launched {
		return
	}
	d.launched = true
	d.launchedAt = d.sched.Now()
	d.expandFor = d.sched.Scale(launchDuration)
	d.fadeFor = d.sched.Scale(overlayFadeOut)
	d.sched.After(overlayFadeOut, d.fireReady)
}

func (d *Desktop) fireReady() {
	if d.readyFired {
		return
	}
	d.readyFired = true
	fns := d.ready
	d.ready = nil
	for _, fn := range fns {
		fn()
	}
}

// AutoLaunch moves the fake cursor onto the icon and double-clicks it.
func (d *Desktop) AutoLaunch() {
	if d.launched || !d.cursorAt.IsZero() {
		return
	}
	d.cursorAt = d.sched.Now()
	d.cursorFor = d.sched.Scale(autoLaunchDelay)
	d.sched.After(autoLaunchDelay, d.Launch)
}

// Cursor reports the fake cursor's eased travel towards the icon, in
// [0, 1], and whether it should be drawn at all.
func (d *Desktop) Cursor(now time.Time) (float64, bool) {
	if d.launched || d.cursorAt.IsZero() {
		return 0, false
	}
	return easeProgress(now.Sub(d.cursorAt), d.cursorFor), true
}

// Click records a tap on the icon row and launches on the second tap
// inside the double-tap window.
func (d *Desktop) Click(row int, now time.Time) bool {
	if d.launched {
		return false
	}
	if row == d.lastTapRow && !d.lastTap.IsZero() && now.Sub(d.lastTap) <= doubleTapWindow {
		d.Launch()
		return true
	}
	d.lastTap = now
	d.lastTapRow = row
	return false
}

func (d *Desktop) Launched() bool {
	return d.launched
}

func (d *Desktop) Ready() bool {
	return d.readyFired
}

// Progress is the eased expand progress in [0, 1].
func (d *Desktop) Progress(now time.Time) float64 {
	if !d.launched {
		return 0
	}
	return easeProgress(now.Sub(d.launchedAt), d.expandFor)
}

// OverlayOpacity fades the desktop out from the moment of launch.
func (d *Desktop) OverlayOpacity(now time.Time) float64 {
	if !d.launched {
		return 1
	}
	since := now.Sub(d.launchedAt)
	if since >= d.fadeFor {
		return 0
	}
	if since <= 0 {
		return 1
	}
	return 1 - float64(since)/float64(d.fadeFor)
}

func easeProgress(elapsed, total time.Duration) float64 {
	if total <= 0 || elapsed >= total {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return easeOutCubic(float64(elapsed) / float64(total))
}

func clockText(now time.Time) string {
	return now.Format("15:04")
}
