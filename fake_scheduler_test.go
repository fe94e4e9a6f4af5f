package main

import (
	"time"
)

type fakeTimer struct {
	at  time.Time
	seq int
	fn  func()
}

// fakeScheduler is a virtual clock. Timers fire only from Advance, frame
// callbacks only from Frame.
type fakeScheduler struct {
	now    time.Time
	seq    int
	timers []fakeTimer
	frame  []func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeScheduler) Now() time.Time {
	return f.now
}

func (f *fakeScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	f.timers = append(f.timers, fakeTimer{at: f.now.Add(d), seq: f.seq, fn: fn})
	f.seq++
}

func (f *fakeScheduler) Scale(d time.Duration) time.Duration {
	return d
}

func (f *fakeScheduler) NextFrame(fn func()) {
	f.frame = append(f.frame, fn)
}

// Advance moves the clock forward by d, firing due timers in time order
// and, for equal times, in the order they were scheduled. Timers added by
// callbacks fire in the same call when they fall due before the end.
func (f *fakeScheduler) Advance(d time.Duration) {
	end := f.now.Add(d)
	for {
		i := f.nextDue(end)
		if i < 0 {
			break
		}
		t := f.timers[i]
		f.timers = append(f.timers[:i], f.timers[i+1:]...)
		if t.at.After(f.now) {
			f.now = t.at
		}
		t.fn()
	}
	f.now = end
}

func (f *fakeScheduler) nextDue(end time.Time) int {
	best := -1
	for i, t := range f.timers {
		if t.at.After(end) {
			continue
		}
		if best < 0 || t.at.Before(f.timers[best].at) ||
			(t.at.Equal(f.timers[best].at) && t.seq < f.timers[best].seq) {
			best = i
		}
	}
	return best
}

// Frame runs the callbacks queued before it was called.
func (f *fakeScheduler) Frame() int {
	queued := f.frame
	f.frame = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func (f *fakeScheduler) Pending() int {
	return len(f.timers)
}
