package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler runs callbacks cooperatively on the UI goroutine. After is the
// timer primitive; NextFrame runs fn before the next frame is drawn. Scale
// maps a nominal animation duration to wall time, and After applies it.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func())
	NextFrame(fn func())
	Scale(d time.Duration) time.Duration
}

type timerFiredMsg struct {
	id int
}

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// teaScheduler turns timers into tea.Tick commands. Fired timers come back
// through Update as timerFiredMsg, so callbacks never run concurrently.
type teaScheduler struct {
	now     func() time.Time
	nextID  int
	pending map[int]func()
	frame   []func()
	cmds    []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		now:     time.Now,
		pending: make(map[int]func()),
	}
}

func (s *teaScheduler) Now() time.Time {
	return s.now()
}

func (s *teaScheduler) After(d time.Duration, fn func()) {
	id := s.nextID
	s.nextID++
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
}

func (s *teaScheduler) Scale(d time.Duration) time.Duration {
	return d
}

func (s *teaScheduler) NextFrame(fn func()) {
	s.frame = append(s.frame, fn)
}

func (s *teaScheduler) Fire(id int) {
	fn, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	fn()
}

// RunFrame runs the callbacks queued before this frame. Callbacks queued
// while running wait for the following frame.
func (s *teaScheduler) RunFrame() {
	queued := s.frame
	s.frame = nil
	for _, fn := range queued {
		fn()
	}
}

// Flush hands the timers scheduled since the last call to bubbletea.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// scaledScheduler stretches or compresses every timer and animation by a
// constant factor.
type scaledScheduler struct {
	Scheduler
	speed float64
}

func withSpeed(s Scheduler, speed float64) Scheduler {
	if speed <= 0 || speed == 1 {
		return s
	}
	return scaledScheduler{Scheduler: s, speed: speed}
}

func (s scaledScheduler) Scale(d time.Duration) time.Duration {
	return s.Scheduler.Scale(time.Duration(float64(d) / s.speed))
}

func (s scaledScheduler) After(d time.Duration, fn func()) {
	s.Scheduler.After(time.Duration(float64(d)/s.speed), fn)
}
