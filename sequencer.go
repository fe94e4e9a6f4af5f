package main

import (
	"context"
	"time"
)

// SectionConfig ties a section's command line to the content it reveals.
type SectionConfig struct {
	Name      string
	CommandID string
	ContentID string
	Command   string
}

var sectionConfigs = []SectionConfig{
	{Name: "about", CommandID: "typing-about-cmd", ContentID: "about-content", Command: "cat about.txt"},
	{Name: "skills", CommandID: "typing-skills-cmd", ContentID: "skills-content", Command: "ls -la skills/"},
	{Name: "experience", CommandID: "typing-experience-cmd", ContentID: "experience-content", Command: "cat projects_experience.md"},
	{Name: "projects", CommandID: "typing-projects-cmd", ContentID: "projects-content", Command: "cat opensource_projects.md"},
	{Name: "blog", CommandID: "typing-blog-cmd", ContentID: "blog-content", Command: "ls -l note/"},
	{Name: "stats", CommandID: "typing-stats-cmd", ContentID: "stats-content", Command: "cat stats.json"},
	{Name: "contact", CommandID: "typing-contact-cmd", ContentID: "contact-content", Command: "cat contact.txt"},
}

func sectionByName(name string) (SectionConfig, bool) {
	for _, cfg := range sectionConfigs {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return SectionConfig{}, false
}

func sectionByContentID(id string) (SectionConfig, bool) {
	for _, cfg := range sectionConfigs {
		if cfg.ContentID == id {
			return cfg, true
		}
	}
	return SectionConfig{}, false
}

// staggerClasses are the children of a section revealed one after another.
var staggerClasses = []string{"output-line", "json-output", "skills-columns", "stats-container", "stats-container-left"}

// TypingTask emits text into its target one character per Tick.
type TypingTask struct {
	target   *Element
	text     []rune
	delay    time.Duration
	index    int
	done     func()
	finished bool
	inert    bool
}

func NewTypingTask(target *Element, text string, delay time.Duration, done func()) *TypingTask {
	return &TypingTask{
		target: target,
		text:   []rune(text),
		delay:  delay,
		done:   done,
	}
}

// Tick appends the next character and reports whether another tick is
// needed. The completion callback runs on the tick that appends the last
// character. A target removed from its document makes the task inert.
func (t *TypingTask) Tick() bool {
	if t.finished || t.inert {
		return false
	}
	if t.target == nil || t.target.Detached() {
		t.inert = true
		return false
	}
	if t.index < len(t.text) {
		t.target.AppendText(string(t.text[t.index]))
		t.index++
	}
	if t.index < len(t.text) {
		return true
	}
	t.finished = true
	if t.done != nil {
		t.done()
	}
	return false
}

// Visible is the prefix emitted so far.
func (t *TypingTask) Visible() string {
	return string(t.text[:t.index])
}

func (t *TypingTask) Finished() bool {
	return t.finished
}

// Step is one entry of a sequence: wait Delay, then run Action and wait
// for it to call done. A nil Action is a plain pause.
type Step struct {
	Name   string
	Delay  time.Duration
	Action func(ctx context.Context, done func())
}

// RunSequence drives steps strictly one after another. Cancelling ctx stops
// the driver before the next step starts.
func RunSequence(ctx context.Context, sched Scheduler, steps []Step, done func()) {
	runStep(ctx, sched, steps, 0, done)
}

func runStep(ctx context.Context, sched Scheduler, steps []Step, i int, done func()) {
	if ctx.Err() != nil {
		return
	}
	if i >= len(steps) {
		if done != nil {
			done()
		}
		return
	}
	st := steps[i]
	sched.After(st.Delay, func() {
		if ctx.Err() != nil {
			return
		}
		next := func() { runStep(ctx, sched, steps, i+1, done) }
		if st.Action == nil {
			next()
			return
		}
		fired := false
		st.Action(ctx, func() {
			if fired {
				return
			}
			fired = true
			next()
		})
	})
}

// Sequencer owns the typing animations and section reveals of one page.
type Sequencer struct {
	doc         *Document
	sched       Scheduler
	fade        *FadeEngine
	codeWindows *Observer
	motto       string

	// OnReveal runs once per section, when its content starts to show.
	OnReveal func(cfg SectionConfig)
}

func NewSequencer(doc *Document, sched Scheduler, fade *FadeEngine, motto string) *Sequencer {
	return &Sequencer{
		doc:         doc,
		sched:       sched,
		fade:        fade,
		codeWindows: NewObserver(codeWindowThreshold, 0),
		motto:       motto,
	}
}

// CodeWindows is the observer that defers code blocks until they scroll
// into view.
func (s *Sequencer) CodeWindows() *Observer {
	return s.codeWindows
}

// TypeText types text into target. The first character appears at once,
// the rest one per delay.
func (s *Sequencer) TypeText(ctx context.Context, target *Element, text string, delay time.Duration, done func()) *TypingTask {
	if target == nil {
		if done != nil {
			done()
		}
		return nil
	}
	task := NewTypingTask(target, text, delay, done)
	var tick func()
	tick = func() {
		if ctx.Err() != nil {
			return
		}
		if task.Tick() {
			s.sched.After(delay, tick)
		}
	}
	tick()
	return task
}

func (s *Sequencer) typeStep(id, text string, delay time.Duration) func(context.Context, func()) {
	return func(ctx context.Context, done func()) {
		s.TypeText(ctx, s.doc.ByID(id), text, delay, done)
	}
}

func (s *Sequencer) revealStep(id string, d time.Duration) func(context.Context, func()) {
	return func(_ context.Context, done func()) {
		if el := s.doc.ByID(id); el != nil {
			s.fadeIn(el, d)
		}
		done()
	}
}

func (s *Sequencer) revealAndTypeStep(id, text string, d time.Duration) func(context.Context, func()) {
	return func(ctx context.Context, done func()) {
		el := s.doc.ByID(id)
		if el == nil {
			done()
			return
		}
		s.fadeIn(el, d)
		s.TypeText(ctx, el, text, typingDelay, done)
	}
}

// IntroSteps is the boot sequence shown once the terminal opens.
func (s *Sequencer) IntroSteps() []Step {
	return []Step{
		{Name: "init-command", Delay: 200 * time.Millisecond, Action: s.typeStep("typing-init-cmd", initCommand, typingDelay)},
		{Name: "init-message-1", Delay: 80 * time.Millisecond, Action: s.revealAndTypeStep("init-message-1", initMessage1, statusFadeIn)},
		{Name: "init-message-2", Delay: 60 * time.Millisecond, Action: s.revealAndTypeStep("init-message-2", initMessage2, statusFadeIn)},
		{Name: "motto-command-line", Delay: 120 * time.Millisecond, Action: s.revealStep("motto-cmd-line", statusFadeIn)},
		{Name: "motto-command", Delay: 80 * time.Millisecond, Action: s.typeStep("typing-motto-cmd", mottoCommand, typingDelay)},
		{Name: "motto-content", Delay: 80 * time.Millisecond, Action: s.revealStep("motto-content", mottoFadeIn)},
		{Name: "motto", Delay: 100 * time.Millisecond, Action: s.typeStep("typing-motto", s.motto, mottoTypingDelay)},
		{Name: "first-section", Delay: 300 * time.Millisecond, Action: func(ctx context.Context, done func()) {
			s.TriggerSection(ctx, sectionConfigs[0])
			done()
		}},
	}
}

func (s *Sequencer) RunIntro(ctx context.Context, done func()) {
	RunSequence(ctx, s.sched, s.IntroSteps(), done)
}

// WatchSections subscribes every section except the first to obs. The
// first one is revealed by the intro.
func (s *Sequencer) WatchSections(ctx context.Context, obs *Observer) int {
	watched := 0
	for _, cfg := range sectionConfigs[1:] {
		el := s.doc.ByID(cfg.ContentID)
		if el == nil {
			continue
		}
		obs.Observe(el, func(target *Element) {
			if cfg, ok := sectionByContentID(target.ID); ok {
				s.TriggerSection(ctx, cfg)
			}
		})
		watched++
	}
	return watched
}

// TriggerSection reveals a section at most once per page load and reports
// whether this call started it.
func (s *Sequencer) TriggerSection(ctx context.Context, cfg SectionConfig) bool {
	content := s.doc.ByID(cfg.ContentID)
	if content == nil || content.Animated {
		return false
	}
	content.Animated = true
	s.revealSection(ctx, cfg)
	return true
}

func (s *Sequencer) revealSection(ctx context.Context, cfg SectionConfig) {
	cmd := s.doc.ByID(cfg.CommandID)
	content := s.doc.ByID(cfg.ContentID)
	if cmd == nil || content == nil {
		return
	}
	s.TypeText(ctx, cmd, cfg.Command, typingDelay, func() {
		s.sched.After(sectionRevealPause, func() {
			if ctx.Err() != nil {
				return
			}
			s.showContent(ctx, content)
			if s.OnReveal != nil {
				s.OnReveal(cfg)
			}
		})
	})
}

// fadeIn starts a transition to full opacity over d at the scheduler's pace.
func (s *Sequencer) fadeIn(el *Element, d time.Duration) {
	el.SetOpacity(1, s.sched.Scale(d), s.sched.Now())
}

func (s *Sequencer) showContent(ctx context.Context, content *Element) {
	now := s.sched.Now()
	s.fadeIn(content, contentFadeIn)

	lines := content.QueryAll(staggerClasses...)
	for i, line := range lines {
		line := line
		line.SetOpacity(0, 0, now)
		s.sched.After(time.Duration(i)*staggerStep, func() {
			if ctx.Err() != nil {
				return
			}
			s.fadeIn(line, lineFadeIn)
			if s.fade != nil {
				s.fade.Invalidate()
			}
		})
	}

	for _, cw := range content.QueryAll("code-window") {
		cw := cw
		before := linesBefore(content, cw)
		s.sched.After(time.Duration(before)*staggerStep+codeWindowBuffer, func() {
			if ctx.Err() != nil {
				return
			}
			s.codeWindows.Observe(cw, func(el *Element) {
				if ctx.Err() != nil {
					return
				}
				el.AddClass("visible")
				s.fadeIn(el, codeWindowFadeIn)
			})
		})
	}
}

// linesBefore counts the staggered lines that precede cw in document order.
func linesBefore(content, cw *Element) int {
	n := 0
	reached := false
	content.Walk(func(el *Element) bool {
		if reached {
			return false
		}
		if el == cw {
			reached = true
			return false
		}
		if el != content && el.hasAnyClass(staggerClasses) {
			n++
		}
		return true
	})
	return n
}
