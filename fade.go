package main

import (
	"math"
	"time"
)

// FadeAt maps a line's position relative to the top of the viewport to its
// opacity and horizontal offset. Lines above the bottom fade zone are fully
// shown; inside it opacity follows a square-root ease of the distance to
// the viewport bottom; below the viewport they are hidden.
func FadeAt(relativeTop, viewportHeight float64) (opacity, offset float64) {
	fadeZone := viewportHeight * fadeZoneRatio
	fadeStart := viewportHeight - fadeZone
	switch {
	case relativeTop < fadeStart:
		return 1, 0
	case relativeTop < viewportHeight:
		progress := 1 - (relativeTop-fadeStart)/fadeZone
		eased := math.Sqrt(progress)
		return eased, fadeMaxOffset * (1 - eased)
	default:
		return 0, fadeMaxOffset
	}
}

type LineLayout struct {
	Element *Element
	Top     int
	Height  int
}

// LineLayoutCache is a snapshot of every command and output line taken at
// the last rebuild. It goes stale when the document changes shape until
// the next explicit rebuild.
type LineLayoutCache struct {
	lines []LineLayout
}

func (c *LineLayoutCache) Rebuild(doc *Document, l Layout) {
	c.lines = c.lines[:0]
	if doc == nil {
		return
	}
	for _, el := range doc.QueryAll("cmd-line", "output-line") {
		b, ok := l.Box(el)
		if !ok {
			continue
		}
		c.lines = append(c.lines, LineLayout{Element: el, Top: b.Top, Height: b.Height})
	}
}

func (c *LineLayoutCache) Lines() []LineLayout {
	return c.lines
}

// FadeEngine applies FadeAt to the cached lines at most once per frame.
type FadeEngine struct {
	sched    Scheduler
	doc      *Document
	measure  func() Layout
	viewport func() Viewport

	cache   LineLayoutCache
	ticking bool
	passes  int
}

func NewFadeEngine(sched Scheduler, doc *Document, measure func() Layout, viewport func() Viewport) *FadeEngine {
	return &FadeEngine{
		sched:    sched,
		doc:      doc,
		measure:  measure,
		viewport: viewport,
	}
}

// RequestUpdate is the scroll handler. Any number of calls before the next
// frame produce a single pass.
func (f *FadeEngine) RequestUpdate() {
	if f.ticking {
		return
	}
	f.ticking = true
	f.sched.NextFrame(f.Update)
}

// Update writes opacity and offset onto every cached line.
func (f *FadeEngine) Update() {
	f.ticking = false
	vp := f.viewport()
	if vp.Height <= 0 {
		return
	}
	f.passes++
	height := float64(vp.Height)
	for _, line := range f.cache.lines {
		opacity, offset := FadeAt(float64(line.Top-vp.ScrollTop), height)
		line.Element.Fade = opacity
		line.Element.FadeOffset = offset
	}
}

// Rebuild re-measures the document and refreshes the cache.
func (f *FadeEngine) Rebuild() {
	f.cache.Rebuild(f.doc, f.measure())
}

// Invalidate rebuilds the cache after a line was revealed and asks for a
// fresh pass on the next frame.
func (f *FadeEngine) Invalidate() {
	f.Rebuild()
	f.RequestUpdate()
}

// InvalidateAfter waits for transitions to settle before re-measuring.
func (f *FadeEngine) InvalidateAfter(d time.Duration) {
	f.sched.After(d, f.Invalidate)
}

func (f *FadeEngine) Cache() *LineLayoutCache {
	return &f.cache
}

// Passes counts completed recomputations.
func (f *FadeEngine) Passes() int {
	return f.passes
}
