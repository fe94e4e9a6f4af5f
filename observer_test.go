package main

import (
	"math"
	"testing"
)

func layoutWith(boxes map[*Element]Box) Layout {
	return Layout{Width: 80, boxes: boxes}
}

func TestObserverRatio(t *testing.T) {
	tests := []struct {
		name   string
		margin float64
		box    Box
		vp     Viewport
		want   float64
	}{
		{"fully inside", 0, Box{Top: 10, Height: 5}, Viewport{0, 100}, 1},
		{"below viewport", 0, Box{Top: 120, Height: 5}, Viewport{0, 100}, 0},
		{"above viewport", 0, Box{Top: 0, Height: 10}, Viewport{20, 100}, 0},
		{"half visible at bottom", 0, Box{Top: 95, Height: 10}, Viewport{0, 100}, 0.5},
		{"scrolled into view", 0, Box{Top: 150, Height: 10}, Viewport{100, 100}, 1},
		{"hidden by bottom margin", 0.1, Box{Top: 92, Height: 8}, Viewport{0, 100}, 0},
		{"partly under margin", 0.1, Box{Top: 85, Height: 10}, Viewport{0, 100}, 0.5},
		{"empty box inside", 0, Box{Top: 10, Height: 0}, Viewport{0, 100}, 1},
		{"empty box outside", 0, Box{Top: 100, Height: 0}, Viewport{0, 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObserver(0.05, tt.margin)
			if got := o.Ratio(tt.box, tt.vp); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected ratio %v, got %v", tt.want, got)
			}
		})
	}
}

func TestObserverOneShot(t *testing.T) {
	doc := newTestDocument()
	el := doc.ByID("skills-content")
	l := layoutWith(map[*Element]Box{el: {Top: 5, Height: 5}})
	o := NewObserver(0.05, 0)

	calls := 0
	o.Observe(el, func(*Element) { calls++ })

	if n := o.Check(l, Viewport{0, 20}); n != 1 {
		t.Errorf("Expected 1 callback, got %d", n)
	}
	o.Check(l, Viewport{0, 20})
	o.Check(l, Viewport{3, 20})

	if calls != 1 {
		t.Errorf("Expected callback once, got %d", calls)
	}
	if o.Len() != 0 {
		t.Errorf("Expected subscription dropped, got %d", o.Len())
	}
}

func TestObserverThreshold(t *testing.T) {
	doc := newTestDocument()
	el := doc.ByID("skills-content")
	l := layoutWith(map[*Element]Box{el: {Top: 16, Height: 100}})
	o := NewObserver(0.05, 0)
	calls := 0
	o.Observe(el, func(*Element) { calls++ })

	// 4 of 100 rows visible
	o.Check(l, Viewport{0, 20})
	if calls != 0 {
		t.Fatal("Expected no callback below the threshold")
	}
	// 5 of 100 rows visible
	o.Check(l, Viewport{1, 20})
	if calls != 1 {
		t.Errorf("Expected callback at the threshold, got %d", calls)
	}
}

func TestObserverSkipsDetachedAndUnmeasured(t *testing.T) {
	doc := newTestDocument()
	content := doc.ByID("skills-content")
	section := doc.ByID("skills")
	o := NewObserver(0.05, 0)
	calls := 0
	o.Observe(content, func(*Element) { calls++ })

	if n := o.Check(layoutWith(map[*Element]Box{}), Viewport{0, 20}); n != 0 {
		t.Errorf("Expected unmeasured element skipped, got %d", n)
	}

	section.Remove()
	l := layoutWith(map[*Element]Box{content: {Top: 0, Height: 2}})
	if n := o.Check(l, Viewport{0, 20}); n != 0 {
		t.Errorf("Expected detached element skipped, got %d", n)
	}
	if calls != 0 {
		t.Errorf("Expected no callbacks, got %d", calls)
	}
}

func TestObserverCancel(t *testing.T) {
	doc := newTestDocument()
	el := doc.ByID("skills-content")
	o := NewObserver(0, 0)
	calls := 0
	cancel := o.Observe(el, func(*Element) { calls++ })
	cancel()

	o.Check(layoutWith(map[*Element]Box{el: {Top: 0, Height: 1}}), Viewport{0, 10})
	if calls != 0 {
		t.Errorf("Expected cancelled subscription not to fire, got %d", calls)
	}
}
