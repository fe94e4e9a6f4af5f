package main

import "math"

// Viewport is the visible window of the scrolling body, in rows.
type Viewport struct {
	ScrollTop int
	Height    int
}

type subscription struct {
	target *Element
	fn     func(*Element)
	done   bool
}

// Observer watches elements for entering the viewport. Every subscription
// is one-shot: its callback runs on the first check where the element's
// visible share reaches the threshold, and the subscription is dropped.
type Observer struct {
	threshold    float64
	bottomMargin float64
	subs         []*subscription
}

// NewObserver shrinks the root by bottomMargin (a fraction of the viewport
// height) before intersecting.
func NewObserver(threshold, bottomMargin float64) *Observer {
	return &Observer{threshold: threshold, bottomMargin: bottomMargin}
}

// Observe subscribes fn to the first intersection of el. The returned func
// cancels the subscription.
func (o *Observer) Observe(el *Element, fn func(*Element)) func() {
	if el == nil || fn == nil {
		return func() {}
	}
	s := &subscription{target: el, fn: fn}
	o.subs = append(o.subs, s)
	return func() { s.done = true }
}

func (o *Observer) Len() int {
	n := 0
	for _, s := range o.subs {
		if !s.done {
			n++
		}
	}
	return n
}

// Ratio is the share of box inside the viewport, after the bottom margin.
func (o *Observer) Ratio(b Box, vp Viewport) float64 {
	rootTop := float64(vp.ScrollTop)
	rootBottom := rootTop + float64(vp.Height)*(1-o.bottomMargin)
	top := float64(b.Top)
	bottom := float64(b.Bottom())
	if b.Height == 0 {
		if top >= rootTop && top < rootBottom {
			return 1
		}
		return 0
	}
	inter := math.Min(bottom, rootBottom) - math.Max(top, rootTop)
	if inter <= 0 {
		return 0
	}
	return inter / float64(b.Height)
}

// Check evaluates all subscriptions against a layout and returns how many
// fired. Elements missing from the layout are skipped.
func (o *Observer) Check(l Layout, vp Viewport) int {
	if vp.Height <= 0 {
		return 0
	}
	var due []*subscription
	live := o.subs[:0]
	for _, s := range o.subs {
		if s.done {
			continue
		}
		if s.target.Detached() {
			live = append(live, s)
			continue
		}
		b, ok := l.Box(s.target)
		if ok {
			if r := o.Ratio(b, vp); r > 0 && r >= o.threshold {
				s.done = true
				due = append(due, s)
				continue
			}
		}
		live = append(live, s)
	}
	o.subs = live
	for _, s := range due {
		s.fn(s.target)
	}
	return len(due)
}
