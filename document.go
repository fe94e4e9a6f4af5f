package main

import (
	"strings"
	"time"
)

// Element is one node of the page. Block elements stack vertically; inline
// elements are concatenated onto their parent's row.
type Element struct {
	ID       string
	Classes  []string
	Text     string
	Inline   bool
	Pre      bool
	Prefix   string
	Children []*Element

	// Fade and FadeOffset are written by the fade engine.
	Fade       float64
	FadeOffset float64

	Animated  bool
	Collapsed bool

	opacity transition
	parent  *Element
	doc     *Document
}

type transition struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

func (t transition) at(now time.Time) float64 {
	if t.duration <= 0 || !now.Before(t.start.Add(t.duration)) {
		return t.to
	}
	if now.Before(t.start) {
		return t.from
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	return t.from + (t.to-t.from)*p
}

func NewElement(id string, classes ...string) *Element {
	return &Element{
		ID:      id,
		Classes: classes,
		Fade:    1,
		opacity: transition{from: 1, to: 1},
	}
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) hasAnyClass(classes []string) bool {
	for _, c := range classes {
		if e.HasClass(c) {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(class string) {
	if !e.HasClass(class) {
		e.Classes = append(e.Classes, class)
	}
}

// SetOpacity starts a transition from the current value to v. A zero
// duration applies v at once.
func (e *Element) SetOpacity(v float64, d time.Duration, now time.Time) {
	e.opacity = transition{
		from:     e.opacity.at(now),
		to:       v,
		start:    now,
		duration: d,
	}
}

// Opacity is the value the element is transitioning towards.
func (e *Element) Opacity() float64 {
	return e.opacity.to
}

func (e *Element) OpacityAt(now time.Time) float64 {
	return e.opacity.at(now)
}

// EffectiveOpacity multiplies own, fade and ancestor opacity.
func (e *Element) EffectiveOpacity(now time.Time) float64 {
	v := 1.0
	for n := e; n != nil; n = n.parent {
		v *= n.opacity.at(now) * n.Fade
	}
	return v
}

// ShiftUnits sums the fade offsets along the ancestor chain.
func (e *Element) ShiftUnits() float64 {
	var v float64
	for n := e; n != nil; n = n.parent {
		v += n.FadeOffset
	}
	return v
}

func (e *Element) AppendText(s string) {
	e.Text += s
}

func (e *Element) Parent() *Element {
	return e.parent
}

// Detached reports whether the element is no longer part of a document.
func (e *Element) Detached() bool {
	return e.doc == nil
}

func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = e
		e.Children = append(e.Children, c)
		if e.doc != nil {
			e.doc.attach(c)
		}
	}
	return e
}

// Remove detaches the element and its subtree from the document.
func (e *Element) Remove() {
	if e.parent != nil {
		siblings := e.parent.Children
		for i, c := range siblings {
			if c == e {
				e.parent.Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		e.parent = nil
	}
	if e.doc != nil {
		e.doc.detach(e)
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// QueryAll returns descendants carrying any of the classes, in document order.
func (e *Element) QueryAll(classes ...string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(n *Element) bool {
			if n.hasAnyClass(classes) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// PlainText flattens the subtree into text lines. Collapsed panels keep only
// their summary unless expand is set.
func (e *Element) PlainText(expand bool) []string {
	var lines []string
	var walk func(n *Element)
	walk = func(n *Element) {
		var b strings.Builder
		b.WriteString(n.Text)
		for _, c := range n.Children {
			if c.Inline {
				b.WriteString(c.Text)
			}
		}
		if b.Len() > 0 {
			lines = append(lines, strings.Split(b.String(), "\n")...)
		}
		for i, c := range n.Children {
			if c.Inline {
				continue
			}
			if n.Collapsed && !expand && i > 0 {
				break
			}
			walk(c)
		}
	}
	walk(e)
	return lines
}

// Document indexes elements by id.
type Document struct {
	Root *Element
	byID map[string]*Element
}

func NewDocument(root *Element) *Document {
	d := &Document{Root: root, byID: make(map[string]*Element)}
	d.attach(root)
	return d
}

func (d *Document) attach(e *Element) {
	e.Walk(func(n *Element) bool {
		n.doc = d
		if n.ID != "" {
			d.byID[n.ID] = n
		}
		return true
	})
}

func (d *Document) detach(e *Element) {
	e.Walk(func(n *Element) bool {
		n.doc = nil
		if n.ID != "" && d.byID[n.ID] == n {
			delete(d.byID, n.ID)
		}
		return true
	})
}

// ByID returns nil when no attached element has the id.
func (d *Document) ByID(id string) *Element {
	if d == nil {
		return nil
	}
	return d.byID[id]
}

func (d *Document) QueryAll(classes ...string) []*Element {
	var out []*Element
	d.Root.Walk(func(n *Element) bool {
		if n.hasAnyClass(classes) {
			out = append(out, n)
		}
		return true
	})
	return out
}
