package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	markerCollapsed = "▸ "
	markerExpanded  = "▾ "
)

type Segment struct {
	Text  string
	Owner *Element
}

// Row is one terminal row of the scrolling body. Owner is the block element
// the row was produced for.
type Row struct {
	Segments []Segment
	Owner    *Element
}

func (r Row) String() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

type Box struct {
	Top    int
	Height int
}

func (b Box) Bottom() int {
	return b.Top + b.Height
}

// Layout is a measurement of the document at one body width.
type Layout struct {
	Width int
	Rows  []Row
	boxes map[*Element]Box
}

func Measure(doc *Document, width int) Layout {
	l := Layout{Width: width, boxes: make(map[*Element]Box)}
	if doc == nil || doc.Root == nil || width <= 0 {
		return l
	}
	l.block(doc.Root, "", false)
	return l
}

func (l Layout) Box(e *Element) (Box, bool) {
	b, ok := l.boxes[e]
	return b, ok
}

func (l Layout) Height() int {
	return len(l.Rows)
}

func isLine(e *Element) bool {
	return e.HasClass("cmd-line") || e.HasClass("output-line") || e.HasClass("blank")
}

func (l *Layout) block(e *Element, prefix string, summary bool) {
	top := len(l.Rows)
	prefix += e.Prefix
	avail := l.Width - runewidth.StringWidth(prefix)
	if avail < 1 {
		avail = 1
	}

	var segs []Segment
	if summary {
		marker := markerExpanded
		if e.parent != nil && e.parent.Collapsed {
			marker = markerCollapsed
		}
		segs = append(segs, Segment{marker, e})
	}
	if e.Text != "" {
		segs = append(segs, Segment{e.Text, e})
	}
	inline := false
	for _, c := range e.Children {
		if c.Inline {
			inline = true
			segs = append(segs, Segment{c.Text, c})
		}
	}

	var rows [][]Segment
	switch {
	case len(segs) == 1 && !inline:
		for _, line := range wrapText(segs[0].Text, avail, e.Pre) {
			rows = append(rows, []Segment{{line, e}})
		}
	case len(segs) > 0:
		rows = wrapSegments(segs, avail)
	}
	if len(rows) == 0 && isLine(e) {
		rows = append(rows, nil)
	}
	for _, segs := range rows {
		row := Row{Owner: e}
		if prefix != "" {
			row.Segments = append(row.Segments, Segment{prefix, e})
		}
		row.Segments = append(row.Segments, segs...)
		l.Rows = append(l.Rows, row)
	}

	blocks := 0
	for _, c := range e.Children {
		if c.Inline {
			continue
		}
		if e.Collapsed && blocks > 0 {
			break
		}
		l.block(c, prefix, e.HasClass("collapsible") && blocks == 0)
		blocks++
	}
	l.boxes[e] = Box{Top: top, Height: len(l.Rows) - top}
}

// wrapText word-wraps prose and hard-wraps preformatted text.
func wrapText(text string, width int, pre bool) []string {
	if !pre {
		text = wordwrap.String(text, width)
	}
	text = wrap.String(text, width)
	return strings.Split(text, "\n")
}

// wrapSegments hard-wraps a run of differently owned segments, keeping each
// rune with its owner.
func wrapSegments(segs []Segment, width int) [][]Segment {
	var rows [][]Segment
	var row []Segment
	var cur strings.Builder
	var owner *Element
	col := 0

	flush := func() {
		if cur.Len() > 0 {
			row = append(row, Segment{cur.String(), owner})
			cur.Reset()
		}
	}
	newline := func() {
		flush()
		rows = append(rows, row)
		row = nil
		col = 0
	}

	for _, s := range segs {
		flush()
		owner = s.Owner
		for _, r := range s.Text {
			if r == '\n' {
				newline()
				continue
			}
			w := runewidth.RuneWidth(r)
			if col+w > width && col > 0 {
				newline()
			}
			cur.WriteRune(r)
			col += w
		}
	}
	flush()
	if len(row) > 0 || len(rows) == 0 {
		rows = append(rows, row)
	}
	return rows
}
