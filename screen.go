package main

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

const colorReset = "\x1b[0m"

// fgCode and bgCode emit 24-bit SGR sequences.
func fgCode(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

func bgCode(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

type cell struct {
	r    rune
	fg   colorful.Color
	bg   colorful.Color
	cont bool // right half of a wide rune
}

// screen is a fixed grid of coloured cells, drawn back to front.
type screen struct {
	w, h  int
	cells []cell
}

func newScreen(w, h int, bg colorful.Color) *screen {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s := &screen{w: w, h: h, cells: make([]cell, w*h)}
	for i := range s.cells {
		s.cells[i] = cell{r: ' ', fg: bg, bg: bg}
	}
	return s
}

func (s *screen) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return nil
	}
	return &s.cells[y*s.w+x]
}

func (s *screen) set(x, y int, r rune, fg colorful.Color) {
	c := s.at(x, y)
	if c == nil {
		return
	}
	// Overwriting either half of a wide rune blanks the other half.
	if c.cont {
		if left := s.at(x-1, y); left != nil {
			left.r = ' '
		}
	} else if right := s.at(x+1, y); right != nil && right.cont {
		right.r, right.cont = ' ', false
	}
	c.r, c.fg, c.cont = r, fg, false
}

// text draws str from column x and returns the column after it. Runes
// that would cross the right edge are dropped.
func (s *screen) text(x, y int, str string, fg colorful.Color) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > s.w {
			break
		}
		if x >= 0 {
			s.set(x, y, r, fg)
			if w == 2 {
				if right := s.at(x+1, y); right != nil {
					right.r, right.fg, right.cont = 0, fg, true
				}
			}
		}
		x += w
	}
	return x
}

func (s *screen) fill(x, y, w, h int, bg colorful.Color) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if c := s.at(col, row); c != nil {
				c.bg = bg
				c.r, c.cont = ' ', false
			}
		}
	}
}

// Lines returns the grid as plain text rows.
func (s *screen) Lines() []string {
	lines := make([]string, s.h)
	for y := 0; y < s.h; y++ {
		var b strings.Builder
		for x := 0; x < s.w; x++ {
			c := s.cells[y*s.w+x]
			if c.cont {
				continue
			}
			b.WriteRune(c.r)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// String renders the grid with colour codes, emitting a new code only
// where the colour changes.
func (s *screen) String() string {
	var out strings.Builder
	for y := 0; y < s.h; y++ {
		var fg, bg colorful.Color
		started := false
		for x := 0; x < s.w; x++ {
			c := s.cells[y*s.w+x]
			if c.cont {
				continue
			}
			if !started || c.bg != bg {
				out.WriteString(bgCode(c.bg))
				bg = c.bg
			}
			if !started || c.fg != fg {
				out.WriteString(fgCode(c.fg))
				fg = c.fg
			}
			started = true
			out.WriteRune(c.r)
		}
		out.WriteString(colorReset)
		if y < s.h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
