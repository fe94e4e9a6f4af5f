package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a drawing target for the rain, measured in surface units
// (terminal cells or pixels).
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Fade(alpha float64)
	DrawGlyph(r rune, x, y int)
}

// Rain is the matrix-rain simulator: one drop per lane, advanced one cell
// per step.
type Rain struct {
	surface     Surface
	cellSize    int
	orientation Orientation
	rng         *rand.Rand
	charset     []rune
	drops       []int
	last        time.Time

	// Interval is the time between steps under Animate.
	Interval time.Duration
}

func NewRain(surface Surface, cellSize int, orientation Orientation, rng *rand.Rand) *Rain {
	if cellSize < 1 {
		cellSize = 1
	}
	r := &Rain{
		surface:     surface,
		cellSize:    cellSize,
		orientation: orientation,
		rng:         rng,
		charset:     []rune(rainCharacters),
		Interval:    rainInterval,
	}
	r.reset()
	return r
}

// bounds returns the travel length and the cross length in surface units.
func (r *Rain) bounds() (along, cross int) {
	w, h := r.surface.Size()
	if r.orientation == OrientationHorizontal {
		return w, h
	}
	return h, w
}

func (r *Rain) reset() {
	along, cross := r.bounds()
	n := cross / r.cellSize
	if n < 0 {
		n = 0
	}
	r.drops = make([]int, n)
	span := along/r.cellSize + 1
	for i := range r.drops {
		r.drops[i] = -r.rng.Intn(span)
	}
}

// Resize resizes the surface and restarts every drop at a random offset.
func (r *Rain) Resize(w, h int) {
	r.surface.Resize(w, h)
	r.reset()
}

func (r *Rain) Drops() []int {
	return r.drops
}

// restart is where a wrapped drop begins again: a full travel length
// before the leading edge.
func (r *Rain) restart() int {
	along, _ := r.bounds()
	return -int(math.Ceil(float64(along) / float64(r.cellSize)))
}

// Step paints one frame: fade the trail, draw a glyph per drop, advance.
func (r *Rain) Step() {
	r.surface.Fade(rainTrailAlpha)
	along, _ := r.bounds()
	for i := range r.drops {
		g := r.charset[r.rng.Intn(len(r.charset))]
		pos := r.drops[i] * r.cellSize
		if r.orientation == OrientationHorizontal {
			r.surface.DrawGlyph(g, pos, i*r.cellSize)
		} else {
			r.surface.DrawGlyph(g, i*r.cellSize, pos)
		}
		r.drops[i]++
		if r.drops[i]*r.cellSize > along && r.rng.Float64() < rainResetChance {
			r.drops[i] = r.restart()
		}
	}
}

// Animate is called from the frame loop and steps at most at the fixed
// rain rate, carrying the remainder so the pace does not drift.
func (r *Rain) Animate(now time.Time) bool {
	if r.last.IsZero() {
		r.last = now
		return false
	}
	if r.Interval <= 0 {
		r.Interval = rainInterval
	}
	elapsed := now.Sub(r.last)
	if elapsed <= r.Interval {
		return false
	}
	r.last = now.Add(-(elapsed % r.Interval))
	r.Step()
	return true
}

type rainCell struct {
	glyph     rune
	intensity float64
}

// gridSurface is a terminal-cell surface. Fading decays each cell's
// intensity instead of painting over it.
type gridSurface struct {
	w, h  int
	cells []rainCell
}

func newGridSurface(w, h int) *gridSurface {
	g := &gridSurface{}
	g.Resize(w, h)
	return g
}

func (g *gridSurface) Size() (int, int) {
	return g.w, g.h
}

func (g *gridSurface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.w, g.h = w, h
	g.cells = make([]rainCell, w*h)
}

func (g *gridSurface) Fade(alpha float64) {
	for i := range g.cells {
		c := &g.cells[i]
		c.intensity *= 1 - alpha
		if c.intensity < 0.05 {
			*c = rainCell{}
		}
	}
}

func (g *gridSurface) DrawGlyph(r rune, x, y int) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = rainCell{glyph: r, intensity: 1}
}

func (g *gridSurface) At(x, y int) rainCell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return rainCell{}
	}
	return g.cells[y*g.w+x]
}

// rainShade blends the rain colour into the background by intensity.
func rainShade(intensity float64) colorful.Color {
	bg, _ := colorful.Hex(colorBackground)
	fg, _ := colorful.Hex(colorRain)
	if intensity >= 1 {
		return fg.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.35)
	}
	return bg.BlendRgb(fg, intensity*0.6)
}
