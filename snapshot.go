package main

import (
	"fmt"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// imageSurface draws the rain into an RGBA image in pixels, painting a
// translucent rectangle over previous frames to leave trails.
type imageSurface struct {
	dc   *gg.Context
	face font.Face
}

func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func newImageSurface(w, h int) (*imageSurface, error) {
	face, err := monoFace(rainPixelCell)
	if err != nil {
		return nil, err
	}
	s := &imageSurface{face: face}
	s.Resize(w, h)
	return s, nil
}

func (s *imageSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

func (s *imageSurface) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.dc = gg.NewContext(w, h)
	s.dc.SetFontFace(s.face)
	s.dc.SetHexColor(colorBackground)
	s.dc.Clear()
}

func (s *imageSurface) Fade(alpha float64) {
	s.dc.SetRGBA255(10, 10, 10, int(alpha*255))
	s.dc.DrawRectangle(0, 0, float64(s.dc.Width()), float64(s.dc.Height()))
	s.dc.Fill()
}

func (s *imageSurface) DrawGlyph(r rune, x, y int) {
	s.dc.SetHexColor(colorRain)
	s.dc.DrawString(string(r), float64(x), float64(y+rainPixelCell))
}

func (s *imageSurface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

// writeRainSnapshot runs the rain for a number of steps on a pixel surface
// and saves the result.
func writeRainSnapshot(path string, w, h, steps int, orientation Orientation, seed int64) error {
	surface, err := newImageSurface(w, h)
	if err != nil {
		return err
	}
	rain := NewRain(surface, rainPixelCell, orientation, rand.New(rand.NewSource(seed)))
	for i := 0; i < steps; i++ {
		rain.Step()
	}
	if err := surface.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
