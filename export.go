package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fogleman/gg"
)

const (
	exportCharWidth  = 8.0
	exportCharHeight = 16.0
)

// exportView writes the screen as it is drawn now, once as text and once
// as an image, and returns both paths.
func (m *model) exportView(now time.Time) (string, string, error) {
	scr := m.render(now)
	stamp := now.Format("20060102-150405")
	txtPath := m.config.GetExportPath("termfolio-" + stamp + ".txt")
	pngPath := m.config.GetExportPath("termfolio-" + stamp + ".png")
	if err := exportScreenTXT(scr, txtPath); err != nil {
		return "", "", err
	}
	if err := exportScreenPNG(scr, pngPath); err != nil {
		return txtPath, "", err
	}
	return txtPath, pngPath, nil
}

func exportScreenTXT(scr *screen, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range scr.Lines() {
		fmt.Fprintln(file, line)
	}
	return nil
}

func exportScreenPNG(scr *screen, filename string) error {
	if scr.w == 0 || scr.h == 0 {
		return fmt.Errorf("nothing to export")
	}
	dc := gg.NewContext(int(float64(scr.w)*exportCharWidth), int(float64(scr.h)*exportCharHeight))
	face, err := monoFace(13)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	for y := 0; y < scr.h; y++ {
		for x := 0; x < scr.w; x++ {
			c := scr.cells[y*scr.w+x]
			px, py := float64(x)*exportCharWidth, float64(y)*exportCharHeight
			dc.SetColor(c.bg)
			dc.DrawRectangle(px, py, exportCharWidth, exportCharHeight)
			dc.Fill()
			if c.cont || c.r == ' ' || c.r == 0 {
				continue
			}
			dc.SetColor(c.fg)
			dc.DrawString(string(c.r), px, py+exportCharHeight-4)
		}
	}
	return dc.SavePNG(filename)
}
