package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/atotto/clipboard"
)

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func easeOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// shiftCells converts a fade offset to whole cells, never more than the
// body padding.
func shiftCells(e *Element) int {
	if e == nil {
		return 0
	}
	return clampInt(int(math.Round(e.ShiftUnits()/unitsPerCell)), -bodyPadding, 0)
}

// contactText is the contact section as plain text, panels expanded.
func contactText(doc *Document) (string, error) {
	cfg, _ := sectionByName("contact")
	el := doc.ByID(cfg.ContentID)
	if el == nil {
		return "", fmt.Errorf("no contact section")
	}
	lines := el.PlainText(true)
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func copyContact(doc *Document) error {
	text, err := contactText(doc)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

func generateSalt() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate salt:", err)
	}
	return hex.EncodeToString(bytes)
}
