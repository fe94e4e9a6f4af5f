package main

import (
	"testing"
	"time"
)

func newTestDocument() *Document {
	root := NewElement("root")
	section := NewElement("skills", "cmd-section")
	content := NewElement("skills-content", "section-content")
	content.Append(outputLine("one"), outputLine("two"))
	section.Append(cmdLine("", "$ ", "typing-skills-cmd"), content)
	root.Append(section)
	return NewDocument(root)
}

func TestDocumentByID(t *testing.T) {
	doc := newTestDocument()

	tests := []struct {
		id   string
		want bool
	}{
		{"skills", true},
		{"skills-content", true},
		{"typing-skills-cmd", true},
		{"missing", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := doc.ByID(tt.id) != nil
			if got != tt.want {
				t.Errorf("Expected ByID(%q) found=%v, got %v", tt.id, tt.want, got)
			}
		})
	}

	var nilDoc *Document
	if nilDoc.ByID("skills") != nil {
		t.Error("Expected nil document lookup to return nil")
	}
}

func TestAppendAfterAttachIndexes(t *testing.T) {
	doc := newTestDocument()
	late := NewElement("late")
	doc.ByID("skills-content").Append(late)

	if doc.ByID("late") != late {
		t.Error("Expected element appended after attach to be indexed")
	}
	if late.Detached() {
		t.Error("Expected appended element to be attached")
	}
}

func TestRemoveDetachesSubtree(t *testing.T) {
	doc := newTestDocument()
	section := doc.ByID("skills")
	cmd := doc.ByID("typing-skills-cmd")

	section.Remove()

	if !cmd.Detached() {
		t.Error("Expected descendant to be detached")
	}
	if doc.ByID("typing-skills-cmd") != nil {
		t.Error("Expected removed id to be unindexed")
	}
	if len(doc.Root.Children) != 0 {
		t.Errorf("Expected root to have no children, got %d", len(doc.Root.Children))
	}
}

func TestEffectiveOpacity(t *testing.T) {
	doc := newTestDocument()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	content := doc.ByID("skills-content")
	line := content.Children[0]

	content.SetOpacity(0, 0, now)
	if got := line.EffectiveOpacity(now); got != 0 {
		t.Errorf("Expected hidden parent to hide child, got %v", got)
	}

	content.SetOpacity(1, 100*time.Millisecond, now)
	if got := content.OpacityAt(now.Add(50 * time.Millisecond)); got != 0.5 {
		t.Errorf("Expected halfway transition at 0.5, got %v", got)
	}
	if got := content.Opacity(); got != 1 {
		t.Errorf("Expected target opacity 1, got %v", got)
	}

	line.Fade = 0.5
	if got := line.EffectiveOpacity(now.Add(time.Second)); got != 0.5 {
		t.Errorf("Expected fade to multiply into effective opacity, got %v", got)
	}
}

func TestQueryAllDocumentOrder(t *testing.T) {
	doc := newTestDocument()
	lines := doc.QueryAll("output-line", "cmd-line")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if !lines[0].HasClass("cmd-line") {
		t.Error("Expected command line first")
	}
	if lines[1].Text != "one" || lines[2].Text != "two" {
		t.Errorf("Expected output lines in order, got %q %q", lines[1].Text, lines[2].Text)
	}
}

func TestPlainTextCollapsed(t *testing.T) {
	item := NewElement("", "collapsible")
	item.Collapsed = true
	item.Append(outputLine("summary"), outputLine("detail"))

	if got := item.PlainText(false); len(got) != 1 || got[0] != "summary" {
		t.Errorf("Expected only the summary, got %v", got)
	}
	if got := item.PlainText(true); len(got) != 2 {
		t.Errorf("Expected summary and detail, got %v", got)
	}
}
