package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

//go:embed assets/portfolio.yaml
var defaultContent []byte

type Content struct {
	Profile  Profile          `yaml:"profile"`
	Sections []SectionContent `yaml:"sections"`
}

type Profile struct {
	Name        string `yaml:"name" json:"name"`
	User        string `yaml:"user" json:"-"`
	Host        string `yaml:"host" json:"-"`
	Title       string `yaml:"title" json:"title"`
	Motto       string `yaml:"motto" json:"motto"`
	CareerStart string `yaml:"career_start" json:"career_start"`
	Email       string `yaml:"email" json:"email"`
	GitHub      string `yaml:"github" json:"github"`
}

type SectionContent struct {
	Name   string  `yaml:"name"`
	Title  string  `yaml:"title"`
	Blocks []Block `yaml:"blocks"`
}

// Block is one piece of section content. Type is one of text, json,
// columns, code, achievements or stats.
type Block struct {
	Type    string        `yaml:"type"`
	Title   string        `yaml:"title"`
	Lines   []string      `yaml:"lines"`
	Columns []Column      `yaml:"columns"`
	Items   []Achievement `yaml:"items"`
}

type Column struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

type Achievement struct {
	Title   string   `yaml:"title"`
	Details []string `yaml:"details"`
}

// LoadContent reads the portfolio file at path, or the built-in one when
// path is empty.
func LoadContent(path string) (*Content, error) {
	data := defaultContent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content: %w", err)
		}
		data = b
	}
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if c.Profile.User == "" {
		c.Profile.User = "visitor"
	}
	if c.Profile.Host == "" {
		c.Profile.Host = "portfolio"
	}
	return &c, nil
}

func (c *Content) Section(name string) (SectionContent, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionContent{}, false
}

func (c *Content) prompt() string {
	return fmt.Sprintf(promptTemplate, c.Profile.User, c.Profile.Host)
}

// careerStart parses "2006-01"; an unparsable value falls back to now.
func (c *Content) careerStart(now time.Time) time.Time {
	t, err := time.Parse("2006-01", c.Profile.CareerStart)
	if err != nil {
		return now
	}
	return t
}

// yearsOfExperience counts whole years since start, never less than one.
func yearsOfExperience(start, now time.Time) int {
	years := now.Year() - start.Year()
	months := int(now.Month()) - int(start.Month())
	if months < 0 || (months == 0 && now.Day() < start.Day()) {
		years--
	}
	if years < 1 {
		return 1
	}
	return years
}

func hidden(e *Element) *Element {
	e.SetOpacity(0, 0, time.Time{})
	return e
}

func inline(id, text string, classes ...string) *Element {
	e := NewElement(id, classes...)
	e.Inline = true
	e.Text = text
	return e
}

func cmdLine(id, prompt, typingID string) *Element {
	line := NewElement(id, "cmd-line")
	return line.Append(inline("", prompt, "prompt"), inline(typingID, "", "command"))
}

func outputLine(text string, classes ...string) *Element {
	e := NewElement("", append([]string{"output-line"}, classes...)...)
	e.Text = text
	return e
}

func blankLine() *Element {
	return NewElement("", "blank")
}

// BuildDocument lays out the fixed page: the boot lines, the motto, then one
// section per registered config that has content.
func BuildDocument(c *Content, stats Stats, now time.Time) *Document {
	years := yearsOfExperience(c.careerStart(now), now)
	expand := func(s string) string {
		return strings.ReplaceAll(s, "{{years}}", fmt.Sprint(years))
	}
	prompt := c.prompt()

	root := NewElement("terminal-body", "terminal-body")
	root.Append(
		cmdLine("", prompt, "typing-init-cmd"),
		hidden(NewElement("init-message-1", "output-line", "status")),
		hidden(NewElement("init-message-2", "output-line", "status")),
		hidden(cmdLine("motto-cmd-line", prompt, "typing-motto-cmd")),
		hidden(NewElement("motto-content", "motto-container")).Append(
			NewElement("", "output-line", "motto").Append(inline("typing-motto", "", "motto-text")),
		),
		blankLine(),
	)

	for _, cfg := range sectionConfigs {
		sc, ok := c.Section(cfg.Name)
		if !ok {
			continue
		}
		section := NewElement(cfg.Name, "cmd-section")
		content := hidden(NewElement(cfg.ContentID, "section-content"))
		for _, b := range sc.Blocks {
			content.Append(buildBlock(b, stats, years, expand)...)
		}
		section.Append(cmdLine("", prompt, cfg.CommandID), content, blankLine())
		root.Append(section)
	}
	return NewDocument(root)
}

func buildBlock(b Block, stats Stats, years int, expand func(string) string) []*Element {
	switch b.Type {
	case "json":
		e := NewElement("", "json-output")
		e.Pre = true
		e.Text = expand(strings.Join(b.Lines, "\n"))
		return []*Element{e}
	case "columns":
		e := NewElement("", "skills-columns")
		e.Pre = true
		e.Text = formatColumns(b.Columns)
		return []*Element{e}
	case "code":
		cw := hidden(NewElement("", "code-window"))
		cw.Prefix = "│ "
		title := NewElement("", "code-title")
		title.Text = "● ● ●  " + b.Title
		cw.Append(title)
		for _, l := range b.Lines {
			line := NewElement("", "code-line")
			line.Pre = true
			line.Text = l
			cw.Append(line)
		}
		return []*Element{cw}
	case "achievements":
		var out []*Element
		for _, it := range b.Items {
			item := NewElement("", "achievement-item", "collapsible")
			item.Collapsed = true
			item.Append(outputLine(expand(it.Title), "summary"))
			for _, d := range it.Details {
				detail := outputLine(expand(d), "detail")
				detail.Prefix = "    "
				item.Append(detail)
			}
			out = append(out, item)
		}
		return out
	case "stats":
		e := NewElement("", "stats-container")
		e.Pre = true
		e.Text = formatStats(stats, years)
		return []*Element{e}
	default:
		out := make([]*Element, 0, len(b.Lines))
		for _, l := range b.Lines {
			out = append(out, outputLine(expand(l)))
		}
		return out
	}
}

// formatColumns places the columns side by side, padded by cell width.
func formatColumns(cols []Column) string {
	widths := make([]int, len(cols))
	rows := 0
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.Title)
		for _, it := range c.Items {
			if w := runewidth.StringWidth(it) + 2; w > widths[i] {
				widths[i] = w
			}
		}
		if len(c.Items) > rows {
			rows = len(c.Items)
		}
	}
	var b strings.Builder
	for r := -1; r < rows; r++ {
		var line strings.Builder
		for i, c := range cols {
			cell := ""
			switch {
			case r < 0:
				cell = c.Title
			case r < len(c.Items):
				cell = "  " + c.Items[r]
			}
			line.WriteString(runewidth.FillRight(cell, widths[i]+3))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func formatStats(s Stats, years int) string {
	top := s.TopSection
	if top == "" {
		top = "none yet"
	}
	last := "never"
	if !s.LastVisit.IsZero() {
		last = s.LastVisit.Format("2006-01-02 15:04")
	}
	lines := []string{
		"{",
		fmt.Sprintf(`  "terminal_sessions": %d,`, s.Sessions),
		fmt.Sprintf(`  "sections_revealed": %d,`, s.SectionsRevealed),
		fmt.Sprintf(`  "most_read_section": %q,`, top),
		fmt.Sprintf(`  "web_visitors": %d,`, s.Visitors),
		fmt.Sprintf(`  "unique_web_visitors": %d,`, s.UniqueVisitors),
		fmt.Sprintf(`  "last_web_visit": %q,`, last),
		fmt.Sprintf(`  "years_of_experience": %d`, years),
		"}",
	}
	return strings.Join(lines, "\n")
}

// SectionLines renders one section as plain text with every panel open.
func SectionLines(c *Content, name string, stats Stats, now time.Time) ([]string, bool) {
	cfg, ok := sectionByName(name)
	if !ok {
		return nil, false
	}
	doc := BuildDocument(c, stats, now)
	el := doc.ByID(cfg.ContentID)
	if el == nil {
		return nil, false
	}
	return el.PlainText(true), true
}
