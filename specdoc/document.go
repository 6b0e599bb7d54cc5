// Package specdoc parses extension specification texts and retrieves
// them from the registry web site.
//
// A specification is a plain text document made of blocks: one or
// more title lines starting in column zero, followed by an indented
// body.
package specdoc

import (
	"iter"
	"strings"

	"github.com/refaktor/glgen/textutils"
)

// Document is the text of one specification.
type Document struct {
	Source string
}

// Parse wraps src. Blocks are decomposed lazily.
func Parse(src string) *Document {
	return &Document{Source: src}
}

// Blocks yields (title, body) pairs in document order. Multi-line
// titles are joined with "\n". Bodies are dedented.
func (d *Document) Blocks() iter.Seq2[string, string] {
	return blocks(d.Source)
}

func blocks(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		var title, body []string
		for _, line := range splitLines(data) {
			isTitle := line != "" && strings.TrimLeft(line, " \t\v\f") == line
			if !isTitle {
				body = append(body, line)
				continue
			}
			if len(body) > 0 {
				if !yield(strings.Join(title, "\n"), textutils.Dedent(strings.Join(body, "\n"))) {
					return
				}
				title, body = nil, nil
			}
			title = append(title, line)
		}
		if len(body) > 0 {
			yield(strings.Join(title, "\n"), textutils.Dedent(strings.Join(body, "\n")))
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

const OverviewHeader = "Overview (from the spec)\n"

// Overview returns the first block titled "Overview..." formatted for
// a module docstring, or "" if there is none.
func (d *Document) Overview() string {
	for title, body := range d.Blocks() {
		if !strings.HasPrefix(title, "Overview") {
			continue
		}
		body = textutils.FoldASCII(strings.TrimRight(body, "\n"))
		return OverviewHeader + textutils.IndentString(body, "\t", 1) + "\n\n"
	}
	return ""
}

var getConstantMarkers = []string{"GetBooleanv", "GetIntegerv", "<pname> of Get"}

// GetConstants returns the tokens listed in the "New Tokens" sections
// as accepted by the glGet family, keyed by "GL_"+name.
func (d *Document) GetConstants() map[string]string {
	table := make(map[string]string)
	for title, block := range d.Blocks() {
		if !strings.HasPrefix(title, "New Tokens") {
			continue
		}
		for subTitle, section := range blocks(block) {
			if !containsAny(subTitle, getConstantMarkers) {
				continue
			}
			for _, line := range strings.Split(section, "\n") {
				if fields := strings.Fields(line); len(fields) == 2 {
					table["GL_"+fields[0]] = fields[1]
				}
			}
		}
	}
	return table
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
