package textutils

import (
	"bytes"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiSpace = [256]bool{'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true}

// Prepends indent nIndent times to each line beginning in s,
// except for empty lines.
//
// Lines consisting only of whitespace are emptied.
func IndentString(s string, indent string, nIndent int) string {
	b := []byte(s)

	var res strings.Builder
	{
		nBOL := bytes.Count(b, []byte{'\n'}) + 1
		upperBound := len(s) + nBOL*nIndent*len(indent) // doesn't consider the fact that empty lines are ignored
		res.Grow(upperBound)
	}

	start := 0
	end := 0
	for start < len(b) {
		hitNewline := false
		end = bytes.Index(b[start:], []byte{'\n'})
		if end == -1 {
			end = len(b)
		} else {
			hitNewline = true
			end += start + 1 // adjust to offset and include "\n"
		}
		line := b[start:end]
		if slices.ContainsFunc(line, func(b byte) bool { return !asciiSpace[b] }) {
			for range nIndent {
				res.WriteString(indent)
			}
			res.Write(line)
		} else if hitNewline {
			res.WriteByte('\n')
		}
		start = end
	}

	return res.String()
}

// Dedent removes the longest whitespace prefix common to all
// non-blank lines of s. Blank lines are normalized to "".
func Dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := ""
	first := true
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		ws := ln[:len(ln)-len(strings.TrimLeftFunc(ln, unicode.IsSpace))]
		if first {
			margin = ws
			first = false
			continue
		}
		margin = commonPrefix(margin, ws)
		if margin == "" {
			break
		}
	}
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(ln, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// Bytes 0xD4 and 0xD5 show up in specification texts that were
// round-tripped through Mac Roman; both stand for an 'O'.
var legacyO = strings.NewReplacer("\xd4", "O", "\xd5", "O")

// FoldASCII reduces s to printable ASCII plus tab and newline.
// Accented letters lose their diacritics, everything else outside that
// range (including invalid UTF-8) is dropped.
func FoldASCII(s string) string {
	s = legacyO.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\t' || c == '\n' || (c >= 0x20 && c < 0x7f) {
			b.WriteByte(c)
		}
	}
	return b.String()
}
