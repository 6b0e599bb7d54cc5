package render

import (
	"bufio"
	"fmt"
	"strings"
)

// CodeBuilder is a wrapper around [strings.Builder] that simplifies
// building Python code line by line.
//
// The zero value is safely ready to use and indents with four spaces.
type CodeBuilder struct {
	// Indent is the indentation level.
	Indent int
	// IndentUnit is written Indent times before each line.
	IndentUnit string

	b strings.Builder
}

// Write appends a raw string to the internal [strings.Builder].
func (w *CodeBuilder) Write(s string) {
	w.b.WriteString(s)
}

// Append writes the given string line by line with correct indentation.
func (w *CodeBuilder) Append(s string) {
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		w.Linef("%v", sc.Text())
	}
}

// Linef writes a single line, prepended by the current indentation.
//
// Takes format and args like [fmt.Printf].
func (w *CodeBuilder) Linef(format string, args ...any) {
	unit := w.IndentUnit
	if unit == "" {
		unit = "    "
	}
	for range w.Indent {
		w.b.WriteString(unit)
	}
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteString("\n")
}

// String returns the current code.
func (w *CodeBuilder) String() string {
	return w.b.String()
}

// Reset discards the code and the indentation level.
func (w *CodeBuilder) Reset() {
	w.Indent = 0
	w.b.Reset()
}
