// Package debug formats human readable dumps stored into debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per depth level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// Bytes returns accumulated text, suitable for Report.StoreData.
func (tw *TreeWriter) Bytes() []byte {
	return []byte(tw.w.String())
}

func (tw *TreeWriter) indent(depth int) {
	tw.w.WriteString(strings.Repeat("  ", max(depth, 0)))
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes "label: value" with value quoted so that multi-line or
// whitespace only text stays on one line.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Section writes header line followed by lines produced by fn one level
// deeper. Nothing is written when fn is nil.
func (tw *TreeWriter) Section(depth int, header string, fn func(depth int)) {
	if fn == nil {
		return
	}
	tw.Line(depth, "%s", header)
	fn(depth + 1)
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
