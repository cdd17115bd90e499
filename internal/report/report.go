// Package report writes the human-readable progress lines the sync tools
// print on stderr. It is separate from logging: these lines are always shown
// and carry no timestamps or levels.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Reporter prints tagged status lines to a writer.
type Reporter struct {
	w   io.Writer
	tag string
}

// New creates a reporter. When tag is non-empty every line is prefixed with
// "[tag] ".
func New(w io.Writer, tag string) *Reporter {
	return &Reporter{w: w, tag: tag}
}

func (r *Reporter) line(marker, format string, args ...any) {
	var b strings.Builder
	if r.tag != "" {
		b.WriteString("[" + r.tag + "] ")
	}
	if marker != "" {
		b.WriteString("[" + marker + "] ")
	}
	fmt.Fprintf(&b, format, args...)
	fmt.Fprintln(r.w, b.String())
}

// Infof prints a plain status line.
func (r *Reporter) Infof(format string, args ...any) {
	r.line("", format, args...)
}

// Donef prints a success line.
func (r *Reporter) Donef(format string, args ...any) {
	r.line("done", format, args...)
}

// Skipf prints a line for an item that was intentionally left alone.
func (r *Reporter) Skipf(format string, args ...any) {
	r.line("skip", format, args...)
}

// Warnf prints a recoverable problem.
func (r *Reporter) Warnf(format string, args ...any) {
	r.line("warn", format, args...)
}

// Errorf prints a fatal problem. It does not exit.
func (r *Reporter) Errorf(format string, args ...any) {
	r.line("error", format, args...)
}

// Item prints a bullet with indented detail lines.
func (r *Reporter) Item(title string, details ...string) {
	fmt.Fprintf(r.w, "  - %s\n", title)
	for _, d := range details {
		fmt.Fprintf(r.w, "    %s\n", d)
	}
}

// Blank prints an empty line.
func (r *Reporter) Blank() {
	fmt.Fprintln(r.w)
}

// Block prints text verbatim, adding a trailing newline if missing.
func (r *Reporter) Block(text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(r.w, text)
}
