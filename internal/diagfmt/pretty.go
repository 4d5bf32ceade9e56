package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cppdoc/internal/diag"
	"cppdoc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, code, gutter, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pr := prettyPrinter{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for _, d := range bag.Items() {
		pr.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
}

func (p *prettyPrinter) located(code diag.Code, span source.Span) bool {
	return code.Located() && p.fs != nil && int(span.File) < p.fs.Len()
}

func (p *prettyPrinter) location(span source.Span) string {
	f := p.fs.Get(span.File)
	start := f.Position(span.Start)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, p.fs, p.opts.PathMode), start.Line, start.Col)
}

func (p *prettyPrinter) diagnostic(d *diag.Diagnostic) {
	located := p.located(d.Code, d.Primary)
	if located {
		fmt.Fprintf(p.w, "%s: ", p.pal.path.Sprint(p.location(d.Primary)))
	}
	fmt.Fprintf(p.w, "%s %s: %s\n",
		p.pal.severity(d.Severity).Sprint(d.Severity.String()),
		p.pal.code.Sprint(d.Code.ID()),
		d.Message)
	if located {
		p.snippet(d.Primary)
	}

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			label := p.pal.note.Sprint("note")
			if p.located(d.Code, n.Span) {
				fmt.Fprintf(p.w, "  %s: %s: %s\n", label, p.location(n.Span), n.Msg)
				continue
			}
			fmt.Fprintf(p.w, "  %s: %s\n", label, n.Msg)
		}
	}
	if p.opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(p.w, "  %s: %s\n", p.pal.note.Sprint("fix"), fix.Title)
			for _, e := range fix.Edits {
				fmt.Fprintf(p.w, "    %s -> %q\n", formatSpan(e.Span, p.fs), e.NewText)
			}
		}
	}
}

// snippet prints the primary line with Context lines above it and a caret
// line under the span. Multi-line spans are underlined to the end of the
// first line.
func (p *prettyPrinter) snippet(span source.Span) {
	f := p.fs.Get(span.File)
	start, end := p.fs.Resolve(span)

	first := start.Line
	if ctx := uint32(max(0, int(p.opts.Context))); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	gw := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		text := p.clip(expandTabs(f.GetLine(ln)))
		fmt.Fprintf(p.w, "%s %s\n", p.pal.gutter.Sprintf("%*d |", gw, ln), text)
	}

	line := f.GetLine(start.Line)
	startCol := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	width := max(1, runewidth.StringWidth(expandTabs(line[startCol:max(startCol, endCol)])))
	if p.opts.Width > 0 && pad+width > int(p.opts.Width) {
		width = max(1, int(p.opts.Width)-pad)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, "%s %s%s\n",
		p.pal.gutter.Sprintf("%*s |", gw, ""),
		strings.Repeat(" ", pad),
		p.pal.caret.Sprint(marker))
}

func (p *prettyPrinter) clip(line string) string {
	if p.opts.Width == 0 || runewidth.StringWidth(line) <= int(p.opts.Width) {
		return line
	}
	return runewidth.Truncate(line, int(p.opts.Width), "…")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// formatSpan renders "startLine:startCol-endLine:endCol", or the raw byte
// range without a file set.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
