package directive

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"cppdoc/internal/diag"
	"cppdoc/internal/source"
)

type Options struct {
	// Registry resolves command names; nil means the built-in vocabulary.
	Registry *Registry
	Reporter diag.Reporter
	// Span locates the comment for diagnostics.
	Span source.Span
	// LineMarker is the marker opening each line of a line comment run
	// ("///", "//!<"); empty for /* */ comments. Fixes use it to append a
	// closing command on a new comment line.
	LineMarker string
	// Subject wraps the whole content into ParamDoc{Name: Subject}; used for
	// enumerator trailing comments.
	Subject string
}

var defaultRegistry = sync.OnceValue(DefaultRegistry)

// State is the interpreter state handed to command handlers.
type State struct {
	src     string
	pos     int
	opts    Options
	reg     *Registry
	items   []Directive
	section *Directive
	pending strings.Builder
	group   string
}

// Parse interprets the cleaned text of one comment.
func Parse(text string, opts Options) Doc {
	st := &State{src: norm.NFC.String(text), opts: opts, reg: opts.Registry}
	if st.reg == nil {
		st.reg = defaultRegistry()
	}
	st.run()
	st.EndSection()
	st.flush()

	doc := Doc{Items: trimParagraphs(normalize(st.items)), Group: st.group}
	if opts.Subject != "" {
		doc = doc.Wrap(opts.Subject)
	}
	return doc
}

func (st *State) run() {
	for st.pos < len(st.src) {
		c := st.src[st.pos]
		switch {
		case c == '\n':
			if st.blankLineAhead() {
				st.paragraph()
				continue
			}
			st.pending.WriteByte(c)
			st.pos++
			continue
		case c == '`':
			st.codeSpan()
			continue
		case c == '\\' && strings.HasPrefix(st.src[st.pos:], `\f`):
			if st.formula() {
				continue
			}
		case c == '$':
			if st.dollarMath() {
				continue
			}
		case c == '@' || c == '\\':
			if st.command() {
				continue
			}
		}
		st.pending.WriteByte(c)
		st.pos++
	}
}

func (st *State) blankLineAhead() bool {
	j := st.pos + 1
	for j < len(st.src) && (st.src[j] == ' ' || st.src[j] == '\t' || st.src[j] == '\r') {
		j++
	}
	return j < len(st.src) && st.src[j] == '\n'
}

func (st *State) paragraph() {
	for st.pos < len(st.src) && isSpace(st.src[st.pos]) {
		st.pos++
	}
	st.EndSection()
	st.flush()
	if n := len(st.items); n > 0 && st.items[n-1].Kind != Paragraph {
		st.items = append(st.items, Directive{Kind: Paragraph})
	}
}

// codeSpan copies a backtick span verbatim so the inline pass sees it whole.
func (st *State) codeSpan() {
	n := 0
	for st.pos+n < len(st.src) && st.src[st.pos+n] == '`' {
		n++
	}
	fence := st.src[st.pos : st.pos+n]
	rest := st.src[st.pos+n:]
	end := strings.Index(rest, fence)
	if end < 0 || strings.Contains(rest[:end], "\n\n") {
		st.pending.WriteString(fence)
		st.pos += n
		return
	}
	st.pending.WriteString(st.src[st.pos : st.pos+n+end+n])
	st.pos += n + end + n
}

// formula handles \f$..\f$, \f(..\f) and \f[..\f].
func (st *State) formula() bool {
	if st.pos+2 >= len(st.src) {
		return false
	}
	var closer string
	kind := InlineMath
	switch st.src[st.pos+2] {
	case '$':
		closer = `\f$`
	case '(':
		closer = `\f)`
	case '[':
		closer, kind = `\f]`, MathBlock
	default:
		return false
	}
	st.pos += 3
	body, ok := st.Until(closer)
	if !ok {
		st.ReportUnclosed(diag.DocUnterminatedMath, "formula is not closed with "+closer, closer)
	}
	if kind == MathBlock {
		st.Emit(Directive{Kind: MathBlock, Text: dedent(body)})
	} else {
		st.Emit(Directive{Kind: InlineMath, Text: strings.TrimSpace(body)})
	}
	return true
}

func (st *State) dollarMath() bool {
	rest := st.src[st.pos+1:]
	end := strings.IndexByte(rest, '$')
	if end <= 0 || strings.Contains(rest[:end], "\n\n") {
		return false
	}
	st.Emit(Directive{Kind: InlineMath, Text: strings.TrimSpace(rest[:end])})
	st.pos += end + 2
	return true
}

func (st *State) command() bool {
	start := st.pos
	if start > 0 && isWordByte(st.src[start-1]) {
		// user@example.com
		return false
	}
	j := start + 1
	if st.src[start] == '@' && j < len(st.src) && (st.src[j] == '{' || st.src[j] == '}') {
		// группировка членов @{ @}
		st.pos = j + 1
		return true
	}
	for j < len(st.src) && isWordByte(st.src[j]) {
		j++
	}
	name := st.src[start+1 : j]
	if name == "" {
		return false
	}
	h, ok := st.reg.Lookup(name)
	if !ok {
		return false
	}
	cmd := Command{Name: name}
	if j < len(st.src) && st.src[j] == '[' {
		if end := strings.IndexByte(st.src[j:], ']'); end > 0 && !strings.Contains(st.src[j:j+end], "\n") {
			cmd.Dir = normalizeDir(st.src[j+1 : j+end])
			j += end + 1
		}
	}
	cmd.Raw = st.src[start:j]
	st.pos = j
	h(st, cmd)
	return true
}

func normalizeDir(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "")
	if s == "inout" {
		return "in,out"
	}
	return s
}

// ===== API для обработчиков =====

// Word reads the next whitespace-delimited word on the current line.
func (st *State) Word() (string, bool) {
	for st.pos < len(st.src) && (st.src[st.pos] == ' ' || st.src[st.pos] == '\t') {
		st.pos++
	}
	start := st.pos
	for st.pos < len(st.src) && !isSpace(st.src[st.pos]) {
		st.pos++
	}
	return st.src[start:st.pos], st.pos > start
}

// Line reads the rest of the current line, excluding the newline.
func (st *State) Line() string {
	start := st.pos
	for st.pos < len(st.src) && st.src[st.pos] != '\n' {
		st.pos++
	}
	return st.src[start:st.pos]
}

// Until reads raw text up to the first of the terminators and consumes the
// terminator. Without a terminator it takes the rest of the text and
// reports false.
func (st *State) Until(terms ...string) (string, bool) {
	rest := st.src[st.pos:]
	best, bestLen := -1, 0
	for _, t := range terms {
		if i := strings.Index(rest, t); i >= 0 && (best < 0 || i < best) {
			best, bestLen = i, len(t)
		}
	}
	if best < 0 {
		st.pos = len(st.src)
		return rest, false
	}
	st.pos += best + bestLen
	return rest[:best], true
}

// Peek returns the next unread byte, or 0 at the end.
func (st *State) Peek() byte {
	if st.pos < len(st.src) {
		return st.src[st.pos]
	}
	return 0
}

// Text appends literal text to the current paragraph.
func (st *State) Text(s string) { st.pending.WriteString(s) }

// Emit appends d to the open section or the current paragraph.
func (st *State) Emit(d Directive) {
	st.flush()
	t := st.target()
	*t = append(*t, d)
}

// Section closes the open section and opens d.
func (st *State) Section(d Directive) {
	st.EndSection()
	st.flush()
	st.section = &d
}

// EndSection closes the open section, if any.
func (st *State) EndSection() {
	if st.section == nil {
		return
	}
	st.flush()
	sec := *st.section
	sec.Children = normalize(sec.Children)
	st.section = nil
	st.items = append(st.items, sec)
}

// SetGroup records the @addtogroup name of the comment.
func (st *State) SetGroup(name string) { st.group = name }

// Report emits a diagnostic located at the comment.
func (st *State) Report(code diag.Code, sev diag.Severity, msg string) {
	if st.opts.Reporter == nil {
		return
	}
	st.opts.Reporter.Report(code, sev, st.opts.Span, msg, nil, nil)
}

// ReportUnclosed emits a warning carrying a fix that appends closer at the
// end of the comment.
func (st *State) ReportUnclosed(code diag.Code, msg, closer string) {
	diag.ReportWarning(st.opts.Reporter, code, st.opts.Span, msg).
		WithFix("insert "+closer, st.closeEdit(closer)).
		Emit()
}

// closeEdit inserts closer before "*/" of a block comment, or on a new
// line after the last line of a line comment run.
func (st *State) closeEdit(closer string) diag.FixEdit {
	sp := st.opts.Span
	if st.opts.LineMarker != "" {
		at := source.Span{File: sp.File, Start: sp.End, End: sp.End}
		return diag.FixEdit{Span: at, NewText: "\n" + st.opts.LineMarker + " " + closer}
	}
	end := sp.End
	if sp.Len() >= 4 {
		end -= 2
	}
	return diag.FixEdit{Span: source.Span{File: sp.File, Start: end, End: end}, NewText: " " + closer + " "}
}

func (st *State) target() *[]Directive {
	if st.section != nil {
		return &st.section.Children
	}
	return &st.items
}

func (st *State) flush() {
	if st.pending.Len() == 0 {
		return
	}
	text := st.pending.String()
	st.pending.Reset()
	t := st.target()
	*t = append(*t, inlineMarkup(text)...)
}

// normalize merges adjacent plain text and trims whitespace at the edges of
// every run of inline directives.
func normalize(items []Directive) []Directive {
	merged := make([]Directive, 0, len(items))
	for _, it := range items {
		if n := len(merged); it.Kind == PlainText && n > 0 && merged[n-1].Kind == PlainText {
			merged[n-1].Text += it.Text
			continue
		}
		merged = append(merged, it)
	}
	for i := range merged {
		if merged[i].Kind != PlainText {
			continue
		}
		if i == 0 || !merged[i-1].Kind.IsInline() {
			merged[i].Text = strings.TrimLeft(merged[i].Text, " \t\n")
		}
		if i == len(merged)-1 || !merged[i+1].Kind.IsInline() {
			merged[i].Text = strings.TrimRight(merged[i].Text, " \t\n")
		}
	}
	out := merged[:0]
	for _, it := range merged {
		if it.Kind == PlainText && it.Text == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isWordByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
