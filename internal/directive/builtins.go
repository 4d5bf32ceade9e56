package directive

import (
	"strings"

	"cppdoc/internal/diag"
)

func registerBuiltins(r *Registry) {
	for _, name := range []string{"c", "p"} {
		r.Register(name, wordCommand(InlineCode, 0))
	}
	for _, name := range []string{"e", "em", "a"} {
		r.Register(name, wordCommand(Emphasis, 1))
	}
	r.Register("b", wordCommand(Emphasis, 2))
	r.Register("ref", refCommand)
	r.Register("copybrief", copybriefCommand)
	r.Register("code", codeCommand)
	r.Register("addtogroup", groupCommand)

	sections := map[Kind][]string{
		Brief:        {"brief", "short"},
		Returns:      {"return", "returns", "result"},
		Note:         {"note"},
		See:          {"see", "sa"},
		Details:      {"details", "remark", "remarks"},
		ThreadSafety: {"threadsafe", "threadsafety"},
	}
	for kind, names := range sections {
		for _, name := range names {
			r.Register(name, sectionCommand(kind, false))
		}
	}
	named := map[Kind][]string{
		ParamDoc:  {"param"},
		TParamDoc: {"tparam"},
		Throws:    {"throw", "throws", "exception", "exceptions"},
	}
	for kind, names := range named {
		for _, name := range names {
			r.Register(name, sectionCommand(kind, true))
		}
	}

	// структурные команды: имя сущности берётся из объявления
	for _, name := range []string{"class", "struct", "union", "fn", "enum", "typedef", "concept", "namespace", "var", "def", "file"} {
		r.Register(name, dropLine)
	}
}

func missingArgument(st *State, cmd Command) {
	st.Report(diag.DocMissingCommandTarget, diag.SevWarning, cmd.Raw+" requires an argument")
	st.Text(cmd.Raw)
}

func wordCommand(kind Kind, level int) Handler {
	return func(st *State, cmd Command) {
		w, ok := st.Word()
		if !ok {
			missingArgument(st, cmd)
			return
		}
		st.Emit(Directive{Kind: kind, Text: w, Level: level})
	}
}

func refCommand(st *State, cmd Command) {
	w, ok := st.Word()
	if !ok {
		missingArgument(st, cmd)
		return
	}
	st.Emit(Directive{Kind: Ref, Name: w, Text: w})
}

func copybriefCommand(st *State, cmd Command) {
	w, ok := st.Word()
	w = strings.TrimRight(w, ".,;")
	if !ok || w == "" {
		missingArgument(st, cmd)
		return
	}
	st.EndSection()
	st.Emit(Directive{Kind: Copybrief, Name: w})
}

func sectionCommand(kind Kind, named bool) Handler {
	return func(st *State, cmd Command) {
		d := Directive{Kind: kind, Dir: cmd.Dir}
		if named {
			w, ok := st.Word()
			if !ok {
				st.Report(diag.DocMissingCommandTarget, diag.SevWarning, cmd.Raw+" requires a name")
			}
			d.Name = w
		}
		st.Section(d)
	}
}

// codeCommand reads @code{.lang} ... @endcode verbatim.
func codeCommand(st *State, cmd Command) {
	lang := ""
	if st.Peek() == '{' {
		if l, ok := st.Until("}"); ok {
			lang = strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(l, "{")), ".")
		}
	}
	body, ok := st.Until("@endcode", `\endcode`)
	if !ok {
		closer := "@endcode"
		if strings.HasPrefix(cmd.Raw, `\`) {
			closer = `\endcode`
		}
		st.ReportUnclosed(diag.DocUnterminatedCode, cmd.Raw+" without "+closer, closer)
	}
	st.Emit(Directive{Kind: CodeBlock, Name: lang, Text: dedent(body)})
}

func groupCommand(st *State, cmd Command) {
	w, ok := st.Word()
	if !ok {
		missingArgument(st, cmd)
		return
	}
	st.SetGroup(w)
	st.Line()
}

func dropLine(st *State, _ Command) {
	st.Line()
}
