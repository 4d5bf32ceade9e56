package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"cppdoc/internal/directive"
	"cppdoc/internal/model"
)

// TreeOpts controls the entity tree dump.
type TreeOpts struct {
	// DocumentedOnly hides undocumented leaves; scopes stay when a
	// descendant is documented.
	DocumentedOnly bool
	// ShowDocs prints the resolved documentation under each entity.
	ShowDocs bool
}

// EntityOutput is the JSON form of one entity and its subtree.
type EntityOutput struct {
	Kind          string         `json:"kind"`
	Name          string         `json:"name"`
	QualifiedName string         `json:"qualified_name"`
	Signature     string         `json:"signature,omitempty"`
	Line          uint32         `json:"line,omitempty"`
	Synthetic     bool           `json:"synthetic,omitempty"`
	Doc           string         `json:"doc,omitempty"`
	Children      []EntityOutput `json:"children,omitempty"`
}

// FormatEntitiesPretty печатает дерево сущностей модели.
//
//	lib.hpp (group lib)
//	└─ namespace lib
//	   ├─ function lib::add(int, int) :12
//	   │    Adds two numbers.
func FormatEntitiesPretty(w io.Writer, m *model.Model, opts TreeOpts) error {
	fmt.Fprintf(w, "%s (group %s)\n", m.Path(), m.Group())
	tp := treePrinter{w: w, m: m, opts: opts}
	tp.level(collect(m.Top(), m, opts), "")
	return tp.err
}

// FormatEntityPretty печатает одну сущность вместе с её поддеревом.
func FormatEntityPretty(w io.Writer, m *model.Model, e *model.Entity, opts TreeOpts) error {
	tp := treePrinter{w: w, m: m, opts: opts}
	tp.level([]*model.Entity{e}, "")
	return tp.err
}

type treePrinter struct {
	w    io.Writer
	m    *model.Model
	opts TreeOpts
	err  error
}

func (tp *treePrinter) level(es []*model.Entity, prefix string) {
	for i, e := range es {
		last := i == len(es)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		line := prefix + branch + e.Kind.String() + " " + e.QualifiedName() + e.Signature()
		if e.Synthetic {
			line += " (synthetic)"
		} else {
			line += fmt.Sprintf(" :%d", e.Pos().Line)
		}
		if _, err := fmt.Fprintln(tp.w, line); err != nil && tp.err == nil {
			tp.err = err
		}
		if tp.opts.ShowDocs {
			if text := directive.Markdown(e.Resolved.Items); text != "" {
				for l := range strings.SplitSeq(text, "\n") {
					fmt.Fprintf(tp.w, "%s%s %s\n", prefix, next, l)
				}
			}
		}
		tp.level(collect(tp.m.Children(e.ID), tp.m, tp.opts), prefix+next)
	}
}

func collect(seq iter.Seq[*model.Entity], m *model.Model, opts TreeOpts) []*model.Entity {
	var out []*model.Entity
	for e := range seq {
		if opts.DocumentedOnly && !documentedSubtree(m, e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func documentedSubtree(m *model.Model, e *model.Entity) bool {
	if e.Documented() {
		return true
	}
	for c := range m.Children(e.ID) {
		if documentedSubtree(m, c) {
			return true
		}
	}
	return false
}

func buildEntities(m *model.Model, seq iter.Seq[*model.Entity], opts TreeOpts) []EntityOutput {
	var out []EntityOutput
	for _, e := range collect(seq, m, opts) {
		out = append(out, EntityOutput{
			Kind:          e.Kind.String(),
			Name:          e.Name,
			QualifiedName: e.QualifiedName(),
			Signature:     e.Signature(),
			Line:          e.Pos().Line,
			Synthetic:     e.Synthetic,
			Doc:           directive.Markdown(e.Resolved.Items),
			Children:      buildEntities(m, m.Children(e.ID), opts),
		})
	}
	return out
}

// FormatEntitiesJSON выводит дерево сущностей в JSON формате
func FormatEntitiesJSON(w io.Writer, m *model.Model, opts TreeOpts) error {
	output := struct {
		Path     string         `json:"path"`
		Group    string         `json:"group"`
		Entities []EntityOutput `json:"entities"`
	}{
		Path:     m.Path(),
		Group:    m.Group(),
		Entities: buildEntities(m, m.Top(), opts),
	}
	if output.Entities == nil {
		output.Entities = []EntityOutput{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
