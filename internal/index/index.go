package index

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"strings"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/model"
	"cppdoc/internal/source"
)

// Entity is one exported declaration.
type Entity struct {
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	QualifiedName string      `json:"qualifiedname"`
	Definition    string      `json:"definition"`
	File          string      `json:"file"`
	Line          uint32      `json:"line"`
	Group         string      `json:"group"`
	Description   Description `json:"description"`
	// Content holds the members of classes and enums; nil for other kinds.
	Content *[]Entity `json:"content,omitempty"`
	Source  string    `json:"source"`
}

// Index is the exported document.
type Index struct {
	Index      []Entity          `json:"index"`
	GitTag     string            `json:"git_tag"`
	Repository string            `json:"repository"`
	Groups     map[string]string `json:"groups"`
}

type Options struct {
	// Root is the directory file paths are made relative to.
	Root string
	// Repository is the URL template; {TAG} is replaced by GitTag.
	Repository     string
	GitTag         string
	IncludeSource  bool
	DocumentedOnly bool
	// Groups maps group names to titles.
	Groups map[string]string
}

// Unit is one correlated file.
type Unit struct {
	File  *source.File
	Model *model.Model
}

// Build exports units in order.
func Build(units []Unit, opts Options) *Index {
	idx := &Index{
		Index:      []Entity{},
		GitTag:     opts.GitTag,
		Repository: strings.ReplaceAll(opts.Repository, "{TAG}", opts.GitTag),
		Groups:     maps.Clone(opts.Groups),
	}
	if idx.Groups == nil {
		idx.Groups = map[string]string{}
	}
	for _, u := range units {
		if u.Model == nil || u.File == nil {
			continue
		}
		x := exporter{opts: opts, file: u.File, m: u.Model, path: relPath(opts.Root, u.File.Path)}
		for e := range u.Model.Top() {
			idx.Index = x.export(e, idx.Index)
		}
	}
	return idx
}

// Write encodes idx with four-space indentation.
func (idx *Index) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return nil
}

// Read decodes an index written by Write.
func Read(r io.Reader) (*Index, error) {
	var idx Index
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &idx, nil
}

type exporter struct {
	opts Options
	file *source.File
	m    *model.Model
	path string
}

// export appends e to out. Members of an exported class or enum go into its
// content; members of anything else go next to it, so namespaces and
// undocumented scopes stay flat.
func (x *exporter) export(e *model.Entity, out []Entity) []Entity {
	if e.Synthetic || (x.opts.DocumentedOnly && !e.Documented()) {
		for c := range x.m.Children(e.ID) {
			out = x.export(c, out)
		}
		return out
	}

	ent := x.entity(e)
	if e.Kind.IsRecordType() || e.Kind.IsEnum() {
		content := []Entity{}
		for c := range x.m.Children(e.ID) {
			content = x.export(c, content)
		}
		ent.Content = &content
		return append(out, ent)
	}
	out = append(out, ent)
	for c := range x.m.Children(e.ID) {
		out = x.export(c, out)
	}
	return out
}

func (x *exporter) entity(e *model.Entity) Entity {
	r := e.Record
	ent := Entity{
		Type:          e.Kind.IndexType(),
		Name:          e.Name,
		QualifiedName: e.QualifiedName(),
		Definition:    r.Definition,
		File:          x.path,
		Line:          e.Pos().Line,
		Group:         x.m.Group(),
		Description:   Describe(x.m.Doc(e.ID)),
	}
	if ent.Description == nil {
		ent.Description = Description{}
	}
	if x.opts.IncludeSource {
		ent.Source = x.source(e)
	}
	return ent
}

func (x *exporter) source(e *model.Entity) string {
	if e.Kind == decl.Namespace {
		return e.Record.Definition + " { ... }"
	}
	span := e.Span()
	pad := x.file.Position(span.Start).Col - 1
	text := strings.Repeat(" ", int(pad)) + x.file.Slice(span)
	return comment.Clean(strings.ReplaceAll(text, "\t", "    "))
}

func relPath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	if filepath.IsAbs(root) != filepath.IsAbs(path) {
		if a, err := filepath.Abs(root); err == nil {
			root = a
		}
		if a, err := filepath.Abs(path); err == nil {
			path = a
		}
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
