package correlate

import (
	"path/filepath"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/directive"
	"cppdoc/internal/model"
	"cppdoc/internal/source"
)

type Options struct {
	Policy   Policy
	Reporter diag.Reporter
	// Registry is the directive vocabulary; nil means the built-in one.
	Registry *directive.Registry
}

type correlator struct {
	file    *source.File
	records []decl.Record
	blocks  []comment.Block
	docs    []directive.Doc
	opts    Options
	b       *model.Builder
	// docOf maps a record index to the index of its block, -1 when none.
	docOf []int
	// scopes maps qualified names to class, enum and namespace entities.
	scopes map[string][]model.EntityID
}

// Correlate builds the entity model of file from its declaration records and
// documentation blocks, both in source order. The model is complete, with
// copybriefs resolved, when it is returned.
func Correlate(file *source.File, records []decl.Record, blocks []comment.Block, opts Options) *model.Model {
	c := &correlator{
		file:    file,
		records: records,
		blocks:  blocks,
		opts:    opts,
		b:       model.NewBuilder(file.Path, file.ID, records),
		docOf:   make([]int, len(records)),
		scopes:  make(map[string][]model.EntityID),
	}
	for i := range c.docOf {
		c.docOf[i] = -1
	}

	c.parseBlocks()
	c.attachLeading()
	c.attachTrailing()
	c.buildTree()
	c.attachDocs()
	c.resolveCopybriefs()
	return c.b.Publish()
}

func (c *correlator) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if c.opts.Reporter == nil {
		return
	}
	c.opts.Reporter.Report(code, sev, sp, msg, notes, nil)
}

// parseBlocks interprets every block once and determines the file group.
func (c *correlator) parseBlocks() {
	c.docs = make([]directive.Doc, len(c.blocks))
	group := ""
	for i := range c.blocks {
		c.docs[i] = directive.Parse(c.blocks[i].Text, directive.Options{
			Registry:   c.opts.Registry,
			Reporter:   c.opts.Reporter,
			Span:       c.blocks[i].Span,
			LineMarker: lineMarker(&c.blocks[i]),
		})
		if group == "" {
			group = c.docs[i].Group
		}
	}
	if group == "" {
		group = defaultGroup(c.file.Path)
	}
	c.b.SetGroup(group)
}

// lineMarker is the per-line marker of a line comment run, empty for
// block comments.
func lineMarker(b *comment.Block) string {
	if b.Style.IsBlock() {
		return ""
	}
	if b.Trailing {
		return b.Style.String() + "<"
	}
	return b.Style.String()
}

// defaultGroup is the name of the directory holding path.
func defaultGroup(path string) string {
	dir := filepath.Dir(filepath.ToSlash(path))
	if dir == "." || dir == "/" {
		return ""
	}
	return filepath.Base(dir)
}

// groupMarker reports whether block i only sets the file group, like
// "/** @addtogroup core @{ */".
func (c *correlator) groupMarker(i int) bool {
	return c.docs[i].Empty() && c.docs[i].Group != ""
}

func (c *correlator) orphan(i int) {
	c.report(diag.DocOrphanComment, diag.SevInfo, c.blocks[i].Span,
		"documentation comment is not attached to any declaration", nil)
	c.b.AddOrphan(c.blocks[i])
}
