package correlate

import (
	"slices"
	"strings"

	"cppdoc/internal/decl"
	"cppdoc/internal/model"
)

// buildTree creates one entity per record and links it to its owner: the
// lexically enclosing record, or for out-of-line declarations the scope
// named by the qualifier. Missing scopes are synthesized.
func (c *correlator) buildTree() {
	for i := range c.records {
		id := c.b.AddRecord(i)
		if c.records[i].Kind.IsScope() && !c.records[i].IsAnonymous() {
			qn := c.records[i].QualifiedName()
			c.scopes[qn] = append(c.scopes[qn], id)
		}
	}
	for i := range c.records {
		r := &c.records[i]
		id := c.b.EntityOf(i)
		parent := model.NoEntityID
		switch {
		case r.IsOutOfLine():
			parent = c.scopeEntity(r.Scope, r.Kind)
		case r.Parent >= 0:
			parent = c.b.EntityOf(r.Parent)
		}
		if parent == id {
			parent = model.NoEntityID
		}
		c.b.Link(parent, id)
	}
}

// scopeEntity returns the entity of the scope path, creating synthetic
// entities for the missing levels. A defined class or namespace is
// preferred over a forward declaration.
func (c *correlator) scopeEntity(path []string, child decl.Kind) model.EntityID {
	if len(path) == 0 {
		return model.NoEntityID
	}
	qn := strings.Join(path, "::")
	if ids := c.scopes[qn]; len(ids) > 0 {
		for _, id := range ids {
			if e := c.b.Entity(id); e.Record == nil || !e.Record.Flags.Has(decl.FlagForward) {
				return id
			}
		}
		return ids[0]
	}

	kind := decl.Namespace
	switch child {
	case decl.Method, decl.Constructor, decl.Destructor:
		kind = decl.Class
	}
	outer := c.scopeEntity(path[:len(path)-1], decl.Namespace)
	id := c.b.AddSynthetic(kind, path[len(path)-1], slices.Clip(path[:len(path)-1]))
	c.b.Link(outer, id)
	c.scopes[qn] = []model.EntityID{id}
	return id
}

// attachDocs stores the attached blocks and their interpretation.
func (c *correlator) attachDocs() {
	for ri, bi := range c.docOf {
		if bi < 0 {
			continue
		}
		id := c.b.EntityOf(ri)
		blk := c.blocks[bi]
		c.b.Attach(id, &blk)
		doc := c.docs[bi]
		if blk.Trailing && c.records[ri].Kind == decl.Enumerator {
			doc = doc.Wrap(c.records[ri].Name)
		}
		e := c.b.Entity(id)
		e.Parsed = doc
		e.Resolved = doc
	}
}
