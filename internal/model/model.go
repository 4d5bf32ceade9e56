package model

import (
	"iter"
	"slices"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/directive"
	"cppdoc/internal/source"
)

// Model is the immutable entity model of one file.
type Model struct {
	path     string
	file     source.FileID
	group    string
	records  []decl.Record
	entities []Entity
	byRecord []EntityID
	top      []EntityID
	names    map[string][]EntityID
	orphans  []comment.Block
}

// Path is the path of the file the model was built from.
func (m *Model) Path() string { return m.path }

// File is the file ID inside the session FileSet.
func (m *Model) File() source.FileID { return m.file }

// Group is the documentation group of the file: the @addtogroup name or,
// by default, the name of the directory holding the file.
func (m *Model) Group() string { return m.group }

// Records returns the declaration records in source order.
func (m *Model) Records() []decl.Record { return m.records }

// Orphans returns the comments that document nothing.
func (m *Model) Orphans() []comment.Block { return m.orphans }

// Len reports the number of entities.
func (m *Model) Len() int { return len(m.entities) - 1 }

// DocumentedLen reports the number of entities with an attached comment.
func (m *Model) DocumentedLen() int {
	n := 0
	for i := 1; i < len(m.entities); i++ {
		if m.entities[i].Comment != nil {
			n++
		}
	}
	return n
}

// Get returns the entity or nil for an invalid ID.
func (m *Model) Get(id EntityID) *Entity {
	if !id.IsValid() || int(id) >= len(m.entities) {
		return nil
	}
	return &m.entities[id]
}

// EntityOf returns the entity of records[idx], NoEntityID if none.
func (m *Model) EntityOf(idx int) EntityID {
	if idx < 0 || idx >= len(m.byRecord) {
		return NoEntityID
	}
	return m.byRecord[idx]
}

// Doc returns the resolved documentation of an entity.
func (m *Model) Doc(id EntityID) directive.Doc {
	if e := m.Get(id); e != nil {
		return e.Resolved
	}
	return directive.Doc{}
}

// Top iterates the top-level entities in source order.
func (m *Model) Top() iter.Seq[*Entity] {
	return m.seq(m.top)
}

// Children iterates the children of id in source order.
func (m *Model) Children(id EntityID) iter.Seq[*Entity] {
	e := m.Get(id)
	if e == nil {
		return func(func(*Entity) bool) {}
	}
	return m.seq(e.Children)
}

func (m *Model) seq(ids []EntityID) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, id := range ids {
			if !yield(&m.entities[id]) {
				return
			}
		}
	}
}

// Lookup returns every entity with the qualified name, in creation order.
// Overloads share a name, so the result may hold several entities.
func (m *Model) Lookup(qname string) []*Entity {
	ids := m.names[qname]
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, &m.entities[id])
	}
	return out
}

// LookupSignature returns the callable with the qualified name and the
// parameter list sig, written as "(int, float)".
func (m *Model) LookupSignature(qname, sig string) (*Entity, bool) {
	for _, e := range m.Lookup(qname) {
		if e.Kind.IsCallable() && e.Signature() == sig {
			return e, true
		}
	}
	return nil, false
}

// Ancestors returns the owners of id, outermost first.
func (m *Model) Ancestors(id EntityID) []*Entity {
	var out []*Entity
	for e := m.Get(id); e != nil && e.Parent.IsValid(); {
		e = m.Get(e.Parent)
		out = append(out, e)
	}
	slices.Reverse(out)
	return out
}

// Walk visits the entity tree depth-first in source order. Returning false
// from fn skips the children of that entity.
func (m *Model) Walk(fn func(e *Entity, depth int) bool) {
	var walk func(ids []EntityID, depth int)
	walk = func(ids []EntityID, depth int) {
		for _, id := range ids {
			e := &m.entities[id]
			if fn(e, depth) {
				walk(e.Children, depth+1)
			}
		}
	}
	walk(m.top, 0)
}
