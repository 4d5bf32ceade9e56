package model

import (
	"fmt"

	"fortio.org/safecast"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/source"
)

// Builder assembles a Model. It is not safe for concurrent use; the Model it
// publishes is.
type Builder struct {
	m         *Model
	linked    map[EntityID]struct{}
	published bool
}

// NewBuilder starts a model for the file at path. records are retained by
// the model and must not be modified afterwards.
func NewBuilder(path string, file source.FileID, records []decl.Record) *Builder {
	m := &Model{
		path:     path,
		file:     file,
		records:  records,
		entities: make([]Entity, 1, len(records)+1), // index 0 reserved for NoEntityID
		byRecord: make([]EntityID, len(records)),
	}
	return &Builder{m: m, linked: make(map[EntityID]struct{}, len(records))}
}

func (b *Builder) alloc(e Entity) EntityID {
	if b.published {
		panic("model: builder used after Publish")
	}
	value, err := safecast.Conv[uint32](len(b.m.entities))
	if err != nil {
		panic(fmt.Errorf("entity arena overflow: %w", err))
	}
	e.ID = EntityID(value)
	b.m.entities = append(b.m.entities, e)
	return e.ID
}

// AddRecord creates the entity of records[idx]. Each record gets at most one
// entity; a second call returns the existing one.
func (b *Builder) AddRecord(idx int) EntityID {
	if id := b.m.byRecord[idx]; id.IsValid() {
		return id
	}
	r := &b.m.records[idx]
	id := b.alloc(Entity{Record: r, Name: r.DisplayName(), Kind: r.Kind, Scope: r.Scope})
	b.m.byRecord[idx] = id
	return id
}

// AddSynthetic creates an undocumented scope entity.
func (b *Builder) AddSynthetic(kind decl.Kind, name string, scope []string) EntityID {
	return b.alloc(Entity{Name: name, Kind: kind, Scope: scope, Synthetic: true})
}

// Entity returns the entity under construction.
func (b *Builder) Entity(id EntityID) *Entity { return b.m.Get(id) }

// EntityOf returns the entity created for records[idx].
func (b *Builder) EntityOf(idx int) EntityID { return b.m.EntityOf(idx) }

// Top returns the top-level entities linked so far.
func (b *Builder) Top() []EntityID { return b.m.top }

// Link makes child owned by parent; NoEntityID as parent puts child at top
// level. A child is linked once.
func (b *Builder) Link(parent, child EntityID) {
	c := b.m.Get(child)
	if c == nil {
		panic(fmt.Sprintf("model: link of unknown entity %d", child))
	}
	if _, ok := b.linked[child]; ok {
		panic(fmt.Sprintf("model: entity %d linked twice", child))
	}
	b.linked[child] = struct{}{}
	if !parent.IsValid() {
		b.m.top = append(b.m.top, child)
		return
	}
	p := b.m.Get(parent)
	if p == nil || parent == child {
		panic(fmt.Sprintf("model: invalid parent %d for entity %d", parent, child))
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// Attach records the comment of an entity.
func (b *Builder) Attach(id EntityID, blk *comment.Block) {
	b.m.Get(id).Comment = blk
}

// SetGroup sets the documentation group of the file.
func (b *Builder) SetGroup(group string) { b.m.group = group }

// AddOrphan keeps a comment that documents nothing.
func (b *Builder) AddOrphan(blk comment.Block) { b.m.orphans = append(b.m.orphans, blk) }

// Publish freezes the model and builds its name index.
func (b *Builder) Publish() *Model {
	b.published = true
	m := b.m
	m.names = make(map[string][]EntityID, m.Len())
	for i := 1; i < len(m.entities); i++ {
		e := &m.entities[i]
		qn := e.QualifiedName()
		m.names[qn] = append(m.names[qn], e.ID)
	}
	return m
}
