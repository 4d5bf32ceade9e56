package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural invariants of the model and aggregates
// every violation found:
//   - every record has exactly one entity and that entity points back to it;
//   - every non-top entity has exactly one parent that lists it as a child;
//   - no entity is owned twice and every entity is reachable from Top;
//   - a record carrying the template prefix of enclosing class templates
//     is owned, directly or not, by a class;
//   - record spans lie inside the file.
func (m *Model) Validate(fileLen uint32) error {
	var errs []error

	for idx := range m.records {
		id := m.byRecord[idx]
		e := m.Get(id)
		if e == nil {
			errs = append(errs, fmt.Errorf("record %d (%s) has no entity", idx, m.records[idx].QualifiedName()))
			continue
		}
		if e.Record != &m.records[idx] {
			errs = append(errs, fmt.Errorf("entity %d does not point back to record %d", id, idx))
		}
	}

	owners := make(map[EntityID]EntityID, m.Len())
	for _, id := range m.top {
		if _, dup := owners[id]; dup {
			errs = append(errs, fmt.Errorf("entity %d listed twice at top level", id))
		}
		owners[id] = NoEntityID
	}
	for i := 1; i < len(m.entities); i++ {
		e := &m.entities[i]
		for _, c := range e.Children {
			if prev, dup := owners[c]; dup {
				errs = append(errs, fmt.Errorf("entity %d owned by both %d and %d", c, prev, e.ID))
				continue
			}
			owners[c] = e.ID
			if child := m.Get(c); child == nil || child.Parent != e.ID {
				errs = append(errs, fmt.Errorf("entity %d child %d missing parent backlink", e.ID, c))
			}
		}
	}
	for i := 1; i < len(m.entities); i++ {
		e := &m.entities[i]
		owner, ok := owners[e.ID]
		if !ok {
			errs = append(errs, fmt.Errorf("entity %d (%s) is not owned", e.ID, e.QualifiedName()))
			continue
		}
		if owner != e.Parent {
			errs = append(errs, fmt.Errorf("entity %d parent %d differs from owner %d", e.ID, e.Parent, owner))
		}
		if e.Synthetic && e.Record != nil {
			errs = append(errs, fmt.Errorf("synthetic entity %d carries a record", e.ID))
		}
	}

	for idx := range m.records {
		r := &m.records[idx]
		if r.Span.End > fileLen || r.Span.Start > r.Span.End {
			errs = append(errs, fmt.Errorf("record %d (%s) span %s outside file", idx, r.QualifiedName(), r.Span))
		}
		if len(r.OuterTemplate) == 0 || r.IsOutOfLine() {
			continue
		}
		e := m.Get(m.byRecord[idx])
		if e == nil {
			continue
		}
		if !m.insideClass(e) {
			errs = append(errs, fmt.Errorf("record %d (%s) has template prefix %q but no enclosing class",
				idx, r.QualifiedName(), strings.Join(r.OuterTemplate, " ")))
		}
	}

	return errors.Join(errs...)
}

func (m *Model) insideClass(e *Entity) bool {
	for p := m.Get(e.Parent); p != nil; p = m.Get(p.Parent) {
		if p.Kind.IsRecordType() {
			return true
		}
	}
	return false
}
