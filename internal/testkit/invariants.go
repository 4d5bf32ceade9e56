// Package testkit holds invariant checks shared by pipeline tests.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/model"
	"cppdoc/internal/source"
)

// CheckRecordInvariants runs span invariants on extracted records:
// 1) every span is non-empty, points at sf and lies within its content
// 2) the name span lies inside the declaration span
// 3) the lexical parent exists and is a scope
func CheckRecordInvariants(records []decl.Record, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var errs []error
	for i := range records {
		r := &records[i]
		sp := r.Span
		switch {
		case sp.End <= sp.Start:
			errs = append(errs, fmt.Errorf("record %d (%s): empty span %v", i, r.QualifiedName(), sp))
		case sp.File != sf.ID:
			errs = append(errs, fmt.Errorf("record %d (%s): span file mismatch: got=%d want=%d", i, r.QualifiedName(), sp.File, sf.ID))
		case sp.End > lenContent:
			errs = append(errs, fmt.Errorf("record %d (%s): span end beyond content: %d > %d", i, r.QualifiedName(), sp.End, lenContent))
		}
		if !sp.Contains(r.NameSpan) {
			errs = append(errs, fmt.Errorf("record %d (%s): name span %v outside %v", i, r.QualifiedName(), r.NameSpan, sp))
		}
		if r.Lead != sp.Start {
			errs = append(errs, fmt.Errorf("record %d (%s): lead %d differs from span start %d", i, r.QualifiedName(), r.Lead, sp.Start))
		}
		if r.Parent < 0 {
			continue
		}
		if r.Parent >= len(records) || r.Parent == i {
			errs = append(errs, fmt.Errorf("record %d (%s): bad parent %d", i, r.QualifiedName(), r.Parent))
			continue
		}
		if p := &records[r.Parent]; !p.Kind.IsScope() {
			errs = append(errs, fmt.Errorf("record %d (%s): parent %s is a %s", i, r.QualifiedName(), p.QualifiedName(), p.Kind))
		}
	}
	return errors.Join(errs...)
}

// CheckBlockInvariants verifies that documentation blocks are ordered,
// disjoint and anchored after their own end.
func CheckBlockInvariants(blocks []comment.Block, sf *source.File) error {
	var errs []error
	for i := range blocks {
		b := &blocks[i]
		if b.Span.File != sf.ID || b.Span.End <= b.Span.Start {
			errs = append(errs, fmt.Errorf("block %d: bad span %v", i, b.Span))
		}
		if b.Anchor < b.Span.End {
			errs = append(errs, fmt.Errorf("block %d: anchor %d before block end %d", i, b.Anchor, b.Span.End))
		}
		if i > 0 && blocks[i-1].Span.End > b.Span.Start {
			errs = append(errs, fmt.Errorf("block %d overlaps block %d", i, i-1))
		}
	}
	return errors.Join(errs...)
}

// CheckAttachments verifies comment ownership in a correlated model:
// every block documents at most one entity, attached blocks are never
// reported as orphans, and a leading block ends before its declaration.
func CheckAttachments(m *model.Model) error {
	var errs []error
	owner := make(map[source.Span]string)
	m.Walk(func(e *model.Entity, _ int) bool {
		if e.Comment == nil {
			return true
		}
		if prev, dup := owner[e.Comment.Span]; dup {
			errs = append(errs, fmt.Errorf("block %v documents both %s and %s", e.Comment.Span, prev, e.QualifiedName()))
		}
		owner[e.Comment.Span] = e.QualifiedName()
		if e.Record != nil && !e.Comment.Trailing && e.Comment.Span.End > e.Record.Lead {
			errs = append(errs, fmt.Errorf("leading block %v ends inside %s", e.Comment.Span, e.QualifiedName()))
		}
		return true
	})
	for _, b := range m.Orphans() {
		if name, ok := owner[b.Span]; ok {
			errs = append(errs, fmt.Errorf("orphan block %v is attached to %s", b.Span, name))
		}
	}
	return errors.Join(errs...)
}
