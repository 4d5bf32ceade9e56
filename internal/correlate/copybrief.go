package correlate

import (
	"fmt"
	"strings"

	"cppdoc/internal/diag"
	"cppdoc/internal/directive"
	"cppdoc/internal/model"
)

type resolveState uint8

const (
	statePending resolveState = iota
	stateVisiting
	stateDone
)

// resolveCopybriefs replaces every @copybrief with a Brief holding the
// summary of its target. The result depends only on the parsed documents,
// so repeating the pass yields the same model.
func (c *correlator) resolveCopybriefs() {
	state := make(map[model.EntityID]resolveState)
	for ri := range c.records {
		c.resolveEntity(c.b.EntityOf(ri), state)
	}
}

func (c *correlator) resolveEntity(id model.EntityID, state map[model.EntityID]resolveState) {
	if state[id] != statePending {
		return
	}
	e := c.b.Entity(id)
	if len(e.Parsed.Copybriefs()) == 0 {
		state[id] = stateDone
		return
	}
	state[id] = stateVisiting
	e.Resolved = e.Parsed.Resolve(func(target string) ([]directive.Directive, bool) {
		return c.copyFrom(id, target, state)
	})
	state[id] = stateDone
}

func (c *correlator) copyFrom(from model.EntityID, target string, state map[model.EntityID]resolveState) ([]directive.Directive, bool) {
	e := c.b.Entity(from)
	sp := e.Comment.Span

	cands := c.lookup(from, target)
	if len(cands) == 0 {
		c.report(diag.DocUnresolvedReference, diag.SevWarning, sp,
			fmt.Sprintf("@copybrief %s: no documented declaration with this name is visible", target), nil)
		return nil, false
	}
	chosen, ok := c.choose(from, cands)
	if len(cands) > 1 {
		if !ok {
			c.report(diag.DocUnresolvedReference, diag.SevWarning, sp,
				fmt.Sprintf("@copybrief %s: %d overloads match and the %s policy does not choose", target, len(cands), c.opts.Policy),
				c.candidateNotes(cands))
			return nil, false
		}
		t := c.b.Entity(chosen)
		c.report(diag.DocOverloadChoice, diag.SevInfo, sp,
			fmt.Sprintf("@copybrief %s: %d overloads, using %s%s at line %d (%s policy)",
				target, len(cands), t.QualifiedName(), t.Signature(), t.Pos().Line, c.opts.Policy),
			nil)
	}

	switch state[chosen] {
	case stateVisiting:
		c.report(diag.DocCopybriefCycle, diag.SevWarning, sp,
			fmt.Sprintf("@copybrief %s: reference cycle", target), nil)
		return nil, false
	case statePending:
		c.resolveEntity(chosen, state)
	}
	t := c.b.Entity(chosen)
	summary := t.Resolved.Summary()
	if len(summary) == 0 {
		c.report(diag.DocUnresolvedReference, diag.SevWarning, sp,
			fmt.Sprintf("@copybrief %s: %s has no brief description", target, t.QualifiedName()), nil)
		return nil, false
	}
	return summary, true
}

// lookup finds the documented entities named by target, searching the scope
// chain of from outward. A qualified target resolves its first component
// this way and descends through the rest.
func (c *correlator) lookup(from model.EntityID, target string) []model.EntityID {
	if i := strings.IndexByte(target, '('); i >= 0 {
		target = target[:i]
	}
	global := strings.HasPrefix(target, "::")
	parts := strings.Split(strings.TrimPrefix(target, "::"), "::")

	if global {
		return c.descend([]model.EntityID{model.NoEntityID}, parts, from)
	}
	for scope := c.b.Entity(from).Parent; ; scope = c.b.Entity(scope).Parent {
		if found := c.descend([]model.EntityID{scope}, parts, from); len(found) > 0 {
			return found
		}
		if !scope.IsValid() {
			return nil
		}
	}
}

// descend resolves parts inside the given scopes. Reopened namespaces and
// redeclared classes share a name, so every matching scope is searched.
func (c *correlator) descend(scopes []model.EntityID, parts []string, self model.EntityID) []model.EntityID {
	for i, name := range parts {
		last := i == len(parts)-1
		var next []model.EntityID
		for _, s := range scopes {
			for _, id := range c.children(s) {
				e := c.b.Entity(id)
				if e.Name != name || id == self {
					continue
				}
				if last && e.Documented() || !last && e.Kind.IsScope() {
					next = append(next, id)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		scopes = next
	}
	return scopes
}

func (c *correlator) children(scope model.EntityID) []model.EntityID {
	if !scope.IsValid() {
		return c.b.Top()
	}
	return c.b.Entity(scope).Children
}

// choose applies the overload policy; candidates are in source order
// within each scope.
func (c *correlator) choose(from model.EntityID, cands []model.EntityID) (model.EntityID, bool) {
	if len(cands) == 1 {
		return cands[0], true
	}
	switch c.opts.Policy {
	case PolicyFirst:
		return c.earliest(cands), true
	case PolicyStrict:
		return model.NoEntityID, false
	}
	at := c.b.Entity(from).Span().Start
	best := model.NoEntityID
	for _, id := range cands {
		start := c.b.Entity(id).Span().Start
		if start < at && (!best.IsValid() || start > c.b.Entity(best).Span().Start) {
			best = id
		}
	}
	if best.IsValid() {
		return best, true
	}
	return c.earliest(cands), true
}

func (c *correlator) earliest(cands []model.EntityID) model.EntityID {
	best := cands[0]
	for _, id := range cands[1:] {
		if c.b.Entity(id).Span().Start < c.b.Entity(best).Span().Start {
			best = id
		}
	}
	return best
}

func (c *correlator) candidateNotes(cands []model.EntityID) []diag.Note {
	notes := make([]diag.Note, 0, len(cands))
	for _, id := range cands {
		e := c.b.Entity(id)
		notes = append(notes, diag.Note{Span: e.Record.NameSpan, Msg: "candidate " + e.QualifiedName() + e.Signature()})
	}
	return notes
}
