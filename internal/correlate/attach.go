package correlate

import (
	"fmt"
	"slices"
	"sort"

	"cppdoc/internal/diag"
)

// attachLeading pairs every leading block with the record whose lead-in
// starts at the block's anchor. Blocks are in source order, so of several
// blocks sharing an anchor the last one is the nearest. An unnamed class
// shares its lead with its first declarator, which takes the comment.
func (c *correlator) attachLeading() {
	leads := make(map[uint32]int, len(c.records))
	for i := range c.records {
		if c.records[i].IsAnonymous() {
			continue
		}
		if _, ok := leads[c.records[i].Lead]; !ok {
			leads[c.records[i].Lead] = i
		}
	}
	for bi := range c.blocks {
		blk := &c.blocks[bi]
		if blk.Trailing || c.groupMarker(bi) {
			continue
		}
		ri, ok := leads[blk.Anchor]
		if !ok {
			c.orphan(bi)
			continue
		}
		prev := c.docOf[ri]
		c.docOf[ri] = bi
		if prev >= 0 {
			c.ambiguous(prev, ri, "is superseded by a nearer comment")
		}
	}
}

// attachTrailing pairs every trailing block with the record that ends
// last before it, unless another declaration starts in between.
func (c *correlator) attachTrailing() {
	byEnd := make([]int, len(c.records))
	for i := range byEnd {
		byEnd[i] = i
	}
	slices.SortStableFunc(byEnd, func(a, b int) int {
		return int(c.records[a].Span.End) - int(c.records[b].Span.End)
	})
	leads := make([]uint32, len(c.records))
	for i := range c.records {
		leads[i] = c.records[i].Lead
	}
	slices.Sort(leads)

	for bi := range c.blocks {
		blk := &c.blocks[bi]
		if !blk.Trailing || c.groupMarker(bi) {
			continue
		}
		start := blk.Span.Start
		k := sort.Search(len(byEnd), func(i int) bool {
			return c.records[byEnd[i]].Span.End > start
		}) - 1
		if k < 0 {
			c.orphan(bi)
			continue
		}
		ri := byEnd[k]
		end := c.records[ri].Span.End
		j := sort.Search(len(leads), func(i int) bool { return leads[i] >= end })
		if j < len(leads) && leads[j] < start {
			c.orphan(bi)
			continue
		}
		if c.docOf[ri] >= 0 {
			c.ambiguous(bi, ri, "is ignored: the declaration already has a comment")
			continue
		}
		c.docOf[ri] = bi
	}
}

// ambiguous reports block bi as an orphan competing for record ri.
func (c *correlator) ambiguous(bi, ri int, what string) {
	r := &c.records[ri]
	notes := []diag.Note{{Span: r.NameSpan, Msg: fmt.Sprintf("%s %s declared here", r.Kind, r.QualifiedName())}}
	if cur := c.docOf[ri]; cur >= 0 && cur != bi {
		notes = append(notes, diag.Note{Span: c.blocks[cur].Span, Msg: "attached comment"})
	}
	c.report(diag.DocAttachmentAmbiguity, diag.SevWarning, c.blocks[bi].Span,
		"documentation comment "+what, notes)
	c.b.AddOrphan(c.blocks[bi])
}
