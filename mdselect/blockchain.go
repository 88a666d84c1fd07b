package mdselect

import "sort"

// maxListNesting caps how deep the list-chain builder walks into nested list
// constructs. Fixed configuration constant, not derived from list structure.
const maxListNesting = 4

// SelectionRange is one node in a chain of nested selection ranges. The node
// itself is the innermost (tightest) selection; each Parent link points to the
// next larger enclosing range, up to a root with no parent.
type SelectionRange struct {
	Range  Range
	Parent *SelectionRange
}

// Depth returns the number of nodes in the chain, this node included.
func (s *SelectionRange) Depth() int {
	n := 0
	for cur := s; cur != nil; cur = cur.Parent {
		n++
	}
	return n
}

// buildBlockChain folds the block tokens enclosing the cursor line into a
// selection chain, widest token first, so each step produces the new innermost
// node. When a header-derived range is supplied it seeds the chain as the
// outermost parent; otherwise the widest token does.
func buildBlockChain(tokens []BlockToken, pos Position, doc Document, parent *SelectionRange) *SelectionRange {
	enclosing := blockTokensForLine(tokens, pos.Line)
	if len(enclosing) == 0 {
		return nil
	}

	current := parent
	if current == nil {
		current = createBlockRange(enclosing[0], doc, pos.Line, nil)
		enclosing = enclosing[1:]
	}

	for i, tok := range enclosing {
		if isListFamily(tok) {
			return buildListChain(enclosing[i:], pos.Line, doc, current)
		}
		current = createBlockRange(tok, doc, pos.Line, current)
	}
	return current
}

// blockTokensForLine filters the stream to structural tokens whose span covers
// the line and orders them by span length, longest (outermost) first.
func blockTokensForLine(tokens []BlockToken, line int) []BlockToken {
	var enclosing []BlockToken
	for _, tok := range tokens {
		if !tok.HasMap() {
			continue
		}
		if tok.Map[0] <= line && line < tok.Map[1] && isStructuralBlock(tok) {
			enclosing = append(enclosing, tok)
		}
	}
	sort.SliceStable(enclosing, func(i, j int) bool {
		return enclosing[i].SpanLength() > enclosing[j].SpanLength()
	})
	return enclosing
}

// rangeRelation classifies how a freshly computed block range relates to the
// accumulated parent node. The merge policy dispatches on this classification
// so every branch is enumerable and testable in isolation.
type rangeRelation int

const (
	relNoParent    rangeRelation = iota
	relEqual                     // parent and range coincide
	relContained                 // parent strictly contains range
	relSameLines                 // same start and end lines, not contained
	relEndOneAbove               // parent ends exactly one line above range's end
	relSameEndLine               // parent ends on range's end line
	relDisjoint
)

func classifyRelation(parent *SelectionRange, r Range) rangeRelation {
	switch {
	case parent == nil:
		return relNoParent
	case parent.Range.Equals(r):
		return relEqual
	case parent.Range.Contains(r):
		return relContained
	case parent.Range.SameLines(r):
		return relSameLines
	case parent.Range.End.Line == r.End.Line-1:
		return relEndOneAbove
	case parent.Range.End.Line == r.End.Line:
		return relSameEndLine
	default:
		return relDisjoint
	}
}

// mergeWithParent merges a computed block range into the chain. Branches that
// cannot relate the range to the parent return the parent unchanged; this
// silently drops the block as non-informative (a known source of missed
// expansion steps for non-standard constructs, kept for compatibility).
func mergeWithParent(r Range, parent *SelectionRange) *SelectionRange {
	switch classifyRelation(parent, r) {
	case relNoParent:
		return &SelectionRange{Range: r}
	case relContained:
		return &SelectionRange{Range: r, Parent: parent}
	case relEqual:
		return parent
	case relSameLines:
		if r.End.Character > parent.Range.End.Character {
			return &SelectionRange{Range: r}
		}
		return parent
	case relEndOneAbove:
		adjusted := Range{
			Start: r.Start,
			End:   Position{Line: r.End.Line - 1, Character: parent.Range.End.Character},
		}
		if adjusted.Equals(parent.Range) {
			return parent
		}
		return &SelectionRange{Range: adjusted, Parent: parent}
	case relSameEndLine:
		adjusted := Range{Start: parent.Range.Start, End: r.End}
		if adjusted.Equals(parent.Range) {
			return parent
		}
		// this block subsumes the parent, so skip a level
		return &SelectionRange{Range: adjusted, Parent: parent.Parent}
	default:
		return parent
	}
}

// createBlockRange produces the selection node for a single non-list token,
// merged into the accumulated parent.
func createBlockRange(tok BlockToken, doc Document, cursorLine int, parent *SelectionRange) *SelectionRange {
	if tok.Type == TokenFence {
		return createFencedRange(tok, cursorLine, doc, parent)
	}

	startLine := tok.Map[0]
	if doc.IsEmptyOrWhitespace(startLine) {
		startLine++
	}
	endLine := tok.Map[1] - 1
	if startLine == tok.Map[1] {
		endLine = tok.Map[1]
	}
	if tok.Type == TokenParagraphOpen && tok.SpanLength() == 2 {
		// tight paragraph whose nominal span over-counts
		startLine, endLine = cursorLine, cursorLine
	}

	r := NewRange(startLine, 0, endLine, doc.LineLength(endLine))
	return mergeWithParent(r, parent)
}

// buildListChain consumes a run of list-family tokens, one per nesting level,
// until the depth cap, the end of the stream, or a non-list token (which,
// along with the rest of the stream, is folded back through createBlockRange).
func buildListChain(tokens []BlockToken, cursorLine int, doc Document, parent *SelectionRange) *SelectionRange {
	current := parent
	level := 0
	for i := 0; i < len(tokens); i++ {
		if level >= maxListNesting {
			return current
		}
		tok := tokens[i]
		if !isListFamily(tok) {
			for ; i < len(tokens); i++ {
				current = createBlockRange(tokens[i], doc, cursorLine, current)
			}
			return current
		}
		if tok.Level == level {
			// top-level list maps extend through one trailing blank line
			// when the source has one; only then does it get stripped here
			endLine := tok.Map[1] - 1
			if level == 0 && doc.IsEmptyOrWhitespace(endLine) {
				endLine--
			}
			r := NewRange(tok.Map[0], 0, endLine, doc.LineLength(endLine))
			current = mergeListRange(r, current)
			level++
		}
	}
	return current
}

// mergeListRange links a list range into the chain, collapsing the previous
// node when a list item and its sole child list are coincident.
func mergeListRange(r Range, parent *SelectionRange) *SelectionRange {
	if parent != nil && startsWithinOneLine(r, parent.Range) && r.End.Line == parent.Range.End.Line {
		return &SelectionRange{Range: r, Parent: parent.Parent}
	}
	return &SelectionRange{Range: r, Parent: parent}
}

func startsWithinOneLine(r, other Range) bool {
	d := r.Start.Line - other.Start.Line
	return d >= -1 && d <= 1
}

// createFencedRange produces the selection node(s) for a fenced code block:
// an interior content range when the fence is tall enough and the cursor is
// not on a delimiter line, then the full fence range merged into the parent.
func createFencedRange(tok BlockToken, cursorLine int, doc Document, parent *SelectionRange) *SelectionRange {
	startLine := tok.Map[0]
	endLine := tok.Map[1] - 1
	onFenceLine := cursorLine == startLine || cursorLine == endLine

	fence := NewRange(startLine, 0, endLine, doc.LineLength(endLine))

	var content *Range
	if endLine-startLine > 2 && !onFenceLine {
		c := NewRange(startLine+1, 0, endLine-1, doc.LineLength(endLine-1))
		content = &c
	}

	fenceNode := mergeFenceRange(fence, parent)
	if content != nil && fenceNode.Range.Contains(*content) && !fenceNode.Range.Equals(*content) {
		return &SelectionRange{Range: *content, Parent: fenceNode}
	}
	return fenceNode
}

// mergeFenceRange merges the full fence range into the parent chain.
func mergeFenceRange(fence Range, parent *SelectionRange) *SelectionRange {
	switch classifyRelation(parent, fence) {
	case relNoParent:
		return &SelectionRange{Range: fence}
	case relContained:
		return &SelectionRange{Range: fence, Parent: parent}
	case relEqual:
		return parent
	case relSameLines:
		// the immediate parent shares the fence's lines without containing
		// it; attach to the nearest ancestor that actually does
		anc := parent
		for anc != nil && !(anc.Range.Contains(fence) && !anc.Range.Equals(fence)) {
			anc = anc.Parent
		}
		return &SelectionRange{Range: fence, Parent: anc}
	case relSameEndLine:
		return &SelectionRange{Range: fence}
	default:
		return parent
	}
}
