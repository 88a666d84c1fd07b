package mdselect

import "sort"

// buildHeaderChain builds the nested selection chain for the headings
// enclosing the cursor: each heading contributes its content range and its
// heading+content range, with the innermost heading optionally truncated just
// before its first subsection. Headings are folded outermost first so every
// inner heading nests inside the accumulated chain.
func buildHeaderChain(outline []HeadingEntry, pos Position, doc Document) *SelectionRange {
	enclosing, onHeaderLine := headingsForPosition(outline, pos)
	if len(enclosing) == 0 {
		return nil
	}

	var current *SelectionRange
	for i, h := range enclosing {
		innermost := i == len(enclosing)-1
		var boundary *Position
		if innermost {
			boundary = firstChildBoundary(h, outline, doc)
		}
		current = createHeaderRange(h, innermost, onHeaderLine, current, boundary)
	}
	return current
}

// headingsForPosition selects the headings whose range contains the cursor
// line, ordered outermost first (ascending start line: an enclosing heading
// always starts at or before any heading it contains). The second result
// reports whether the cursor sits on one of those headings' own lines.
func headingsForPosition(outline []HeadingEntry, pos Position) ([]HeadingEntry, bool) {
	var enclosing []HeadingEntry
	onHeaderLine := false
	for _, h := range outline {
		if h.Range.Start.Line <= pos.Line && pos.Line <= h.Range.End.Line {
			enclosing = append(enclosing, h)
			if h.Line == pos.Line {
				onHeaderLine = true
			}
		}
	}
	sort.SliceStable(enclosing, func(i, j int) bool {
		return enclosing[i].Line < enclosing[j].Line
	})
	return enclosing, onHeaderLine
}

// firstChildBoundary locates the position just before the heading's first
// nested child heading: the end of the last line of the heading's own content
// before its first subsection. Returns nil when the heading has no children.
// A child heading always starts after its parent's line, so child.Line-1 is
// never negative.
func firstChildBoundary(h HeadingEntry, outline []HeadingEntry, doc Document) *Position {
	var child *HeadingEntry
	for i := range outline {
		c := &outline[i]
		if h.Range.Contains(c.Range) && c.Line > h.Line {
			if child == nil || c.Line < child.Line {
				child = c
			}
		}
	}
	if child == nil {
		return nil
	}
	p := Position{Line: child.Line - 1, Character: doc.LineLength(child.Line - 1)}
	return &p
}

// createHeaderRange produces the chain nodes for one heading. full is the
// heading line plus all of its content; content skips the heading line.
func createHeaderRange(h HeadingEntry, innermost, onHeaderLine bool, parent *SelectionRange, childBoundary *Position) *SelectionRange {
	full := h.Range
	content := Range{Start: Position{Line: full.Start.Line + 1}, End: full.End}

	switch {
	case onHeaderLine && innermost && childBoundary != nil:
		// cursor on the heading line: heading+content up to the first
		// subsection, then the full heading+content
		return &SelectionRange{
			Range:  full.WithEnd(*childBoundary),
			Parent: &SelectionRange{Range: full, Parent: parent},
		}
	case onHeaderLine && innermost:
		return &SelectionRange{Range: full, Parent: parent}
	case innermost && childBoundary != nil:
		// cursor in content above the first subsection: partial content,
		// full content, heading+content
		return &SelectionRange{
			Range: content.WithEnd(*childBoundary),
			Parent: &SelectionRange{
				Range:  content,
				Parent: &SelectionRange{Range: full, Parent: containingParent(parent, full)},
			},
		}
	default:
		return &SelectionRange{
			Range:  content,
			Parent: &SelectionRange{Range: full, Parent: containingParent(parent, full)},
		}
	}
}

// containingParent drops a parent that does not enclose the heading, so a
// heading never links outward to a range it is not nested in.
func containingParent(parent *SelectionRange, full Range) *SelectionRange {
	if parent != nil && !parent.Range.Contains(full) {
		return nil
	}
	return parent
}
