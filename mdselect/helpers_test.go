package mdselect

import "strings"

func docFromLines(lines ...string) *TextDocument {
	return NewTextDocument(strings.Join(lines, "\n"))
}

func tok(typ string, startLine, endLineExclusive, level int) BlockToken {
	return BlockToken{Type: typ, Map: []int{startLine, endLineExclusive}, Level: level}
}

// chainRanges flattens a chain innermost-out for assertions.
func chainRanges(node *SelectionRange) []Range {
	var ranges []Range
	for cur := node; cur != nil; cur = cur.Parent {
		ranges = append(ranges, cur.Range)
	}
	return ranges
}
