package mdselect

import "fmt"

// Position is a zero-based (line, character) location in a document.
// Positions are ordered lexicographically: first by line, then by character.
type Position struct {
	Line      int
	Character int
}

// Pos is a convenience constructor.
func Pos(line, character int) Position {
	return Position{Line: line, Character: character}
}

// Before reports whether p is strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// BeforeOrEqual reports whether p is before or equal to other.
func (p Position) BeforeOrEqual(other Position) bool {
	return p == other || p.Before(other)
}

// Translate returns the position shifted by the given line and character deltas.
func (p Position) Translate(lineDelta, characterDelta int) Position {
	return Position{Line: p.Line + lineDelta, Character: p.Character + characterDelta}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a span of text between two positions, Start <= End.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a range from raw line/character coordinates.
func NewRange(startLine, startChar, endLine, endChar int) Range {
	return Range{
		Start: Position{Line: startLine, Character: startChar},
		End:   Position{Line: endLine, Character: endChar},
	}
}

// Contains reports whether other lies entirely within r, boundaries included.
func (r Range) Contains(other Range) bool {
	return r.Start.BeforeOrEqual(other.Start) && other.End.BeforeOrEqual(r.End)
}

// ContainsPosition reports whether p lies within r, boundaries included.
func (r Range) ContainsPosition(p Position) bool {
	return r.Start.BeforeOrEqual(p) && p.BeforeOrEqual(r.End)
}

// Equals reports whether both ranges have identical start and end positions.
func (r Range) Equals(other Range) bool {
	return r.Start == other.Start && r.End == other.End
}

// SameLines reports whether both ranges start and end on the same lines,
// regardless of character offsets.
func (r Range) SameLines(other Range) bool {
	return r.Start.Line == other.Start.Line && r.End.Line == other.End.Line
}

// Translate returns the range with both endpoints shifted by the given deltas.
func (r Range) Translate(lineDelta, characterDelta int) Range {
	return Range{
		Start: r.Start.Translate(lineDelta, characterDelta),
		End:   r.End.Translate(lineDelta, characterDelta),
	}
}

// WithEnd returns the range truncated (or extended) to the given end position.
func (r Range) WithEnd(end Position) Range {
	return Range{Start: r.Start, End: end}
}

func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}
