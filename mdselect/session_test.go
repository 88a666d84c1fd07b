package mdselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuideSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(SessionOptions{})
	require.NoError(t, s.SetDocument(guideSource))
	return s
}

func TestSessionExpandWalksOutward(t *testing.T) {
	s := newGuideSession(t)
	s.SetCursor(Pos(11, 0))

	require.Nil(t, s.Current(), "no selection before the first expansion")
	require.True(t, s.Expand())
	assert.Equal(t, NewRange(10, 0, 12, 18), s.Current().Range, "innermost first")

	require.True(t, s.Expand())
	assert.Equal(t, NewRange(9, 0, 13, 3), s.Current().Range)

	prev := s.Current().Range
	for s.Expand() {
		cur := s.Current().Range
		assert.True(t, cur.Contains(prev), "expansion only grows")
		prev = cur
	}
	assert.Equal(t, Pos(0, 0), s.Current().Range.Start, "terminates at the outermost section")
	assert.False(t, s.Expand(), "no further expansion at the root")
}

func TestSessionShrinkUndoesExpand(t *testing.T) {
	s := newGuideSession(t)
	s.SetCursor(Pos(11, 0))

	require.True(t, s.Expand())
	inner := s.Current().Range
	require.True(t, s.Expand())
	require.True(t, s.Expand())

	require.True(t, s.Shrink())
	require.True(t, s.Shrink())
	assert.Equal(t, inner, s.Current().Range)
	assert.False(t, s.Shrink(), "already at the innermost state")
}

func TestSessionCursorMoveResetsSelection(t *testing.T) {
	s := newGuideSession(t)
	s.SetCursor(Pos(11, 0))
	require.True(t, s.Expand())

	s.SetCursor(Pos(2, 0))
	assert.Nil(t, s.Current(), "moving the cursor drops the selection")
	assert.False(t, s.Shrink())

	require.True(t, s.Expand())
	assert.Equal(t, 2, s.Current().Range.Start.Line)
}

func TestSessionCursorClamped(t *testing.T) {
	s := newGuideSession(t)

	s.SetCursor(Pos(999, 999))
	assert.Equal(t, 15, s.Cursor().Line)
	assert.Equal(t, s.Document().LineLength(15), s.Cursor().Character)

	s.SetCursor(Pos(-3, -1))
	assert.Equal(t, Pos(0, 0), s.Cursor())
}

func TestSessionExpandWithoutDocument(t *testing.T) {
	s := NewSession(SessionOptions{})
	assert.False(t, s.Expand())
	assert.Equal(t, -1, s.Depth())
}

func TestSessionExpandOnBlankLineOutsideStructure(t *testing.T) {
	s := NewSession(SessionOptions{})
	require.NoError(t, s.SetDocument("para one\n\n\npara two"))
	s.SetCursor(Pos(1, 0))

	assert.False(t, s.Expand(), "nothing to select on an unowned blank line")
	assert.Nil(t, s.Current())
}
