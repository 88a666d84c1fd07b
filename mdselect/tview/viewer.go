package tview

import (
	"sort"
	"strings"

	"github.com/Zeta-Naidi/mdselect/mdselect"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	selectionRegionID = "mdselect_selection"
	cursorRegionID    = "mdselect_cursor"
)

// tagMark is a tview tag to be inserted at a rune column of a source line.
type tagMark struct {
	col  int
	prio int
	tag  string
}

// Viewer is a TextView-based adapter around the core selection session. It
// renders the raw markdown source and overlays the cursor cell and the
// currently selected range as highlighted regions.
type Viewer struct {
	*tview.TextView

	session *mdselect.Session

	// sourceLines are the raw document lines the overlay tags are applied to.
	sourceLines []string

	onStateChanged func(*Viewer)
}

// NewViewer creates a new TextView-backed selection viewer.
func NewViewer() *Viewer {
	textView := tview.NewTextView()
	textView.SetBorder(false)
	textView.SetDynamicColors(true)
	textView.SetRegions(true)
	textView.SetWrap(false)
	textView.SetWordWrap(false)

	v := &Viewer{
		TextView: textView,
		session:  mdselect.NewSession(mdselect.SessionOptions{}),
	}
	v.TextView.SetInputCapture(v.handleKey)
	return v
}

// Session exposes the underlying UI-agnostic selection session.
func (v *Viewer) Session() *mdselect.Session { return v.session }

// SetStateChangedHandler sets a callback for when cursor or selection state changes.
func (v *Viewer) SetStateChangedHandler(handler func(*Viewer)) *Viewer {
	v.onStateChanged = handler
	return v
}

// SetMarkdown loads markdown content to display.
func (v *Viewer) SetMarkdown(content string) error {
	if err := v.session.SetDocument(content); err != nil {
		return err
	}
	v.sourceLines = strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	v.redraw()
	v.fireStateChanged()
	return nil
}

// handleKey intercepts keys before TextView's own scrolling so movement and
// expand/shrink act on the selection session. Unhandled keys pass through.
func (v *Viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		v.moveCursor(-1, 0)
	case tcell.KeyDown:
		v.moveCursor(1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)
	case tcell.KeyEnter:
		v.expand()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.shrink()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			v.moveCursor(-1, 0)
		case 'j':
			v.moveCursor(1, 0)
		case 'h':
			v.moveCursor(0, -1)
		case 'l':
			v.moveCursor(0, 1)
		case 'v':
			v.expand()
		case 'V':
			v.shrink()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

func (v *Viewer) moveCursor(deltaLine, deltaChar int) {
	v.session.SetCursor(v.session.Cursor().Translate(deltaLine, deltaChar))
	v.redraw()
	v.fireStateChanged()
}

func (v *Viewer) expand() {
	if v.session.Expand() {
		v.redraw()
		v.fireStateChanged()
	}
}

func (v *Viewer) shrink() {
	if v.session.Shrink() {
		v.redraw()
		v.fireStateChanged()
	}
}

func (v *Viewer) fireStateChanged() {
	if v.onStateChanged != nil {
		v.onStateChanged(v)
	}
}

func (v *Viewer) redraw() {
	if len(v.sourceLines) == 0 {
		v.SetText("")
		v.Highlight()
		return
	}

	cursor := v.session.Cursor()
	var selected *mdselect.Range
	if cur := v.session.Current(); cur != nil && cur.Range.Start.Before(cur.Range.End) {
		r := cur.Range
		selected = &r
	}

	var builder strings.Builder
	for i, line := range v.sourceLines {
		builder.WriteString(taggedLine(line, lineMarks(i, cursor, selected)))
		if i < len(v.sourceLines)-1 {
			builder.WriteString("\n")
		}
	}

	v.SetText(builder.String())
	if selected != nil {
		v.Highlight(selectionRegionID, cursorRegionID)
	} else {
		v.Highlight(cursorRegionID)
	}
	v.ScrollToHighlight()
}

// lineMarks computes the region tags to insert into line i. The selection
// region spans lines; it is opened on its start line and closed on its end
// line, and the tag state persists across newlines in between. The cursor
// region covers exactly one cell and, when it sits inside the selection,
// closes by reopening the selection region instead of ending all regions.
func lineMarks(i int, cursor mdselect.Position, selected *mdselect.Range) []tagMark {
	var marks []tagMark
	if selected != nil {
		if i == selected.Start.Line {
			marks = append(marks, tagMark{col: selected.Start.Character, prio: 1, tag: `["` + selectionRegionID + `"]`})
		}
		if i == selected.End.Line {
			marks = append(marks, tagMark{col: selected.End.Character, prio: 0, tag: `[""]`})
		}
	}
	if i == cursor.Line {
		closeTag := `[""]`
		if selected != nil && !cursor.Before(selected.Start) && cursor.Before(selected.End) {
			closeTag = `["` + selectionRegionID + `"]`
		}
		marks = append(marks,
			tagMark{col: cursor.Character, prio: 2, tag: `["` + cursorRegionID + `"]`},
			tagMark{col: cursor.Character + 1, prio: 0, tag: closeTag},
		)
	}
	sort.SliceStable(marks, func(a, b int) bool {
		if marks[a].col != marks[b].col {
			return marks[a].col < marks[b].col
		}
		return marks[a].prio < marks[b].prio
	})
	return marks
}

// taggedLine splits the line at the mark columns, escapes each raw segment
// so markdown brackets survive tview's tag parser, and splices in the tags.
// Marks past the end of the line pad it with spaces, which keeps the cursor
// cell visible on short and empty lines.
func taggedLine(line string, marks []tagMark) string {
	if len(marks) == 0 {
		return tview.Escape(line)
	}

	runes := []rune(line)
	var builder strings.Builder
	prev := 0
	for _, m := range marks {
		for ; prev < m.col; prev++ {
			if prev < len(runes) {
				builder.WriteString(tview.Escape(string(runes[prev])))
			} else {
				builder.WriteString(" ")
			}
		}
		builder.WriteString(m.tag)
	}
	if prev < len(runes) {
		builder.WriteString(tview.Escape(string(runes[prev:])))
	}
	return builder.String()
}
