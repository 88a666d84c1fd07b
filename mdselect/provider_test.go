package mdselect

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var guideSource = strings.Join([]string{
	"# Guide",              // 0
	"",                     // 1
	"Some intro text.",     // 2
	"",                     // 3
	"## Usage",             // 4
	"",                     // 5
	"- first step",         // 6
	"- second step",        // 7
	"",                     // 8
	"```go",                // 9
	`fmt.Println("hi")`,    // 10
	`fmt.Println("bye")`,   // 11
	`fmt.Println("end")`,   // 12
	"```",                  // 13
	"",                     // 14
	"Trailing paragraph.",  // 15
}, "\n")

func TestProvideSelectionRangesInsideFence(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	doc := NewTextDocument(guideSource)

	chains, err := provider.ProvideSelectionRanges(context.Background(), doc, []Position{Pos(11, 0)})
	require.NoError(t, err)
	require.Len(t, chains, 1)

	ranges := chainRanges(chains[0])
	require.GreaterOrEqual(t, len(ranges), 4)
	assert.Equal(t, NewRange(10, 0, 12, 18), ranges[0], "fence interior")
	assert.Equal(t, NewRange(9, 0, 13, 3), ranges[1], "full fence")
	assert.Equal(t, Pos(5, 0), ranges[2].Start, "Usage content seeds the fence")
	assert.Equal(t, Pos(0, 0), ranges[len(ranges)-1].Start, "outermost is the Guide section")
}

func TestProvideSelectionRangesChainsAreNested(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	doc := NewTextDocument(guideSource)

	positions := []Position{Pos(0, 2), Pos(2, 5), Pos(6, 3), Pos(10, 0), Pos(15, 8)}
	chains, err := provider.ProvideSelectionRanges(context.Background(), doc, positions)
	require.NoError(t, err)
	require.Len(t, chains, len(positions))

	for _, chain := range chains {
		assertStrictlyNested(t, chain)
	}
}

func TestProvideSelectionRangesListWithoutTrailingBlank(t *testing.T) {
	provider := NewProvider(ProviderOptions{})

	// top-level lists whose maps were not blank-extended: one ending the
	// document without a final newline, one followed directly by a heading
	sources := map[string]struct {
		source string
		pos    Position
	}{
		"list at end of file": {"# H\n\n- a\n- b", Pos(3, 1)},
		"list before heading": {"# H\n- a\n# H2\n", Pos(1, 1)},
	}

	for name, tc := range sources {
		t.Run(name, func(t *testing.T) {
			doc := NewTextDocument(tc.source)
			chains, err := provider.ProvideSelectionRanges(context.Background(), doc, []Position{tc.pos})
			require.NoError(t, err)
			require.Len(t, chains, 1)

			assertStrictlyNested(t, chains[0])
			for _, r := range chainRanges(chains[0]) {
				assert.True(t, r.Start.BeforeOrEqual(r.End), "range %v must not be inverted", r)
			}
			assert.Equal(t, tc.pos.Line, chains[0].Range.Start.Line, "innermost range starts on the cursor line")
		})
	}
}

func TestProvideSelectionRangesOmitsEmptyPositions(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	doc := NewTextDocument("para one\n\n\npara two")

	chains, err := provider.ProvideSelectionRanges(context.Background(), doc,
		[]Position{Pos(0, 2), Pos(1, 0), Pos(3, 2)})
	require.NoError(t, err)

	// the blank line belongs to no structure; remaining chains keep input order
	require.Len(t, chains, 2)
	assert.Equal(t, 0, chains[0].Range.Start.Line)
	assert.Equal(t, 3, chains[1].Range.Start.Line)
}

func TestProvideSelectionRangesIndependentPositions(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	doc := NewTextDocument(guideSource)

	chains, err := provider.ProvideSelectionRanges(context.Background(), doc,
		[]Position{Pos(2, 0), Pos(15, 0)})
	require.NoError(t, err)
	require.Len(t, chains, 2)

	// chains share no nodes; mutating one leaves the other intact
	second := chainRanges(chains[1])
	chains[0].Range = Range{}
	for cur := chains[0]; cur != nil; cur = cur.Parent {
		cur.Range = Range{}
	}
	assert.Equal(t, second, chainRanges(chains[1]))
}

func TestProvideSelectionRangesHeaderFallback(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	doc := NewTextDocument(guideSource)

	// line 3 is blank: no block token covers it, but the Guide section does
	chains, err := provider.ProvideSelectionRanges(context.Background(), doc, []Position{Pos(3, 0)})
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, Pos(1, 0), chains[0].Range.Start, "Guide content")
}

func TestProvideSelectionRangesCancelled(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	doc := NewTextDocument(guideSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chains, err := provider.ProvideSelectionRanges(ctx, doc, []Position{Pos(2, 0)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, chains)
}

func TestSelectionRangeAtNoStructure(t *testing.T) {
	doc := docFromLines("", "", "")
	assert.Nil(t, SelectionRangeAt(doc, nil, nil, Pos(1, 0)))
}
