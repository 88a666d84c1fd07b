package mdselect

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Provider computes smart selection range chains for cursor positions in a
// markdown document. It consumes the tokenizer and outline snapshots exactly
// once per request; positions are processed independently of one another.
type Provider struct {
	tokenizer Tokenizer
	outline   OutlineProvider
}

// ProviderOptions configures a Provider. Nil fields fall back to the
// goldmark-backed implementations.
type ProviderOptions struct {
	Tokenizer Tokenizer
	Outline   OutlineProvider
}

// NewProvider creates a Provider.
func NewProvider(opts ProviderOptions) *Provider {
	tokenizer := opts.Tokenizer
	if tokenizer == nil {
		tokenizer = NewGoldmarkTokenizer()
	}
	outline := opts.Outline
	if outline == nil {
		outline = NewGoldmarkOutline()
	}
	return &Provider{tokenizer: tokenizer, outline: outline}
}

// ProvideSelectionRanges computes one selection chain per position. Positions
// with no enclosing structure are omitted; the remaining chains keep the
// input order. Positions are computed concurrently; once ctx is cancelled no
// further positions are started, but in-flight ones run to completion.
func (p *Provider) ProvideSelectionRanges(ctx context.Context, doc *TextDocument, positions []Position) ([]*SelectionRange, error) {
	source := doc.Text()
	tokens, err := p.tokenizer.Tokenize(source)
	if err != nil {
		return nil, fmt.Errorf("tokenize document: %w", err)
	}
	outline, err := p.outline.Outline(source)
	if err != nil {
		return nil, fmt.Errorf("build outline: %w", err)
	}

	results := make([]*SelectionRange, len(positions))
	g := new(errgroup.Group)
	for i, pos := range positions {
		if ctx.Err() != nil {
			break
		}
		i, pos := i, pos
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = SelectionRangeAt(doc, tokens, outline, pos)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chains := make([]*SelectionRange, 0, len(results))
	for _, chain := range results {
		if chain != nil {
			chains = append(chains, chain)
		}
	}
	return chains, nil
}

// SelectionRangeAt computes the selection chain for a single position from
// already-produced collaborator snapshots. The header chain seeds the block
// chain as its outermost parent; with no enclosing block the header chain
// alone is the result, and with neither the result is nil.
func SelectionRangeAt(doc Document, tokens []BlockToken, outline []HeadingEntry, pos Position) *SelectionRange {
	headerRange := buildHeaderChain(outline, pos, doc)
	if blockRange := buildBlockChain(tokens, pos, doc, headerRange); blockRange != nil {
		return blockRange
	}
	return headerRange
}
