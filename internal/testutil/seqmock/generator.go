package seqmock

import (
	"context"
	"fmt"

	"motofinance-backend/internal/domain/sequence"
)

var _ sequence.Generator = (*Generator)(nil)

// Generator counts per prefix unless NextFn is set.
type Generator struct {
	NextFn func(ctx context.Context, prefix string) (string, error)

	counts map[string]int
}

func (g *Generator) Next(ctx context.Context, prefix string) (string, error) {
	if g.NextFn != nil {
		return g.NextFn(ctx, prefix)
	}
	if g.counts == nil {
		g.counts = map[string]int{}
	}
	g.counts[prefix]++
	return fmt.Sprintf("%s-20260101-%06d", prefix, g.counts[prefix]), nil
}
