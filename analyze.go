// SPDX-License-Identifier: MIT

package kurogo

import (
	"fmt"
	"io"
	"strings"

	"github.com/kurogo/kurogo/internal/search"
)

// Path is the lowest-cost tokenization of a text: the BOS and EOS
// sentinels are trimmed, leaving only the tokens a reader would
// recognize as output.
type Path struct {
	Tokens []*Token
	Cost   float64
}

// WriteTo renders the path as original_source/main.cpp does: one
// feature-string line per token, then a single trailing line with
// every surface joined by U+FF5C ("｜").
func (p Path) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	surfaces := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		fmt.Fprintf(&sb, "%s\n", t.Feature)
		surfaces[i] = t.Surface
	}
	sb.WriteString(strings.Join(surfaces, "｜"))
	sb.WriteByte('\n')
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// latticeGraph adapts a Lattice into a search.Graph[*Token], the only
// place lattice costs and search mechanics meet.
type latticeGraph struct {
	lat          *Lattice
	mat          *Matrix
	minTokenCost int16
}

func (g *latticeGraph) Neighbors(t *Token) []search.Edge[*Token] {
	next := g.lat.neighborsOf(t)
	edges := make([]search.Edge[*Token], 0, len(next))
	for _, n := range next {
		c := edgeCost(t, n, g.mat)
		edges = append(edges, search.Edge[*Token]{To: n, Cost: c})
	}
	return edges
}

// Heuristic estimates the remaining cost as (d+1) * (min_edge_cost +
// min_token_cost), where d is the number of codepoints left to cover:
// a path to EOS takes at most d+1 more edges (at most one per
// remaining codepoint, plus the final edge into EOS). The estimate may
// be negative. It is not a lower bound in every case: when
// min_edge_cost + min_token_cost is positive it can exceed the true
// remaining cost, since a token spanning several codepoints covers
// them with a single edge, and Solve can then return a path that is
// not the cheapest.
func (g *latticeGraph) Heuristic(t *Token) float64 {
	if t.Kind == EOS {
		return 0
	}
	d := g.lat.CodepointCount() - t.end()
	if d < 0 {
		d = 0
	}
	return float64(d+1) * float64(int(g.mat.MinCost)+int(g.minTokenCost))
}

func (g *latticeGraph) IsGoal(t *Token) bool { return t.Kind == EOS }

func (g *latticeGraph) Index(t *Token) uint { return t.id }

// Analyze loads no files itself: it builds a lattice over text using
// dict, then finds the lowest-cost BOS-to-EOS path through it using
// mat's connection costs. It is the single library entry point
// described in SPEC_FULL.md §4.
func Analyze(dict *Dictionary, mat *Matrix, text []byte) (Path, error) {
	lat, err := BuildLattice(dict, text)
	if err != nil {
		return Path{}, err
	}

	g := &latticeGraph{lat: lat, mat: mat, minTokenCost: dict.Stats.MinTokenCost}

	result, err := search.Solve[*Token](g, lat.BOS())
	if err != nil {
		return Path{}, wrapError(SearchError, err, "no tokenization covers the input")
	}

	tokens := make([]*Token, 0, len(result.States))
	for _, t := range result.States {
		if t.Kind == BOS || t.Kind == EOS {
			continue
		}
		tokens = append(tokens, t)
	}

	return Path{Tokens: tokens, Cost: result.Cost}, nil
}
