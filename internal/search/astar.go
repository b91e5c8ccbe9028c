// SPDX-License-Identifier: MIT

// Package search implements a generic best-first shortest-path solver
// over a caller-supplied graph. It knows nothing about lattices,
// tokens, or morphological costs: callers describe their graph
// through the Graph interface and get back the lowest-cost Result.
//
// The open set is a container/heap priority queue; the closed set is
// a bits-and-blooms/bitset indexed by the dense handle Graph.Index
// assigns each state, the same dense-small-domain membership pattern
// gaissmai/bart uses for its own routing tables.
package search

import (
	"container/heap"
	"errors"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// ErrNoPath is returned by Solve when no path from start to any goal
// state exists.
var ErrNoPath = errors.New("search: no path to goal")

// Edge is one outgoing transition from a state, carrying both its
// destination and its cost.
type Edge[S comparable] struct {
	To   S
	Cost float64
}

// Graph is the capability set Solve needs from a caller's state
// space: how to expand a state, how to bound the remaining cost to a
// goal, how to recognize a goal, and how to assign a dense index for
// the closed-set bitset. There is no base "node" type to embed;
// any S that satisfies this interface can be searched.
type Graph[S comparable] interface {
	// Neighbors returns every edge leaving s.
	Neighbors(s S) []Edge[S]
	// Heuristic returns an admissible (never-overestimating) estimate
	// of the remaining cost from s to the nearest goal.
	Heuristic(s S) float64
	// IsGoal reports whether s is an accepting end state.
	IsGoal(s S) bool
	// Index returns a dense, small, load-order handle for s, used
	// only to size and address the closed-set bitset.
	Index(s S) uint
}

// Result is the lowest-cost path Solve found, expressed as the
// sequence of states from start to goal inclusive.
type Result[S comparable] struct {
	States []S
	Cost   float64
}

type openEntry[S comparable] struct {
	state  S
	gScore float64
	fScore float64
	index  int // heap.Interface bookkeeping
}

type openQueue[S comparable] []*openEntry[S]

func (q openQueue[S]) Len() int { return len(q) }
func (q openQueue[S]) Less(i, j int) bool { return q[i].fScore < q[j].fScore }
func (q openQueue[S]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *openQueue[S]) Push(x any) {
	e := x.(*openEntry[S])
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *openQueue[S]) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Solve runs A* from start until it reaches a state for which IsGoal
// returns true, using g.Heuristic as the admissible estimate. It
// returns ErrNoPath if the open set empties without finding a goal.
func Solve[S comparable](g Graph[S], start S) (Result[S], error) {
	gScore := map[S]float64{start: 0}
	cameFrom := map[S]S{}

	closed := bitset.New(0)

	startEntry := &openEntry[S]{state: start, gScore: 0, fScore: g.Heuristic(start)}
	open := &openQueue[S]{startEntry}
	heap.Init(open)

	inOpen := map[S]*openEntry[S]{start: startEntry}

	for open.Len() > 0 {
		current := heap.Pop(open).(*openEntry[S])
		delete(inOpen, current.state)

		idx := g.Index(current.state)
		if idx < closed.Len() && closed.Test(idx) {
			continue
		}
		closed.Set(idx)

		if g.IsGoal(current.state) {
			return Result[S]{
				States: reconstructPath(cameFrom, current.state, start),
				Cost:   current.gScore,
			}, nil
		}

		for _, edge := range g.Neighbors(current.state) {
			if math.IsInf(edge.Cost, 1) {
				continue
			}
			toIdx := g.Index(edge.To)
			if toIdx < closed.Len() && closed.Test(toIdx) {
				continue
			}

			tentative := current.gScore + edge.Cost
			best, seen := gScore[edge.To]
			if seen && tentative >= best {
				continue
			}

			gScore[edge.To] = tentative
			cameFrom[edge.To] = current.state
			f := tentative + g.Heuristic(edge.To)

			if entry, ok := inOpen[edge.To]; ok {
				entry.gScore = tentative
				entry.fScore = f
				heap.Fix(open, entry.index)
			} else {
				entry := &openEntry[S]{state: edge.To, gScore: tentative, fScore: f}
				heap.Push(open, entry)
				inOpen[edge.To] = entry
			}
		}
	}

	return Result[S]{}, ErrNoPath
}

func reconstructPath[S comparable](cameFrom map[S]S, goal, start S) []S {
	path := []S{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
