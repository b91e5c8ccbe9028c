// SPDX-License-Identifier: MIT

package kurogo

import "unicode/utf8"

// Lattice is a DAG of candidate tokens indexed by starting codepoint,
// framed by a BOS and an EOS sentinel. It is built once per Analyze
// call and is read-only for the remainder of the search: none of its
// slices are reallocated once construction returns, so Token pointers
// into it remain stable state handles for internal/search.
type Lattice struct {
	boundaries []int // byte offset of every codepoint boundary, len N+1
	positions  [][]*Token
	bos        *Token
	eos        *Token
	n          int
}

// BuildLattice finds, for every codepoint start position in text,
// every dictionary surface beginning there (via longest-prefix walk
// against dict), inserting a single-codepoint UNK token wherever no
// surface reaches a position that nothing earlier has covered either.
func BuildLattice(dict *Dictionary, text []byte) (*Lattice, error) {
	bounds, err := codepointBoundaries(text)
	if err != nil {
		return nil, err
	}
	n := len(bounds) - 1

	lat := &Lattice{boundaries: bounds, positions: make([][]*Token, n), n: n}

	var nextID uint
	newToken := func() *Token {
		t := &Token{}
		t.id = nextID
		nextID++
		return t
	}

	maxCoveredByte := 0
	for start := 0; start < n; start++ {
		startByte := bounds[start]
		end := start + 1

		var candidates []*Token
		for {
			endByte := bounds[end]
			substr := string(text[startByte:endByte])

			templates, isKey := dict.lookup(substr)
			if isKey {
				for _, tmpl := range templates {
					t := newToken()
					t.LeftContext = tmpl.LeftContext
					t.RightContext = tmpl.RightContext
					t.POS = tmpl.POS
					t.Cost = tmpl.Cost
					t.Surface = substr
					t.Feature = tmpl.Feature
					t.Start = start
					t.Length = end - start
					t.Kind = Normal
					candidates = append(candidates, t)
				}
				if endByte > maxCoveredByte {
					maxCoveredByte = endByte
				}
			}

			if !isKey && !dict.hasPrefix(substr) {
				break
			}
			end++
			if end > n {
				break
			}
		}

		if startByte == maxCoveredByte && len(candidates) == 0 {
			_, size := utf8.DecodeRune(text[startByte:])
			t := newToken()
			t.Surface = string(text[startByte : startByte+size])
			t.Feature = "UNK"
			t.Start = start
			t.Length = 1
			t.Kind = UNK
			candidates = append(candidates, t)
			maxCoveredByte = startByte + size
		}

		lat.positions[start] = candidates
	}

	lat.bos = newToken()
	lat.bos.Start = -1
	lat.bos.Length = 0
	lat.bos.Kind = BOS
	lat.bos.Feature = "BOS"

	lat.eos = newToken()
	lat.eos.Start = n
	lat.eos.Length = 0
	lat.eos.Kind = EOS
	lat.eos.Feature = "EOS"

	return lat, nil
}

// CodepointCount returns the number of codepoints the lattice covers.
func (lat *Lattice) CodepointCount() int { return lat.n }

// BOS returns the sentinel start state.
func (lat *Lattice) BOS() *Token { return lat.bos }

// EOS returns the sentinel end state.
func (lat *Lattice) EOS() *Token { return lat.eos }

// At returns the candidate tokens starting at codepoint i.
func (lat *Lattice) At(i int) []*Token { return lat.positions[i] }

// neighborsOf returns the states reachable directly after t: lattice[0]
// for BOS, {EOS} for any token whose span reaches the end of the text,
// nil for EOS itself, and lattice[t.end()] otherwise.
func (lat *Lattice) neighborsOf(t *Token) []*Token {
	switch t.Kind {
	case BOS:
		if lat.n == 0 {
			return []*Token{lat.eos}
		}
		return lat.positions[0]
	case EOS:
		return nil
	}
	next := t.end()
	if next == lat.n {
		return []*Token{lat.eos}
	}
	return lat.positions[next]
}
