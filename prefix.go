// SPDX-License-Identifier: MIT

package kurogo

// prefixSet tracks every proper, non-empty, codepoint-aligned prefix
// of an enumerated dictionary surface, answering the lattice builder's
// "could this substring still extend into something real?" question
// without re-walking the trie.
type prefixSet map[string]struct{}

// insertPrefixes adds every proper codepoint-aligned prefix of surface
// to ps. surface is assumed to already be valid UTF-8, since it was
// itself assembled byte-by-byte while walking a well-formed trie.
func insertPrefixes(ps prefixSet, surface string) {
	bounds, err := codepointBoundaries([]byte(surface))
	if err != nil {
		return
	}
	n := len(bounds) - 1
	for k := 1; k < n; k++ {
		ps[surface[:bounds[k]]] = struct{}{}
	}
}

func (ps prefixSet) has(s string) bool {
	_, ok := ps[s]
	return ok
}
