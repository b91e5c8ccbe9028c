// SPDX-License-Identifier: MIT

package kurogo

// outputBit marks a Link's Base as an output (token-array slice)
// rather than a branching offset.
const outputBit = 0x80000000

// Link is one node of the double-array trie: two 32-bit fields that
// either branch (Base is an offset) or terminate (Base's high bit is
// set and the rest encodes a token-array slice).
type Link struct {
	Base  uint32
	Check uint32
}

// isOutput reports whether l represents an output node rather than a
// branching node.
func (l Link) isOutput() bool {
	return l.Base&outputBit != 0
}

// outputRange decodes an output Link's Base into the first index and
// count of the token-array slice it references.
func (l Link) outputRange() (first uint32, count uint8) {
	v := ^l.Base
	return v >> 8, uint8(v & 0xFF)
}

// checkValidLink reports whether following from -> to is a legal trie
// transition: to must be in bounds, array[to].Check must point back
// at from, and the link must not be a degenerate self-reference that
// would otherwise loop (array[to].Base == from).
//
// Invalid links are treated as non-edges rather than errors so that
// traversal never trips over malformed regions shared with other
// dictionary types in the same array.
func checkValidLink(links []Link, from, to uint32) bool {
	if to >= uint32(len(links)) {
		return false
	}
	if links[to].Check != from {
		return false
	}
	if links[to].Base == from {
		return false
	}
	return true
}

// checkValidOutput reports whether from -> to is a valid link whose
// destination is additionally an output node.
func checkValidOutput(links []Link, from, to uint32) bool {
	return checkValidLink(links, from, to) && links[to].isOutput()
}
