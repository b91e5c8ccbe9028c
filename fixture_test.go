// SPDX-License-Identifier: MIT

package kurogo

import (
	"bytes"
	"encoding/binary"
)

// trieFixtureBuilder hand-assembles a double-array trie in memory, the
// same shape LoadDictionary expects to decode from sys.dic, without
// implementing a real dictionary compiler (out of scope per spec.md's
// Non-goal on dictionary construction). It exists only for tests.
type trieFixtureBuilder struct {
	nodeOf map[string]uint32
	cells  map[uint32]Link
	next   uint32
}

func newTrieFixtureBuilder() *trieFixtureBuilder {
	tb := &trieFixtureBuilder{
		nodeOf: map[string]uint32{"": 1},
		cells:  map[uint32]Link{0: {Base: 1, Check: 0}},
		next:   2,
	}
	return tb
}

// nodeFor returns the node id reached after consuming prefix from the
// root, allocating it (and every missing ancestor) on first use.
func (tb *trieFixtureBuilder) nodeFor(prefix string) uint32 {
	if id, ok := tb.nodeOf[prefix]; ok {
		return id
	}
	parent := tb.nodeFor(prefix[:len(prefix)-1])
	b := prefix[len(prefix)-1]

	id := tb.next
	tb.next += 300
	tb.nodeOf[prefix] = id

	tb.cells[parent+1+uint32(b)] = Link{Base: id, Check: parent}
	return id
}

// insert marks surface as a complete entry referencing the count
// tokens starting at tokenIndex first.
func (tb *trieFixtureBuilder) insert(surface string, first uint32, count uint8) {
	node := tb.nodeFor(surface)
	encoded := ^((first << 8) | uint32(count))
	tb.cells[node] = Link{Base: encoded, Check: node}
}

// ensurePrefix walks prefix into existence without marking it as an
// entry, for tests that want to exercise a branching node with no
// surface of its own.
func (tb *trieFixtureBuilder) ensurePrefix(prefix string) {
	tb.nodeFor(prefix)
}

func (tb *trieFixtureBuilder) build() []Link {
	max := uint32(0)
	for idx := range tb.cells {
		if idx > max {
			max = idx
		}
	}
	links := make([]Link, max+1)
	for idx, l := range tb.cells {
		links[idx] = l
	}
	return links
}

// featurePile accumulates NUL-terminated feature strings and reports
// each one's offset, mirroring sys.dic's feature string pile.
type featurePile struct {
	buf bytes.Buffer
}

func (p *featurePile) add(s string) uint32 {
	off := uint32(p.buf.Len())
	p.buf.WriteString(s)
	p.buf.WriteByte(0)
	return off
}

func (p *featurePile) bytes() []byte { return p.buf.Bytes() }

// encodeLinks serializes links into sys.dic's 8-byte-per-record link
// array layout.
func encodeLinks(links []Link) []byte {
	buf := make([]byte, len(links)*8)
	for i, l := range links {
		binary.LittleEndian.PutUint32(buf[i*8:], l.Base)
		binary.LittleEndian.PutUint32(buf[i*8+4:], l.Check)
	}
	return buf
}

// encodeTokens serializes tokens into sys.dic's 16-byte-per-record
// token array layout (the trailing 4 reserved bytes are always zero).
func encodeTokens(tokens []RawToken) []byte {
	buf := make([]byte, len(tokens)*rawTokenSize)
	for i, t := range tokens {
		o := i * rawTokenSize
		binary.LittleEndian.PutUint16(buf[o:], t.LeftContext)
		binary.LittleEndian.PutUint16(buf[o+2:], t.RightContext)
		binary.LittleEndian.PutUint16(buf[o+4:], t.POS)
		binary.LittleEndian.PutUint16(buf[o+6:], uint16(t.Cost))
		binary.LittleEndian.PutUint32(buf[o+8:], t.FeatureOffset)
	}
	return buf
}

// buildSysDic assembles a complete sys.dic byte image from a trie, its
// token array, and its feature pile.
func buildSysDic(links []Link, tokens []RawToken, features []byte) []byte {
	linkBytes := encodeLinks(links)
	tokenBytes := encodeTokens(tokens)

	h := header{
		Magic:            dictMagic,
		Version:          dictVersion,
		DictType:         0,
		NumTokens:        uint32(len(tokens)),
		NumLeftContexts:  1,
		NumRightContexts: 1,
		LinkBytes:        uint32(len(linkBytes)),
		TokenBytes:       uint32(len(tokenBytes)),
		FeatureBytes:     uint32(len(features)),
	}
	copy(h.Charset[:], "UTF-8")

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, &h)
	out.Write(linkBytes)
	out.Write(tokenBytes)
	out.Write(features)
	return out.Bytes()
}
