// SPDX-License-Identifier: MIT

package kurogo

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
)

const (
	dictMagic      = 0xE1172181
	dictVersion    = 0x66
	dictHeaderSize = 0x48
	charsetTagSize = 0x20
)

// header mirrors the fixed 0x48-byte sys.dic header laid out in
// SPEC_FULL.md §6. It is only ever read through binary.Read, which
// walks its fields in declaration order irrespective of Go's own
// struct padding, so it does not need to byte-match the disk layout
// exactly — only the field order and widths matter.
type header struct {
	Magic             uint32
	Version           uint32
	DictType          uint32
	NumTokens         uint32
	NumLeftContexts   uint32
	NumRightContexts  uint32
	LinkBytes         uint32
	TokenBytes        uint32
	FeatureBytes      uint32
	_                 uint32 // padding
	Charset           [charsetTagSize]byte
}

// DictionaryStats carries the data-dependent cost scalars recorded
// while a Dictionary was loaded. latticeGraph.Heuristic reads
// MinTokenCost from here rather than from package-level mutables, per
// SPEC_FULL.md §9.
type DictionaryStats struct {
	MinTokenCost int16
	MaxTokenCost int16
}

// Dictionary is the decoded, read-only form of a sys.dic: the link
// array, the feature-resolved entries reachable by surface, and the
// prefix index used to know when a partial match can still extend.
type Dictionary struct {
	links    []Link
	tokens   []RawToken
	entries  map[string][]tokenTemplate
	prefixes prefixSet

	NumLeftContexts  int
	NumRightContexts int
	Stats            DictionaryStats
}

// LoadDictionary reads a sys.dic from r: the fixed header, then the
// link array, token array, and feature pile in that order starting at
// offset 0x48. It rejects files with the wrong magic, version, or
// encoding tag, and validates every size relationship in §4.2 before
// decoding a single byte of the body.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError(IOError, err, "failed to read sys.dic")
	}
	if len(data) < dictHeaderSize {
		return nil, newError(FormatError, "sys.dic truncated: missing header")
	}

	var h header
	if err := binary.Read(bytes.NewReader(data[:dictHeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, wrapError(FormatError, err, "sys.dic header is malformed")
	}

	if h.Magic != dictMagic {
		return nil, newError(FormatError, "not a mecab sys.dic file")
	}
	if h.Version != dictVersion {
		return nil, newError(FormatError, "unsupported sys.dic version 0x%x", h.Version)
	}
	charset := bytes.TrimRight(h.Charset[:], "\x00")
	if string(charset) != "UTF-8" {
		return nil, newError(FormatError, "unsupported sys.dic encoding %q (only utf-8 is supported)", charset)
	}
	if h.LinkBytes%8 != 0 {
		return nil, newError(FormatError, "sys.dic link array length %d is not a multiple of 8", h.LinkBytes)
	}
	if h.TokenBytes%16 != 0 {
		return nil, newError(FormatError, "sys.dic token array length %d is not a multiple of 16", h.TokenBytes)
	}
	if h.TokenBytes/16 != h.NumTokens {
		return nil, newError(FormatError, "sys.dic token array declares %d tokens but length %d implies %d", h.NumTokens, h.TokenBytes, h.TokenBytes/16)
	}

	off := int64(dictHeaderSize)
	linksRaw, off, err := sliceAt(data, off, int64(h.LinkBytes), "link array")
	if err != nil {
		return nil, err
	}
	tokensRaw, off, err := sliceAt(data, off, int64(h.TokenBytes), "token array")
	if err != nil {
		return nil, err
	}
	featuresRaw, _, err := sliceAt(data, off, int64(h.FeatureBytes), "feature pile")
	if err != nil {
		return nil, err
	}

	links := decodeLinks(linksRaw)
	tokens := decodeTokens(tokensRaw)

	dictEntries, err := enumerateAllEntries(links, uint32(len(tokens)))
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]tokenTemplate, len(dictEntries))
	prefixes := make(prefixSet)
	minCost, maxCost := int16(math.MaxInt16), int16(math.MinInt16)

	for _, e := range dictEntries {
		templates := make([]tokenTemplate, e.Count)
		for i := range templates {
			rt := tokens[int(e.First)+i]
			feature, err := readFeature(featuresRaw, rt.FeatureOffset)
			if err != nil {
				return nil, err
			}
			templates[i] = tokenTemplate{
				LeftContext:  rt.LeftContext,
				RightContext: rt.RightContext,
				POS:          rt.POS,
				Cost:         rt.Cost,
				Feature:      feature,
			}
			if rt.Cost < minCost {
				minCost = rt.Cost
			}
			if rt.Cost > maxCost {
				maxCost = rt.Cost
			}
		}
		entries[e.Surface] = templates
		insertPrefixes(prefixes, e.Surface)
	}
	if len(tokens) == 0 {
		minCost, maxCost = 0, 0
	}

	return &Dictionary{
		links:            links,
		tokens:           tokens,
		entries:          entries,
		prefixes:         prefixes,
		NumLeftContexts:  int(h.NumLeftContexts),
		NumRightContexts: int(h.NumRightContexts),
		Stats:            DictionaryStats{MinTokenCost: minCost, MaxTokenCost: maxCost},
	}, nil
}

// sliceAt carves length bytes out of data starting at off, reporting a
// FormatError naming what was being read if the file is too short.
func sliceAt(data []byte, off, length int64, what string) ([]byte, int64, error) {
	end := off + length
	if end > int64(len(data)) {
		return nil, 0, newError(FormatError, "sys.dic truncated: %s extends past end of file", what)
	}
	return data[off:end], end, nil
}

func decodeLinks(b []byte) []Link {
	n := len(b) / 8
	links := make([]Link, n)
	for i := range links {
		o := i * 8
		links[i] = Link{
			Base:  binary.LittleEndian.Uint32(b[o:]),
			Check: binary.LittleEndian.Uint32(b[o+4:]),
		}
	}
	return links
}

func decodeTokens(b []byte) []RawToken {
	n := len(b) / rawTokenSize
	tokens := make([]RawToken, n)
	for i := range tokens {
		o := i * rawTokenSize
		tokens[i] = RawToken{
			LeftContext:   binary.LittleEndian.Uint16(b[o:]),
			RightContext:  binary.LittleEndian.Uint16(b[o+2:]),
			POS:           binary.LittleEndian.Uint16(b[o+4:]),
			Cost:          int16(binary.LittleEndian.Uint16(b[o+6:])),
			FeatureOffset: binary.LittleEndian.Uint32(b[o+8:]),
		}
	}
	return tokens
}

// readFeature extracts the NUL-terminated UTF-8 string at offset in
// the feature pile.
func readFeature(pile []byte, offset uint32) (string, error) {
	if int64(offset) > int64(len(pile)) {
		return "", newError(IntegrityError, "feature offset %d is past the end of the %d-byte feature pile", offset, len(pile))
	}
	end := int(offset)
	for end < len(pile) && pile[end] != 0 {
		end++
	}
	return string(pile[offset:end]), nil
}

// lookup returns the token templates recorded for surface, if any.
func (d *Dictionary) lookup(surface string) ([]tokenTemplate, bool) {
	toks, ok := d.entries[surface]
	return toks, ok
}

// hasPrefix reports whether surface is a proper prefix of some
// dictionary entry, i.e. whether extending it further could still
// find a match.
func (d *Dictionary) hasPrefix(surface string) bool {
	return d.prefixes.has(surface)
}

// EntryCount returns the number of distinct surfaces in the dictionary.
func (d *Dictionary) EntryCount() int { return len(d.entries) }

// jsonToken is the shape written by DumpJSON for a single entry token.
type jsonToken struct {
	LeftContext  uint16 `json:"left_context"`
	RightContext uint16 `json:"right_context"`
	POS          uint16 `json:"pos"`
	Cost         int16  `json:"cost"`
	Feature      string `json:"feature"`
}

// DumpJSON writes every surface and its tokens as a JSON object, the
// optional dictionary dump called out as an external collaborator in
// spec.md §1.
func (d *Dictionary) DumpJSON(w io.Writer) error {
	out := make(map[string][]jsonToken, len(d.entries))
	for surface, templates := range d.entries {
		toks := make([]jsonToken, len(templates))
		for i, t := range templates {
			toks[i] = jsonToken{t.LeftContext, t.RightContext, t.POS, t.Cost, t.Feature}
		}
		out[surface] = toks
	}
	return json.NewEncoder(w).Encode(out)
}
