// SPDX-License-Identifier: MIT

// Package kurogo reads a MeCab-compatible dictionary (a `sys.dic`
// double-array trie plus a `matrix.bin` connection-cost table) and
// segments UTF-8 text into the minimum-cost sequence of dictionary
// morphemes it can find.
//
// Loading builds three read-only structures: the raw link/token/feature
// arrays decoded straight off disk (Dictionary), the bigram connection
// costs (Matrix), and, per call to Analyze, a lattice of candidate
// tokens searched end to end with a pluggable best-first solver in
// internal/search.
//
// Dictionary and Matrix are safe for concurrent readers once loaded;
// there is no supported way to mutate either afterwards.
package kurogo
