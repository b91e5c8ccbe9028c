// SPDX-License-Identifier: MIT

package kurogo

import "unicode/utf8"

// codepointBoundaries decodes b as a run of UTF-8 codepoints, stopping
// at the first NUL byte or at the end of b, and returns the byte
// offset of every codepoint boundary seen. The returned slice always
// carries one extra trailing entry equal to the offset where decoding
// stopped, so codepointBoundaries(b) has length codepointCount+1 and
// its last entry is where the covered text ends.
func codepointBoundaries(b []byte) ([]int, error) {
	bounds := make([]int, 0, len(b)+1)
	i := 0
	for i < len(b) && b[i] != 0 {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, newError(DecodeError, "invalid UTF-8 at byte offset %d", i)
		}
		bounds = append(bounds, i)
		i += size
	}
	bounds = append(bounds, i)
	return bounds, nil
}

// countCodepoints reports how many codepoints precede the first NUL
// byte or the end of b.
func countCodepoints(b []byte) (int, error) {
	bounds, err := codepointBoundaries(b)
	if err != nil {
		return 0, err
	}
	return len(bounds) - 1, nil
}
