package compare

import "encoding/binary"

// wordSize is the width of the coarse scanning pass.
const wordSize = 8

// newlineWord holds a newline in every byte position.
const newlineWord = 0x0a0a0a0a0a0a0a0a

// firstDiff returns the offset of the first byte at which b0 and b1 differ.
// The buffers must be of equal length, a whole number of words, and carry
// sentinel bytes guaranteeing that a difference exists. The coarse pass
// compares machine words; the fine pass pinpoints the byte within the one
// unequal word, independent of host byte order.
func firstDiff(b0, b1 []byte) int {
	i := 0
	for n := len(b0) &^ (wordSize - 1); i < n; i += wordSize {
		if binary.LittleEndian.Uint64(b0[i:]) != binary.LittleEndian.Uint64(b1[i:]) {
			break
		}
	}
	for i < len(b0) && b0[i] == b1[i] {
		i++
	}
	return i
}

// firstDiffCount is firstDiff with newline counting over the identical
// prefix: each equal word is XORed against a word of newlines and its zero
// bytes counted, then the unequal tail is counted byte by byte. Only
// newlines strictly before the divergence offset are counted. The count is
// added to *lines.
func firstDiffCount(b0, b1 []byte, lines *int64) int {
	var count int64
	i := 0
	for n := len(b0) &^ (wordSize - 1); i < n; i += wordSize {
		w := binary.LittleEndian.Uint64(b0[i:])
		if w != binary.LittleEndian.Uint64(b1[i:]) {
			break
		}
		w ^= newlineWord
		for k := 0; k < wordSize; k++ {
			if byte(w) == 0 {
				count++
			}
			w >>= 8
		}
	}
	for i < len(b0) && b0[i] == b1[i] {
		if b0[i] == '\n' {
			count++
		}
		i++
	}
	*lines += count
	return i
}
