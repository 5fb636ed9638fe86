package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstDiff(t *testing.T) {
	out := &bytes.Buffer{}
	r := New(out, &bytes.Buffer{}, "left", "right", false)

	r.FirstDiff(6, 2, 'd', 'x')
	require.NoError(t, r.Flush())

	assert.Equal(t, "left right differ: char 6, line 2\n", out.String())
}

func TestFirstDiffPrintBytes(t *testing.T) {
	out := &bytes.Buffer{}
	r := New(out, &bytes.Buffer{}, "left", "right", true)

	r.FirstDiff(6, 2, 'd', '\n')
	require.NoError(t, r.Flush())

	assert.Equal(t, "left right differ: byte 6, line 2 is 144 d  12 ^J\n", out.String())
}

func TestDiffByte(t *testing.T) {
	out := &bytes.Buffer{}
	r := New(out, &bytes.Buffer{}, "a", "b", false)

	r.DiffByte(3, 'c', 'd')
	r.DiffByte(123456789, 0, 0xff)
	require.NoError(t, r.Flush())

	assert.Equal(t, "     3 143 144\n123456789   0 377\n", out.String())
}

func TestDiffBytePrintBytes(t *testing.T) {
	out := &bytes.Buffer{}
	r := New(out, &bytes.Buffer{}, "a", "b", true)

	r.DiffByte(3, 'c', 0x81)
	require.NoError(t, r.Flush())

	// The first quoted column is padded to four characters.
	assert.Equal(t, "     3 143 c    201 M-^A\n", out.String())
}

func TestEOF(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	r := New(out, errOut, "a", "b", false)

	r.EOF("b")

	// The diagnostic bypasses the report buffer.
	assert.Empty(t, out.String())
	assert.Equal(t, "cmp: EOF on b\n", errOut.String())
}

func TestQuoteByte(t *testing.T) {
	tests := []struct {
		c     byte
		width int
		want  string
	}{
		{'A', 0, "A"},
		{' ', 0, " "},
		{'~', 0, "~"},
		{0x00, 0, "^@"},
		{0x01, 0, "^A"},
		{'\n', 0, "^J"},
		{0x1f, 0, "^_"},
		{0x7f, 0, "^?"},
		{0x80, 0, "M-^@"},
		{0x81, 0, "M-^A"},
		{0xc1, 0, "M-A"},
		{0xff, 0, "M-^?"},
		{'A', 4, "A   "},
		{'\n', 4, "^J  "},
		{0xff, 4, "M-^?"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteByte(tt.c, tt.width), "quoteByte(%#x, %d)", tt.c, tt.width)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestFlushSurfacesWriteError(t *testing.T) {
	r := New(failWriter{}, &bytes.Buffer{}, "a", "b", false)

	r.FirstDiff(1, 1, 'a', 'b')

	assert.Error(t, r.Flush())
}
