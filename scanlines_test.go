package jpegli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyGrayContext(t *testing.T, w, h int) *CompressionContext {
	t.Helper()
	c := CreateCompress()
	require.NoError(t, c.SetImage(w, h, 1, ColorSpaceGrayscale))
	c.SetDefaults()
	require.NoError(t, c.StartCompress(true))
	return c
}

func TestWriteScanlinesU8SplitBatches(t *testing.T) {
	c := newReadyGrayContext(t, 2, 2)
	row0 := []byte{0, 255}
	row1 := []byte{128, 64}

	n, err := c.WriteScanlines([][]byte{row0}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, stateWriting, c.state)

	n, err = c.WriteScanlines([][]byte{row1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, stateReady, c.state)

	plane := c.master.input.planes[0]
	assert.InDelta(t, 0.0, plane.row(0)[0], 1e-6)
	assert.InDelta(t, 1.0, plane.row(0)[1], 1e-6)
	assert.InDelta(t, 128.0/255.0, plane.row(1)[0], 1e-6)
	assert.InDelta(t, 64.0/255.0, plane.row(1)[1], 1e-6)
}

func TestWriteScanlinesTruncatesAtImageHeight(t *testing.T) {
	c := newReadyGrayContext(t, 2, 1)
	rows := [][]byte{{10, 20}, {30, 40}}
	n, err := c.WriteScanlines(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "must not consume more rows than imageHeight - nextScanline")
	assert.Equal(t, stateReady, c.state)
}

func TestWriteScanlinesU16Endianness(t *testing.T) {
	for _, e := range []Endianness{EndianLittle, EndianBig} {
		c := CreateCompress()
		require.NoError(t, c.SetImage(1, 1, 1, ColorSpaceGrayscale))
		c.SetInputFormat(DataTypeU16, e)
		c.SetDefaults()
		require.NoError(t, c.StartCompress(true))

		var row []byte
		if e == EndianLittle {
			row = []byte{0x00, 0x80} // 0x8000 little-endian
		} else {
			row = []byte{0x80, 0x00} // 0x8000 big-endian
		}
		_, err := c.WriteScanlines([][]byte{row}, 1)
		require.NoError(t, err)
		got := c.master.input.planes[0].row(0)[0]
		assert.InDelta(t, float64(0x8000)/65535.0, float64(got), 1e-4)
	}
}

func TestWriteScanlinesRejectsTooManyComponents(t *testing.T) {
	c := CreateCompress()
	require.NoError(t, c.SetImage(1, 1, 4, ColorSpaceRGB))
	c.state = stateWriting
	_, err := c.WriteScanlines([][]byte{{0, 0, 0, 0}}, 1)
	require.Error(t, err)
}
