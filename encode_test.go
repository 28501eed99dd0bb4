package jpegli

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkerboard(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if (x/4+y/4)%2 == 0 {
				c.R, c.G, c.B = 200, 60, 20
			} else {
				c.R, c.G, c.B = 20, 60, 200
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func assertValidJPEGFraming(t *testing.T, data []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2], "must start with SOI")
	assert.Equal(t, []byte{0xFF, 0xD9}, data[len(data)-2:], "must end with EOI")
}

func TestEncodeBaselineRGB(t *testing.T) {
	img := checkerboard(16, 16)
	opts := NewOptions()
	opts.ProgressiveLevel = 0

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, opts))
	assertValidJPEGFraming(t, buf.Bytes())
}

func TestEncodeProgressiveRGB(t *testing.T) {
	img := checkerboard(32, 24)
	opts := NewOptions()
	opts.ProgressiveLevel = 2

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, opts))
	assertValidJPEGFraming(t, buf.Bytes())
}

func TestEncodeXYBRequiresRGBAndSynthesizesICC(t *testing.T) {
	img := checkerboard(16, 16)
	opts := NewOptions()
	opts.XYB = true

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, opts))
	assertValidJPEGFraming(t, buf.Bytes())
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("ICC_PROFILE\x00")), "XYB stream must embed an APP2 ICC profile")

	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	assert.Error(t, Encode(&bytes.Buffer{}, gray, opts), "XYB mode must reject non-RGB input")
}

func TestEncodeGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 4)
	}
	opts := NewOptions()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, opts))
	assertValidJPEGFraming(t, buf.Bytes())
}

func TestEncodeWithRestartIntervalAndDistance(t *testing.T) {
	img := checkerboard(16, 16)
	opts := NewOptions()
	opts.Distance = 1.5
	opts.RestartInterval = 2

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, opts))
	assertValidJPEGFraming(t, buf.Bytes())

	data := buf.Bytes()
	var restarts int
	for i := 0; i+1 < len(data); i++ {
		if data[i] == 0xFF && data[i+1] >= markerRST0 && data[i+1] < markerRST0+8 {
			restarts++
		}
	}
	assert.Positive(t, restarts, "restart markers should appear with a small restart interval")
}

func TestEncodeUsesStandardQuantTables(t *testing.T) {
	img := checkerboard(16, 16)
	opts := NewOptions()
	opts.UseStandardQuantTables = true

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, opts))
	assertValidJPEGFraming(t, buf.Bytes())
}
