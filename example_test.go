package jpegli_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/go-jpegli/jpegli"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}
	return img
}

// ExampleEncode shows the simplest path: package defaults (quality 75,
// progressive level 2).
func ExampleEncode() {
	var buf bytes.Buffer
	if err := jpegli.Encode(&buf, testImage(), nil); err != nil {
		panic(err)
	}
	fmt.Println(buf.Len() > 0)
	// Output: true
}

// ExampleEncode_xyb demonstrates the perceptual XYB pipeline, which always
// embeds its own synthesized ICC profile.
func ExampleEncode_xyb() {
	opts := jpegli.NewOptions()
	opts.XYB = true
	opts.Distance = 1.0

	var buf bytes.Buffer
	if err := jpegli.Encode(&buf, testImage(), opts); err != nil {
		panic(err)
	}
	fmt.Println(buf.Len() > 0)
	// Output: true
}

// ExampleEncode_customScanScript shows how to install a hand-written
// progressive scan script instead of letting the progressive-level planner
// pick one.
func ExampleEncode_customScanScript() {
	custom := []jpegli.ScanInfo{
		{Ss: 0, Se: 0, Components: []int{0, 1, 2}}, // DC, interleaved, for a quick preview
		{Ss: 1, Se: 5, Components: []int{0}},       // low AC frequencies, luma first
		{Ss: 1, Se: 5, Components: []int{1}},
		{Ss: 1, Se: 5, Components: []int{2}},
		{Ss: 6, Se: 63, Components: []int{0}}, // remaining frequencies
		{Ss: 6, Se: 63, Components: []int{1}},
		{Ss: 6, Se: 63, Components: []int{2}},
	}

	opts := jpegli.NewOptions()
	opts.ProgressiveLevel = 2
	opts.ScanScript = custom

	var buf bytes.Buffer
	if err := jpegli.Encode(&buf, testImage(), opts); err != nil {
		panic(err)
	}
	fmt.Println(buf.Len() > 0)
	// Output: true
}

// ExampleCompressionContext shows the low-level scanline API that Encode is
// built on, for callers producing rows from something other than an
// image.Image (a decoder, a render target, ...).
func ExampleCompressionContext() {
	var buf bytes.Buffer

	c := jpegli.CreateCompress()
	defer c.Destroy()

	const w, h = 8, 8
	if err := c.SetImage(w, h, 1, jpegli.ColorSpaceGrayscale); err != nil {
		panic(err)
	}
	c.SetDefaults()
	if err := c.SetProgressiveLevel(0); err != nil {
		panic(err)
	}
	if err := c.StartCompress(true); err != nil {
		panic(err)
	}
	c.SetDestination(jpegli.NewDestination(&buf))

	row := make([]byte, w)
	for y := 0; y < h; y++ {
		for x := range row {
			row[x] = byte((x + y) * 8)
		}
		if _, err := c.WriteScanlines([][]byte{row}, 1); err != nil {
			panic(err)
		}
	}
	if err := c.FinishCompress(); err != nil {
		panic(err)
	}
	fmt.Println(buf.Len() > 0)
	// Output: true
}
