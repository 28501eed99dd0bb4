package jpegli

import (
	"image"
	"io"
)

// Encode writes the image m to w as a JPEG using opts (or the package
// defaults if opts is nil). It bridges image.Image into the CompressionContext
// scanline API, playing the same ergonomic role as
// dlecorfec-progjpeg/writer.go's top-level Encode function, generalized
// to this package's distance/XYB-aware pipeline.
func Encode(w io.Writer, m image.Image, opts *Options) error {
	if opts == nil {
		opts = NewOptions()
	}

	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	numComponents := 3
	cs := ColorSpaceRGB
	if isGrayImage(m) {
		numComponents = 1
		cs = ColorSpaceGrayscale
	}

	ctx := CreateCompress()
	if err := ctx.SetImage(width, height, numComponents, cs); err != nil {
		ctx.Destroy()
		return err
	}
	if opts.XYB {
		if err := ctx.SetXYBMode(true); err != nil {
			ctx.Destroy()
			return err
		}
	}
	ctx.SetDefaults()
	if opts.UseStandardQuantTables {
		ctx.UseStandardQuantTables()
	}
	ctx.EnableAdaptiveQuantization(opts.AdaptiveQuantization)
	if opts.Distance > 0 {
		ctx.SetDistance(opts.Distance)
		ctx.master.forceBaseline = opts.ForceBaseline
	} else {
		ctx.SetQuality(float64(opts.Quality), opts.ForceBaseline)
	}
	if err := ctx.SetProgressiveLevel(opts.ProgressiveLevel); err != nil {
		ctx.Destroy()
		return err
	}
	ctx.SetRestartInterval(opts.RestartInterval)
	if len(opts.ScanScript) > 0 {
		ctx.SetScanScript(opts.ScanScript)
	}
	if len(opts.ICCProfile) > 0 && !opts.XYB {
		if err := ctx.WriteICCProfile(opts.ICCProfile); err != nil {
			ctx.Destroy()
			return err
		}
	}

	if err := ctx.StartCompress(true); err != nil {
		ctx.Destroy()
		return err
	}

	ctx.SetDestination(NewDestination(w))

	rows := make([][]byte, 1)
	bps := 1
	rowBuf := make([]byte, width*numComponents*bps)
	for y := 0; y < height; y++ {
		fillRow(rowBuf, m, b.Min.X, b.Min.Y+y, width, numComponents)
		rows[0] = rowBuf
		if _, err := ctx.WriteScanlines(rows, 1); err != nil {
			ctx.Destroy()
			return err
		}
	}

	if err := ctx.FinishCompress(); err != nil {
		ctx.Destroy()
		return err
	}
	ctx.Destroy()
	return nil
}

func isGrayImage(m image.Image) bool {
	switch m.(type) {
	case *image.Gray, *image.Gray16:
		return true
	default:
		return false
	}
}

func fillRow(buf []byte, m image.Image, x0, y int, width, numComponents int) {
	for x := 0; x < width; x++ {
		r, g, bl, _ := m.At(x0+x, y).RGBA()
		off := x * numComponents
		if numComponents == 1 {
			buf[off] = byte(r >> 8)
			continue
		}
		buf[off] = byte(r >> 8)
		buf[off+1] = byte(g >> 8)
		buf[off+2] = byte(bl >> 8)
	}
}
