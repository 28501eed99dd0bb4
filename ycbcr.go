package jpegli

// rgbToYCbCr applies the ITU-R BT.601 RGB->YCbCr transform to img in
// place, row by row, per spec.md §4.5. Values stay in the encoder's
// internal [0,1]-referred domain; the conventional 128/255 chroma bias is
// applied here in normalized form (0.5).
//
// Grounded on dlecorfec-progjpeg/writer.go's toYCbCr/rgbaToYCbCr, which use
// the same coefficients against 8-bit integer samples; this version
// operates on the float32 planes the rest of this package's pipeline uses.
func rgbToYCbCr(img *image3) {
	r, g, b := img.planes[0], img.planes[1], img.planes[2]
	for y := 0; y < r.height; y++ {
		rr, gg, bb := r.row(y), g.row(y), b.row(y)
		for x := 0; x < r.width; x++ {
			rv, gv, bv := float64(rr[x]), float64(gg[x]), float64(bb[x])
			yv := 0.299*rv + 0.587*gv + 0.114*bv
			cb := -0.168736*rv - 0.331264*gv + 0.5*bv + 0.5
			cr := 0.5*rv - 0.418688*gv - 0.081312*bv + 0.5
			rr[x] = float32(yv)
			gg[x] = float32(cb)
			bb[x] = float32(cr)
		}
	}
}
