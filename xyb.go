package jpegli

import "math"

// Fixed XYB post-scale constants applied after the opsin conversion, per
// spec.md §4.5 ("apply a fixed XYB scaling"). These keep the three
// channels roughly unit-scaled so the downstream quantizer's global scale
// (kGlobalScaleXYB) applies uniformly.
const (
	xybScaleX = 512.0
	xybScaleY = 1.0
	xybScaleB = 1.0
	xybBias   = 0.00379307254
)

// opsinXYBConverter is the default XYBConverter primitive: an LMS-style
// cone response approximation followed by a biased cube root and the X/Y/B
// mixing matrix, matching the general opsin-XYB construction used by
// jpegli/libjxl (see original_source/lib/jpegli/encode.cc's XYB branch).
type opsinXYBConverter struct{}

func (opsinXYBConverter) Convert(img *image3, intensityTarget float64) {
	r, g, b := img.planes[0], img.planes[1], img.planes[2]
	scale := 255.0 / intensityTarget
	for y := 0; y < r.height; y++ {
		rr, gg, bb := r.row(y), g.row(y), b.row(y)
		for x := 0; x < r.width; x++ {
			rv := float64(rr[x]) * scale
			gv := float64(gg[x]) * scale
			bv := float64(bb[x]) * scale

			l := 0.3*rv + 0.622*gv + 0.078*bv
			m := 0.23*rv + 0.692*gv + 0.078*bv
			s := 0.24342268924547819*rv + 0.20476744424496821*gv + 0.54558980555555555*bv

			lg := cubeRootBias(l)
			mg := cubeRootBias(m)
			sg := cubeRootBias(s)

			x0 := (lg - mg) * 0.5 * xybScaleX
			y0 := (lg + mg) * 0.5 * xybScaleY
			b0 := sg * xybScaleB

			rr[x] = float32(x0)
			gg[x] = float32(y0)
			bb[x] = float32(b0)
		}
	}
}

func cubeRootBias(v float64) float64 {
	v += xybBias
	if v < 0 {
		return -math.Cbrt(-v)
	}
	return math.Cbrt(v)
}

// synthesizeXYBICCProfile builds a minimal stand-in profile blob for the
// XYB stream: a 128-byte header in which only the "acsp" signature, the
// "mntr" device class, the "RGB " color space and the "XYZ " connection
// space are filled in, followed by the raw text "jpegli-go XYB". The
// header's size field is left zero and there is no tag table, so the blob
// is not a complete ICC profile and carries no ICC tags.
func synthesizeXYBICCProfile() []byte {
	const desc = "jpegli-go XYB"
	header := make([]byte, 128)
	copy(header[36:40], "acsp")
	copy(header[16:20], "mntr")
	copy(header[12:16], "RGB ")
	copy(header[20:24], "XYZ ")
	payload := append(header, []byte(desc)...)
	return payload
}
