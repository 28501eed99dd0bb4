package jpegli

import "math"

// dctCoeff[u][x] = cos((2x+1)*u*pi/16), the separable DCT-II basis used by
// both the row and column passes below. Built once at package init rather
// than ported from any fixed-point table, so this implementation carries
// no IJG licensing terms (see DESIGN.md).
var dctCoeff [8][8]float64

func init() {
	for u := 0; u < 8; u++ {
		for x := 0; x < 8; x++ {
			dctCoeff[u][x] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16.0)
		}
	}
}

func dctScale(u int) float64 {
	if u == 0 {
		return 1.0 / math.Sqrt(8)
	}
	return math.Sqrt(2.0 / 8.0)
}

// separableFloatDCT is the default DCT primitive: a direct separable
// DCT-II, row pass then column pass, each an O(N^2) matrix-vector product.
// It is not the fastest possible implementation but it is exact and
// trivially auditable, matching spec.md's framing of the DCT as an
// unscaled 2-D transform with a deterministic-output contract rather than
// a specific fast algorithm.
type separableFloatDCT struct{}

func (separableFloatDCT) Forward(b *block) {
	var tmp block
	// Row pass: for each row y, transform 8 samples into 8 frequencies.
	for y := 0; y < 8; y++ {
		row := b[y*8 : y*8+8]
		for u := 0; u < 8; u++ {
			var sum float64
			for x := 0; x < 8; x++ {
				sum += row[x] * dctCoeff[u][x]
			}
			tmp[y*8+u] = sum * dctScale(u)
		}
	}
	// Column pass: for each resulting column u, transform 8 values into 8
	// frequencies.
	for u := 0; u < 8; u++ {
		var col [8]float64
		for y := 0; y < 8; y++ {
			col[y] = tmp[y*8+u]
		}
		for v := 0; v < 8; v++ {
			var sum float64
			for y := 0; y < 8; y++ {
				sum += col[y] * dctCoeff[v][y]
			}
			b[v*8+u] = sum * dctScale(v)
		}
	}
}
