package jpegli

import "math"

// blockVarianceQuantField is the default AdaptiveQuantField primitive. It
// is a local-contrast estimator: flat, low-variance 8x8 blocks get a
// higher multiplier (finer quantization, since banding is most visible on
// flat regions), and high-variance/textured blocks get a lower multiplier
// since quantization error there is masked by existing detail. This
// mirrors the perceptual motivation in spec.md's glossary entry for
// "Adaptive quant field" without reproducing any specific external
// estimator's exact formula.
type blockVarianceQuantField struct{}

func (blockVarianceQuantField) Estimate(distance float64, y *plane, xsizeBlocks, ysizeBlocks int) []float64 {
	field := make([]float64, xsizeBlocks*ysizeBlocks)
	for by := 0; by < ysizeBlocks; by++ {
		for bx := 0; bx < xsizeBlocks; bx++ {
			mean, variance := blockStats(y, bx*8, by*8)
			_ = mean
			// Map variance to a multiplier in roughly [0.3, 1.2]: flat
			// blocks (variance near 0) get close to 1.2 (finer
			// quantization), highly textured blocks asymptote toward 0.3.
			mult := 0.3 + 0.9/(1.0+variance/0.01)
			field[by*xsizeBlocks+bx] = mult * math.Sqrt(distance)
		}
	}
	return field
}

// blockStats computes the mean and variance of the 8x8 block of y whose
// top-left corner is (x0,y0). The plane is assumed already padded so the
// full block is always in bounds.
func blockStats(y *plane, x0, y0 int) (mean, variance float64) {
	var sum, sumSq float64
	n := 0
	for dy := 0; dy < 8; dy++ {
		row := y.row(y0 + dy)
		for dx := 0; dx < 8; dx++ {
			v := float64(row[x0+dx])
			sum += v
			sumSq += v * v
			n++
		}
	}
	mean = sum / float64(n)
	variance = sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}
