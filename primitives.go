package jpegli

// This file defines the "specified primitives with named contracts" of
// spec.md §1: the DCT kernel, the adaptive-quant-field estimator, and the
// XYB conversion math. Each is a capability interface (per spec.md §9's
// design note) with a default implementation registered on
// CompressionContext at CreateCompress, so a caller can swap in an
// alternative (e.g. a SIMD DCT, or a learned quant-field estimator)
// without touching the orchestration in color.go/quant.go/coeff.go.

// DCT performs a deterministic, unscaled 2-D forward discrete cosine
// transform over one 8x8 block of samples already in natural (row-major)
// order, in place.
type DCT interface {
	Forward(b *block)
}

// AdaptiveQuantField estimates a per-8x8-block multiplier field over a
// luma plane, used to sharpen quantization in visually important regions.
// The returned field is xsizeBlocks x ysizeBlocks, row-major.
type AdaptiveQuantField interface {
	Estimate(distance float64, y *plane, xsizeBlocks, ysizeBlocks int) []float64
}

// XYBConverter performs the opsin RGB->XYB colorspace conversion,
// parameterized by an intensity target (255.0 for 8-bit-referred SDR).
type XYBConverter interface {
	Convert(img *image3, intensityTarget float64)
}

// HuffmanOptimizer computes optimal DHT tables from measured symbol
// frequencies for one scan's coefficients. See huffman.go for the concrete
// default implementation (Annex K.3-style code-length assignment).
type HuffmanOptimizer interface {
	Optimize(freq [257]uint32) huffmanTable
}

func defaultDCT() DCT                               { return separableFloatDCT{} }
func defaultAdaptiveQuantField() AdaptiveQuantField { return blockVarianceQuantField{} }
func defaultXYBConverter() XYBConverter             { return opsinXYBConverter{} }
func defaultHuffmanOptimizer() HuffmanOptimizer     { return optimalHuffmanOptimizer{} }
