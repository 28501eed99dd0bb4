package jpegli

// Annex K.1 base quantization tables, already in zig-zag order, carried
// forward from dlecorfec-progjpeg/writer.go's unscaledQuant and exposed
// here as the QUANT_STD mode's base matrices (see DESIGN.md).
var stdQuantLuminanceZZ = [64]float64{
	16, 11, 12, 14, 12, 10, 16, 14,
	13, 14, 18, 17, 16, 19, 24, 40,
	26, 24, 22, 22, 24, 49, 35, 37,
	29, 40, 58, 51, 61, 60, 57, 51,
	56, 55, 64, 72, 92, 78, 64, 68,
	87, 69, 55, 56, 80, 109, 81, 87,
	95, 98, 103, 104, 103, 62, 77, 113,
	121, 112, 100, 120, 92, 101, 103, 99,
}

var stdQuantChrominanceZZ = [64]float64{
	17, 18, 18, 24, 21, 24, 47, 26,
	26, 47, 99, 66, 56, 66, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

const (
	kGlobalScaleXYB   = 0.86747522
	kGlobalScaleYCbCr = 1.03148720
	kGlobalScaleStd   = 1.0
)

// psychovisualBaseWeight is a simplified per-frequency perceptual base
// matrix (natural, row-major order) for the non-STD (XYB/YCbCr) quant
// paths: the human eye tolerates coarser quantization as spatial frequency
// rises, so weight grows with the DCT basis function's (row,col)
// distance from DC, the same qualitative shape as the Annex K tables but
// generated rather than hand-tuned. Chroma gets a steeper falloff,
// mirroring Annex K's chrominance table saturating to 99 far sooner than
// luminance's does. This is an approximation of jpegli's actual
// frequency-adaptive quantization weights, not a transcription of them.
var psychovisualBaseWeightLuma, psychovisualBaseWeightChroma [64]float64

func init() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			n := row*8 + col
			psychovisualBaseWeightLuma[n] = 1.0 + 1.6*float64(row+col) + 0.3*float64(row*col)
			psychovisualBaseWeightChroma[n] = 1.6 + 3.2*float64(row+col) + 0.8*float64(row*col)
		}
	}
}

// quantPlan is the result of C6: the adaptive field plus one 64-entry
// natural-order quant matrix per component.
type quantPlan struct {
	mode       QuantMode
	field      []float64 // xsizeBlocks x ysizeBlocks, row-major
	fieldMin   float64
	fieldMax   float64
	matrices   [3][64]float64 // natural order, one per component (by QuantTblNo)
}

func quantModeOf(m *encoderMaster) QuantMode {
	switch {
	case m.xybMode:
		return QuantXYB
	case m.useStdTables:
		return QuantSTD
	default:
		return QuantYUV
	}
}

// initialQuantDC mirrors jpegli's DC-scale seed: a mild, distance-driven
// value close to 1 so the DC scale stays well-conditioned even at very
// small distances.
func initialQuantDC(distance float64) float64 {
	return 1.0 + 0.1*distance
}

// buildQuantPlan implements C6 end to end.
func (c *CompressionContext) buildQuantPlan() quantPlan {
	m := c.master
	var field []float64
	if m.useAdaptiveQuant {
		field = m.quantField.Estimate(m.distance, m.input.planes[0], c.xsizeBlocks, c.ysizeBlocks)
	} else {
		field = make([]float64, c.xsizeBlocks*c.ysizeBlocks)
		for i := range field {
			field[i] = 0.575
		}
	}
	qfmin, qfmax := field[0], field[0]
	for _, v := range field {
		if v < qfmin {
			qfmin = v
		}
		if v > qfmax {
			qfmax = v
		}
	}

	mode := quantModeOf(m)

	var globalScale float64
	switch mode {
	case QuantXYB:
		globalScale = kGlobalScaleXYB
	case QuantYUV:
		globalScale = kGlobalScaleYCbCr
	case QuantSTD:
		globalScale = kGlobalScaleStd
	}
	if mode != QuantXYB {
		switch m.transferFunction {
		case TransferPQ:
			globalScale *= 0.4
		case TransferHLG:
			globalScale *= 0.5
		}
	}

	var acScale, dcScale float64
	if mode == QuantXYB || !m.useStdTables {
		acScale = globalScale * m.distance / qfmax
		dcScale = globalScale / initialQuantDC(m.distance)
	} else {
		linear := 0.01 * distanceToLinearQuality(m.distance)
		acScale = globalScale * linear
		dcScale = acScale
	}

	plan := quantPlan{mode: mode, field: field, fieldMin: qfmin, fieldMax: qfmax}
	for i := 0; i < 3; i++ {
		plan.matrices[i] = buildQuantMatrix(mode, i, dcScale, acScale, m.forceBaseline)
	}
	return plan
}

// buildQuantMatrix is the external add_jpeg_quant_matrices primitive of
// spec.md §4.6, implemented here: derive one component's 64-entry
// natural-order matrix from (mode, dcScale, acScale).
func buildQuantMatrix(mode QuantMode, componentIndex int, dcScale, acScale float64, forceBaseline bool) [64]float64 {
	var baseNatural [64]float64
	switch mode {
	case QuantSTD:
		var baseZZ [64]float64
		if componentIndex == 0 {
			baseZZ = stdQuantLuminanceZZ
		} else {
			baseZZ = stdQuantChrominanceZZ
		}
		for z, n := range zigzag {
			baseNatural[n] = baseZZ[z]
		}
	default:
		// XYB and YCbCr derive their matrices from scale combined with the
		// generated psychovisual base weights above, rather than an Annex K
		// base table.
		if componentIndex == 0 {
			baseNatural = psychovisualBaseWeightLuma
		} else {
			baseNatural = psychovisualBaseWeightChroma
		}
	}

	var out [64]float64
	maxVal := 32767.0
	if forceBaseline {
		maxVal = 255.0
	}
	for n := 0; n < 64; n++ {
		base := baseNatural[n]
		scale := acScale
		if n == 0 {
			scale = dcScale
		}
		v := base * scale
		if v < 1 {
			v = 1
		}
		if v > maxVal {
			v = maxVal
		}
		out[n] = v
	}
	return out
}

// at returns the adaptive multiplier for the block at (bx,by) in
// a component's own block grid, upsampling/downsampling the field (stored
// at the full-resolution xsizeBlocks x ysizeBlocks grid) to match, per
// spec.md §4.7.
func (q *quantPlan) at(bx, by, factor, xsizeBlocks int) float64 {
	fx := bx * factor
	fy := by * factor
	if fx >= xsizeBlocks {
		fx = xsizeBlocks - 1
	}
	idx := fy*xsizeBlocks + fx
	if idx < 0 || idx >= len(q.field) {
		return 1.0
	}
	return q.field[idx]
}
