package jpegli

import "math"

// componentCoeffs holds one component's coefficient blocks in MCU-relative
// raster order: blocks[by*widthInBlocks+bx].
type componentCoeffs struct {
	widthInBlocks, heightInBlocks int
	blocks                        []coeffBlock
}

// buildCoefficients implements C7: for each component, for each 8x8 block
// in its (subsampled) plane, an unscaled 2-D DCT followed by quantization
// against the component's matrix times the per-block adaptive factor.
func (c *CompressionContext) buildCoefficients(plan quantPlan) []componentCoeffs {
	out := make([]componentCoeffs, c.numComponents)
	dct := c.master.dct

	for ci := 0; ci < c.numComponents; ci++ {
		comp := c.components[ci]
		factor := c.maxHSampFactor / comp.HSampFactor
		p := c.master.input.planes[ci]
		cc := componentCoeffs{
			widthInBlocks:  comp.WidthInBlocks,
			heightInBlocks: comp.HeightInBlocks,
			blocks:         make([]coeffBlock, comp.WidthInBlocks*comp.HeightInBlocks),
		}

		subsampled := p
		if factor > 1 {
			subsampled = downsamplePlane(p, factor)
		}

		matrix := plan.matrices[comp.QuantTblNo]

		for by := 0; by < comp.HeightInBlocks; by++ {
			for bx := 0; bx < comp.WidthInBlocks; bx++ {
				var blk block
				for y := 0; y < 8; y++ {
					row := subsampled.row(by*8 + y)
					for x := 0; x < 8; x++ {
						blk[y*8+x] = float64(row[bx*8+x])
					}
				}
				dct.Forward(&blk)

				mult := plan.at(bx, by, factor, c.xsizeBlocks)
				var coeffs coeffBlock
				for n := 0; n < 64; n++ {
					q := matrix[n] * mult
					if q < 1e-6 {
						q = 1e-6
					}
					coeffs[n] = int32(math.Round(blk[n] / q))
				}
				cc.blocks[by*comp.WidthInBlocks+bx] = coeffs
			}
		}
		out[ci] = cc
	}
	return out
}

// downsamplePlane box-filters src down by an integer factor in both
// dimensions, producing a plane sized src.width/factor x src.height/factor.
// Grounded on dlecorfec-progjpeg/writer.go's scale (16x16->8x8 averaging),
// generalized to an arbitrary power-of-two factor.
func downsamplePlane(src *plane, factor int) *plane {
	w, h := src.width/factor, src.height/factor
	out := newPlane(w, h)
	norm := float32(factor * factor)
	for y := 0; y < h; y++ {
		dst := out.row(y)
		for x := 0; x < w; x++ {
			var sum float32
			for dy := 0; dy < factor; dy++ {
				row := src.row(y*factor + dy)
				for dx := 0; dx < factor; dx++ {
					sum += row[x*factor+dx]
				}
			}
			dst[x] = sum / norm
		}
	}
	return out
}
