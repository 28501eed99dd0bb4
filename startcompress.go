package jpegli

// StartCompress validates component sampling factors, derives
// max_h_samp_factor/max_v_samp_factor/max_shift/xsize_blocks/ysize_blocks,
// and allocates the three working planes. writeAllTables is accepted for
// interface parity with the source; this implementation always writes a
// complete table set (there is no abbreviated-stream mode).
func (c *CompressionContext) StartCompress(writeAllTables bool) error {
	_ = writeAllTables
	if c.state != stateParams {
		return newError(CodeScanEncodingFailed, "StartCompress called out of order in state %d", c.state)
	}
	if c.numComponents > 3 {
		return newError(CodeInvalidComponents, "input has %d components, max 3", c.numComponents)
	}
	if len(c.components) == 0 {
		c.SetDefaults()
	}

	maxH, maxV := 1, 1
	for _, comp := range c.components {
		if comp.HSampFactor != comp.VSampFactor {
			return newError(CodeUnsupportedSubsampling, "component %d has h=%d v=%d", comp.ComponentIndex, comp.HSampFactor, comp.VSampFactor)
		}
		if comp.HSampFactor > maxH {
			maxH = comp.HSampFactor
		}
		if comp.VSampFactor > maxV {
			maxV = comp.VSampFactor
		}
	}
	for _, comp := range c.components {
		if maxH%comp.HSampFactor != 0 || maxV%comp.VSampFactor != 0 {
			return newError(CodeNonIntegralSubsamplingRatio, "component %d factor %d does not evenly divide max %d", comp.ComponentIndex, comp.HSampFactor, maxH)
		}
		ratio := maxH / comp.HSampFactor
		if !isPowerOfTwoLE8(ratio) {
			return newError(CodeInvalidSamplingFactor, "component %d ratio %d is not a power of two <= 8", comp.ComponentIndex, ratio)
		}
	}

	c.maxHSampFactor, c.maxVSampFactor = maxH, maxV
	c.maxShift = log2Int(maxIntOf(maxH, maxV))

	blockSize := 8 << c.maxShift
	c.xsizeBlocks = divCeil(c.imageWidth, blockSize) << c.maxShift
	c.ysizeBlocks = divCeil(c.imageHeight, blockSize) << c.maxShift

	for i := range c.components {
		factor := maxH / c.components[i].HSampFactor
		c.components[i].WidthInBlocks = c.xsizeBlocks / factor
		c.components[i].HeightInBlocks = c.ysizeBlocks / factor
	}

	w, h := c.xsizeBlocks*8, c.ysizeBlocks*8
	c.master.input = &image3{planes: [3]*plane{newPlane(w, h), newPlane(w, h), newPlane(w, h)}}

	if c.master.scans.scans == nil {
		scans, err := buildScanScript(c.master.progressiveLevel, c.maxShift, c.numComponents)
		if err != nil {
			return err
		}
		c.master.scans = ownedScanList(scans)
	}
	first := c.master.scans.scans[0]
	c.progressiveMode = first.Ss != 0 || first.Se != 63

	c.state = stateWriting
	return nil
}

func isPowerOfTwoLE8(n int) bool {
	if n < 1 || n > 8 {
		return false
	}
	return n&(n-1) == 0
}

func log2Int(n int) int {
	shift := 0
	for n > 1 {
		n >>= 1
		shift++
	}
	return shift
}

func maxIntOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func divCeil(a, b int) int {
	return (a + b - 1) / b
}
