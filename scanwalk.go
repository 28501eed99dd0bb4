package jpegli

// walkBaselineScan handles the combined DC+AC (Ss=0,Se=63,Ah=0,Al=0) scan:
// classic per-block baseline coding, interleaved across every component in
// MCU order. Grounded on the MCU/sampling traversal idiom in
// dlecorfec-progjpeg/scan.go's processSOS, inverted from decode to encode.
func (c *CompressionContext) walkBaselineScan(scan ScanInfo, coeffs []componentCoeffs, sink scanSink) {
	mxx, myy := c.mcuGrid(scan, coeffs)
	prevDC := make([]int32, len(scan.Components))
	unit := 0
	for my := 0; my < myy; my++ {
		for mx := 0; mx < mxx; mx++ {
			for si, ci := range scan.Components {
				comp := c.components[ci]
				cc := &coeffs[ci]
				for sy := 0; sy < comp.VSampFactor; sy++ {
					for sx := 0; sx < comp.HSampFactor; sx++ {
						bx := mx*comp.HSampFactor + sx
						by := my*comp.VSampFactor + sy
						blk := &cc.blocks[by*cc.widthInBlocks+bx]
						emitBaselineBlock(blk, &prevDC[si], sink)
					}
				}
			}
			unit++
			if c.restartInterval > 0 && unit%c.restartInterval == 0 && (my < myy-1 || mx < mxx-1) {
				sink.restart(unit/c.restartInterval - 1)
				for i := range prevDC {
					prevDC[i] = 0
				}
			}
		}
	}
}

func emitBaselineBlock(blk *coeffBlock, prevDC *int32, sink scanSink) {
	diff := blk[0] - *prevDC
	*prevDC = blk[0]
	size, extra := bitCategory(diff)
	sink.symbol(dcTableSel, size)
	if size > 0 {
		sink.extra(extra, size)
	}

	run := 0
	for z := 1; z < 64; z++ {
		v := zzAt(blk, z)
		if v == 0 {
			run++
			continue
		}
		for run > 15 {
			sink.symbol(acTableSel, 0xF0)
			run -= 16
		}
		size, extra := bitCategory(v)
		sink.symbol(acTableSel, byte(run<<4)|size)
		sink.extra(extra, size)
		run = 0
	}
	if run > 0 {
		sink.symbol(acTableSel, 0x00) // EOB
	}
}

// walkDCScan handles a DC-only (Ss=Se=0,Ah=0,Al=0) scan, either
// interleaved (max_shift > 0) or one ScanInfo per component otherwise.
func (c *CompressionContext) walkDCScan(scan ScanInfo, coeffs []componentCoeffs, sink scanSink) {
	if len(scan.Components) > 1 {
		mxx, myy := c.mcuGrid(scan, coeffs)
		prevDC := make([]int32, len(scan.Components))
		unit := 0
		for my := 0; my < myy; my++ {
			for mx := 0; mx < mxx; mx++ {
				for si, ci := range scan.Components {
					comp := c.components[ci]
					cc := &coeffs[ci]
					for sy := 0; sy < comp.VSampFactor; sy++ {
						for sx := 0; sx < comp.HSampFactor; sx++ {
							bx := mx*comp.HSampFactor + sx
							by := my*comp.VSampFactor + sy
							blk := &cc.blocks[by*cc.widthInBlocks+bx]
							diff := blk[0] - prevDC[si]
							prevDC[si] = blk[0]
							size, extra := bitCategory(diff)
							sink.symbol(dcTableSel, size)
							if size > 0 {
								sink.extra(extra, size)
							}
						}
					}
				}
				unit++
				if c.restartInterval > 0 && unit%c.restartInterval == 0 && (my < myy-1 || mx < mxx-1) {
					sink.restart(unit/c.restartInterval - 1)
					for i := range prevDC {
						prevDC[i] = 0
					}
				}
			}
		}
		return
	}

	ci := scan.Components[0]
	cc := &coeffs[ci]
	var prevDC int32
	unit := 0
	total := cc.widthInBlocks * cc.heightInBlocks
	for i := 0; i < total; i++ {
		blk := &cc.blocks[i]
		diff := blk[0] - prevDC
		prevDC = blk[0]
		size, extra := bitCategory(diff)
		sink.symbol(dcTableSel, size)
		if size > 0 {
			sink.extra(extra, size)
		}
		unit++
		if c.restartInterval > 0 && unit%c.restartInterval == 0 && i < total-1 {
			sink.restart(unit/c.restartInterval - 1)
			prevDC = 0
		}
	}
}

// walkACFirstScan handles a first AC pass (Ah=0, any Al) over a single,
// non-interleaved component's block grid, with EOBRUN coalescing across
// blocks per ITU-T T.81 §G.1.2.2.
func (c *CompressionContext) walkACFirstScan(scan ScanInfo, coeffs []componentCoeffs, sink scanSink) {
	ci := scan.Components[0]
	cc := &coeffs[ci]
	total := cc.widthInBlocks * cc.heightInBlocks
	eobrun := 0
	unit := 0

	flushEOB := func() {
		if eobrun == 0 {
			return
		}
		size, extra := eobRunCategory(eobrun)
		sink.symbol(acTableSel, size<<4)
		if size > 0 {
			sink.extra(extra, size)
		}
		eobrun = 0
	}

	for i := 0; i < total; i++ {
		blk := &cc.blocks[i]
		k := lastNonZeroShifted(blk, scan.Ss, scan.Se, scan.Al)
		if k < scan.Ss {
			eobrun++
			if eobrun == 0x7FFF {
				flushEOB()
			}
		} else {
			flushEOB()
			run := 0
			for z := scan.Ss; z <= k; z++ {
				v := absInt32(zzAt(blk, z)) >> uint(scan.Al)
				if zzAt(blk, z) < 0 {
					v = -v
				}
				if v == 0 {
					run++
					continue
				}
				for run > 15 {
					sink.symbol(acTableSel, 0xF0)
					run -= 16
				}
				size, extra := bitCategory(v)
				sink.symbol(acTableSel, byte(run<<4)|size)
				sink.extra(extra, size)
				run = 0
			}
			if k < scan.Se {
				eobrun++
			}
		}
		unit++
		if c.restartInterval > 0 && unit%c.restartInterval == 0 && i < total-1 {
			flushEOB()
			sink.restart(unit/c.restartInterval - 1)
		}
	}
	flushEOB()
}

// eobRunCategory returns the (size,extra) pair for an EOB-run length over
// [1, 0x7FFF] run counts: size is floor(log2(run)), the EOBn symbol
// nibble, and extra holds the low size bits of run.
func eobRunCategory(run int) (size uint8, extra uint32) {
	size = 0
	for (2 << size) <= run {
		size++
	}
	extra = uint32(run) - (1 << size)
	return size, extra
}

// lastNonZeroShifted returns the highest zig-zag position in [Ss,Se] whose
// magnitude shifted by Al is nonzero, or Ss-1 if none.
func lastNonZeroShifted(b *coeffBlock, ss, se, al int) int {
	for z := se; z >= ss; z-- {
		if absInt32(zzAt(b, z))>>uint(al) != 0 {
			return z
		}
	}
	return ss - 1
}

// walkACRefineScan handles a successive-approximation AC refinement pass
// (Ah>0) over a single, non-interleaved component's block grid, per
// ITU-T T.81 §G.1.2.3. Derived by inverting
// dlecorfec-progjpeg/scan.go's decode-side refine/refineNonZeroes (see
// DESIGN.md): coefficients already significant at Ah carry a correction
// bit equal to bit Al of their shifted magnitude; coefficients newly
// significant at this pass (magnitude shifted by Al equals exactly 1)
// are coded with run-length + sign; spans containing neither are folded
// into the EOBRUN.
func (c *CompressionContext) walkACRefineScan(scan ScanInfo, coeffs []componentCoeffs, sink scanSink) {
	ci := scan.Components[0]
	cc := &coeffs[ci]
	total := cc.widthInBlocks * cc.heightInBlocks
	eobrun := 0
	var pendingCorrections []uint32
	unit := 0

	flushEOB := func() {
		if eobrun == 0 {
			return
		}
		size, extra := eobRunCategory(eobrun)
		sink.symbol(acTableSel, size<<4)
		if size > 0 {
			sink.extra(extra, size)
		}
		for _, bit := range pendingCorrections {
			sink.extra(bit, 1)
		}
		eobrun = 0
		pendingCorrections = pendingCorrections[:0]
	}

	for i := 0; i < total; i++ {
		blk := &cc.blocks[i]

		// Find the last position that is either already significant or
		// newly significant this pass; positions after it with no new
		// information fold into the EOBRUN.
		eob := scan.Ss - 1
		for z := scan.Ss; z <= scan.Se; z++ {
			mag := absInt32(zzAt(blk, z)) >> uint(scan.Al)
			if mag == 1 || absInt32(zzAt(blk, z))>>uint(scan.Al+1) != 0 {
				eob = z
			}
		}

		run := 0
		for z := scan.Ss; z <= eob; z++ {
			raw := zzAt(blk, z)
			mag := absInt32(raw) >> uint(scan.Al)
			alreadySig := absInt32(raw)>>uint(scan.Al+1) != 0
			if mag == 0 {
				run++
				continue
			}
			if alreadySig {
				pendingCorrections = append(pendingCorrections, uint32(mag&1))
				continue
			}
			// Newly significant this pass.
			for run > 15 {
				sink.symbol(acTableSel, 0xF0)
				for _, bit := range pendingCorrections {
					sink.extra(bit, 1)
				}
				pendingCorrections = pendingCorrections[:0]
				run -= 16
			}
			size := uint8(1)
			sink.symbol(acTableSel, byte(run<<4)|size)
			sign := uint32(0)
			if raw > 0 {
				sign = 1
			}
			sink.extra(sign, 1)
			for _, bit := range pendingCorrections {
				sink.extra(bit, 1)
			}
			pendingCorrections = pendingCorrections[:0]
			run = 0
		}

		if eob < scan.Ss {
			eobrun++
		} else {
			flushEOB()
		}

		if eobrun == 0x7FFF {
			flushEOB()
		}

		unit++
		if c.restartInterval > 0 && unit%c.restartInterval == 0 && i < total-1 {
			flushEOB()
			sink.restart(unit/c.restartInterval - 1)
		}
	}
	flushEOB()
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// mcuGrid returns the MCU column/row count for an interleaved scan,
// derived from the first participating component's block grid, which by
// construction (SetDefaults) always carries the maximum sampling factor.
func (c *CompressionContext) mcuGrid(scan ScanInfo, coeffs []componentCoeffs) (mxx, myy int) {
	ci := scan.Components[0]
	comp := c.components[ci]
	cc := coeffs[ci]
	return cc.widthInBlocks / comp.HSampFactor, cc.heightInBlocks / comp.VSampFactor
}
