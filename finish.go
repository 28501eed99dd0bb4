package jpegli

// FinishCompress implements the end of C5-C8: color pipeline, quantizer
// planning, coefficient building, then bitstream emission in the exact
// order of spec.md §4.8.
func (c *CompressionContext) FinishCompress() error {
	if c.state != stateReady {
		return newError(CodeScanEncodingFailed, "FinishCompress called out of order in state %d", c.state)
	}
	if c.dest == nil {
		return newError(CodeScanEncodingFailed, "no destination installed")
	}

	if err := c.runColorPipeline(); err != nil {
		return err
	}
	plan := c.buildQuantPlan()
	coeffs := c.buildCoefficients(plan)

	bw := newBitWriter(c.dest)
	if err := c.dest.InitDestination(); err != nil {
		return err
	}

	bw.writeRawBytes([]byte{0xFF, markerSOI})
	for _, blob := range c.markers.blobs {
		bw.writeRawBytes(blob)
	}

	var matrices [][64]float64
	for i := 0; i < c.numComponents; i++ {
		matrices = append(matrices, plan.matrices[c.components[i].QuantTblNo])
	}
	writeDQT(bw, matrices)

	c.writeSOF(bw)
	if c.restartInterval > 0 {
		c.writeDRI(bw)
	}

	for _, scan := range c.master.scans.scans {
		if err := c.emitScan(bw, scan, coeffs); err != nil {
			return err
		}
	}

	bw.writeRawBytes([]byte{0xFF, markerEOI})
	if bw.err != nil {
		return wrapError(CodeScanEncodingFailed, bw.err, "writing entropy-coded stream")
	}
	if err := c.dest.TermDestination(); err != nil {
		return err
	}

	c.state = stateDone
	return nil
}

// emitScan dispatches on the scan's (Ss,Se,Ah) per spec.md §4.3's five
// templates, runs a counting pass to build this scan's Huffman table(s),
// emits DHT for exactly those tables, then emits the SOS header and
// entropy-coded body.
func (c *CompressionContext) emitScan(bw *bitWriter, scan ScanInfo, coeffs []componentCoeffs) error {
	needsDC := scan.Ss == 0
	needsAC := scan.Se > 0 || (scan.Ss == 0 && scan.Se == 63)

	walk := func(sink scanSink) {
		switch {
		case scan.Ss == 0 && scan.Se == 63:
			c.walkBaselineScan(scan, coeffs, sink)
		case scan.Se == 0:
			c.walkDCScan(scan, coeffs, sink)
		case scan.Ah == 0:
			c.walkACFirstScan(scan, coeffs, sink)
		default:
			c.walkACRefineScan(scan, coeffs, sink)
		}
	}

	var counts countingSink
	walk(&counts)

	var dcTable, acTable huffmanTable
	var dcCodes, acCodes map[byte]huffmanCode
	if needsDC {
		dcTable = c.master.huffmanOptimizer.Optimize(counts.freq[dcTableSel])
		dcCodes = codesFromTable(dcTable)
	}
	if needsAC {
		acTable = c.master.huffmanOptimizer.Optimize(counts.freq[acTableSel])
		acCodes = codesFromTable(acTable)
	}

	if needsDC {
		writeDHT(bw, 0, 0, dcTable)
	}
	if needsAC {
		writeDHT(bw, 1, 0, acTable)
	}

	c.writeSOS(bw, scan)

	sink := &emitSink{bw: bw, codes: [2]map[byte]huffmanCode{dcTableSel: dcCodes, acTableSel: acCodes}}
	walk(sink)
	bw.alignToByte()

	if bw.err != nil {
		return wrapError(CodeScanEncodingFailed, bw.err, "encoding scan Ss=%d Se=%d Ah=%d Al=%d", scan.Ss, scan.Se, scan.Ah, scan.Al)
	}
	return nil
}
