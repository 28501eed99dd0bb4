package jpegli

// writeDQT emits one DQT marker covering every distinct quant table
// referenced by components, in natural-to-zigzag order, per ITU-T T.81
// §B.2.4.1.
func writeDQT(bw *bitWriter, matrices [][64]float64) {
	precision16 := false
	for _, m := range matrices {
		for _, v := range m {
			if v > 255 {
				precision16 = true
			}
		}
	}
	entrySize := 1
	if precision16 {
		entrySize = 2
	}
	length := 2 + len(matrices)*(1+64*entrySize)
	header := []byte{0xFF, markerDQT, byte(length >> 8), byte(length & 0xFF)}
	bw.writeRawBytes(header)
	for i, m := range matrices {
		var natural [64]int32
		for n := 0; n < 64; n++ {
			natural[n] = int32(m[n] + 0.5)
		}
		zz := naturalToZigzag(&natural)
		pq := 0
		if precision16 {
			pq = 1
		}
		bw.writeRawBytes([]byte{byte(pq<<4 | i)})
		for _, v := range zz {
			if precision16 {
				bw.writeRawBytes([]byte{byte(v >> 8), byte(v & 0xFF)})
			} else {
				bw.writeRawBytes([]byte{byte(v)})
			}
		}
	}
}

// writeSOF emits SOF0 (baseline) or SOF2 (progressive), per ITU-T T.81
// §B.2.2.
func (c *CompressionContext) writeSOF(bw *bitWriter) {
	marker := byte(markerSOF0)
	if c.progressiveMode {
		marker = markerSOF2
	}
	n := len(c.components)
	length := 8 + 3*n
	bw.writeRawBytes([]byte{0xFF, marker, byte(length >> 8), byte(length & 0xFF)})
	bw.writeRawBytes([]byte{
		8, // sample precision
		byte(c.imageHeight >> 8), byte(c.imageHeight & 0xFF),
		byte(c.imageWidth >> 8), byte(c.imageWidth & 0xFF),
		byte(n),
	})
	for _, comp := range c.components {
		bw.writeRawBytes([]byte{
			comp.ComponentID,
			byte(comp.HSampFactor<<4 | comp.VSampFactor),
			byte(comp.QuantTblNo),
		})
	}
}

// writeDRI emits a DRI marker, per ITU-T T.81 §B.2.4.4.
func (c *CompressionContext) writeDRI(bw *bitWriter) {
	bw.writeRawBytes([]byte{0xFF, markerDRI, 0x00, 0x04, byte(c.restartInterval >> 8), byte(c.restartInterval & 0xFF)})
}

// writeDHT emits one DHT marker for a single table, per ITU-T T.81
// §B.2.4.2. class is 0 for DC, 1 for AC.
func writeDHT(bw *bitWriter, class, tableID int, t huffmanTable) {
	length := 2 + 1 + 16 + len(t.values)
	bw.writeRawBytes([]byte{0xFF, markerDHT, byte(length >> 8), byte(length & 0xFF)})
	bw.writeRawBytes([]byte{byte(class<<4 | tableID)})
	bw.writeRawBytes(t.counts[:])
	bw.writeRawBytes(t.values)
}

// writeSOS emits the scan header, per ITU-T T.81 §B.2.3. Every listed
// component selects table id 0 for both its DC and its AC table.
func (c *CompressionContext) writeSOS(bw *bitWriter, scan ScanInfo) {
	n := len(scan.Components)
	length := 6 + 2*n
	bw.writeRawBytes([]byte{0xFF, markerSOS, byte(length >> 8), byte(length & 0xFF)})
	bw.writeRawBytes([]byte{byte(n)})
	for _, ci := range scan.Components {
		comp := c.components[ci]
		bw.writeRawBytes([]byte{comp.ComponentID, 0x00}) // table ids 0/0; class bit distinguishes DC from AC
	}
	bw.writeRawBytes([]byte{byte(scan.Ss), byte(scan.Se), byte(scan.Ah<<4 | scan.Al)})
}
