package jpegli

import (
	"encoding/binary"
	"math"
)

// resolveEndianness maps NATIVE to the host byte order at call time, per
// spec.md §9's note that NATIVE must resolve per WriteScanlines call, not
// be cached on the context.
func resolveEndianness(e Endianness) Endianness {
	if e != EndianNative {
		return e
	}
	var x uint16 = 1
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, x)
	if buf[0] == 1 {
		return EndianLittle
	}
	return EndianBig
}

func order(e Endianness) binary.ByteOrder {
	if e == EndianBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// WriteScanlines implements C4: demultiplexes n interleaved rows into the
// context's planar float buffers, per spec.md §4.4. rows[i] holds one
// source row of num_components*bytes_per_sample*image_width bytes. It
// returns the number of rows actually consumed.
func (c *CompressionContext) WriteScanlines(rows [][]byte, n int) (int, error) {
	if c.state != stateWriting {
		return 0, newError(CodeScanEncodingFailed, "WriteScanlines called out of order in state %d", c.state)
	}
	if c.numComponents > 3 {
		return 0, newError(CodeInvalidComponents, "input has %d components, max 3", c.numComponents)
	}
	if c.nextScanline+n > c.imageHeight {
		n = c.imageHeight - c.nextScanline
	}
	if n <= 0 {
		return 0, nil
	}

	bps := c.master.dataType.BytesPerSample()
	eff := resolveEndianness(c.master.endianness)
	bo := order(eff)

	for comp := 0; comp < c.numComponents; comp++ {
		p := c.master.input.planes[comp]
		for i := 0; i < n; i++ {
			src := rows[i]
			dst := p.row(c.nextScanline + i)
			for x := 0; x < c.imageWidth; x++ {
				off := comp*bps + x*c.numComponents*bps
				sample := src[off : off+bps]
				var v float32
				switch c.master.dataType {
				case DataTypeU8:
					v = float32(sample[0]) / 255.0
				case DataTypeU16:
					v = float32(bo.Uint16(sample)) / 65535.0
				case DataTypeF32:
					v = math.Float32frombits(bo.Uint32(sample))
				}
				dst[x] = v
			}
		}
	}

	c.nextScanline += n
	if c.nextScanline == c.imageHeight {
		c.state = stateReady
	}
	return n, nil
}
