package jpegli

import "math/bits"

const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerDQT  = 0xDB
	markerSOF0 = 0xC0
	markerSOF2 = 0xC2
	markerDHT  = 0xC4
	markerSOS  = 0xDA
	markerDRI  = 0xDD
	markerRST0 = 0xD0

	dcTableSel = 0
	acTableSel = 1
)

// bitWriter accumulates entropy-coded bits MSB-first into a 32-bit buffer
// and flushes completed bytes to the destination, stuffing a 0x00 after
// every literal 0xFF byte. Grounded on dlecorfec-progjpeg/writer.go's
// emit/emitHuffRLE accumulator technique, generalized to dynamically
// assigned codes instead of a fixed LUT.
type bitWriter struct {
	dest     Destination
	bitBuf   uint32
	nBits    uint32
	err      error
}

func newBitWriter(dest Destination) *bitWriter {
	return &bitWriter{dest: dest}
}

func (w *bitWriter) emitBits(value uint32, size uint8) {
	if w.err != nil || size == 0 {
		return
	}
	n := w.nBits + uint32(size)
	v := value << (32 - n)
	v |= w.bitBuf
	for n >= 8 {
		b := byte(v >> 24)
		w.writeRawByte(b)
		if b == 0xFF {
			w.writeRawByte(0x00)
		}
		v <<= 8
		n -= 8
	}
	w.bitBuf, w.nBits = v, n
}

func (w *bitWriter) emitCode(c huffmanCode) { w.emitBits(uint32(c.code), c.size) }

// alignToByte pads the remaining bits with 1s (per ITU-T T.81 Annex F) so
// the next marker starts on a byte boundary. The padding goes through
// emitBits like entropy data, so a padded byte of 0xFF is byte-stuffed.
func (w *bitWriter) alignToByte() {
	if w.nBits == 0 {
		return
	}
	size := uint8(8 - w.nBits)
	pad := uint32(1<<size) - 1
	w.emitBits(pad, size)
}

func (w *bitWriter) writeRawByte(b byte) {
	if w.err != nil {
		return
	}
	w.err = w.dest.WriteBytes([]byte{b})
}

func (w *bitWriter) writeRawBytes(b []byte) {
	if w.err != nil {
		return
	}
	w.err = w.dest.WriteBytes(b)
}

// bitCategory returns the JPEG "size" category (bit length) of v's
// magnitude and the extra bits to transmit alongside it, per the standard
// signed-magnitude coding used for both DC diffs and AC coefficients.
func bitCategory(v int32) (size uint8, extra uint32) {
	if v == 0 {
		return 0, 0
	}
	av := v
	if av < 0 {
		av = -av
	}
	size = uint8(bits.Len32(uint32(av)))
	if v < 0 {
		extra = uint32(v+(1<<size)-1) & ((1 << size) - 1)
	} else {
		extra = uint32(v) & ((1 << size) - 1)
	}
	return size, extra
}

// scanSink receives the symbol stream a scan walker produces. countingSink
// tallies frequencies for the Huffman optimizer; emitSink writes the real
// bitstream. Splitting these into one interface keeps the two-pass
// optimize-then-emit structure from duplicating any traversal logic.
type scanSink interface {
	symbol(table int, sym byte)
	extra(bits uint32, size uint8)
	restart(rstIndex int)
}

type countingSink struct {
	freq [2][257]uint32
}

func (s *countingSink) symbol(table int, sym byte) { s.freq[table][sym]++ }
func (s *countingSink) extra(uint32, uint8)         {}
func (s *countingSink) restart(int)                 {}

type emitSink struct {
	bw    *bitWriter
	codes [2]map[byte]huffmanCode
}

func (s *emitSink) symbol(table int, sym byte) {
	c, ok := s.codes[table][sym]
	if !ok {
		s.bw.err = newError(CodeScanEncodingFailed, "no huffman code for symbol 0x%02X in table %d", sym, table)
		return
	}
	s.bw.emitCode(c)
}

func (s *emitSink) extra(bits uint32, size uint8) { s.bw.emitBits(bits, size) }

func (s *emitSink) restart(rstIndex int) {
	s.bw.alignToByte()
	s.bw.writeRawBytes([]byte{0xFF, byte(markerRST0 + rstIndex%8)})
}
