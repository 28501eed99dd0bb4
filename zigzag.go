package jpegli

// zigzag[i] is the natural (row-major) index of the i'th coefficient in
// zig-zag scan order, per ITU-T T.81 Annex A Figure A.6. Both DQT matrix
// transmission and AC entropy-coding scan order traverse coefficients in
// this sequence.
var zigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// zzAt reads natural-order coefficient block b at zig-zag scan position z.
func zzAt(b *coeffBlock, z int) int32 { return b[zigzag[z]] }

func naturalToZigzag(natural *[64]int32) [64]int32 {
	var out [64]int32
	for z, n := range zigzag {
		out[z] = natural[n]
	}
	return out
}
