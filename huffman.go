package jpegli

import "sort"

// huffmanTable is the standard JPEG DHT representation: counts[i] is the
// number of codes of length i+1 bits, values lists the symbols in
// code order. The shape mirrors dlecorfec-progjpeg/writer.go's
// huffmanSpec, but here it is always built from measured frequencies
// rather than hardcoded, per spec.md §4.8's "never standard fixed tables".
type huffmanTable struct {
	counts [16]byte
	values []byte
}

// huffmanCode is one symbol's assigned (code, length) pair, built from a
// huffmanTable via the standard Annex C code-generation procedure.
type huffmanCode struct {
	code uint16
	size uint8
}

// optimalHuffmanOptimizer builds a length-limited (<=16 bits) Huffman
// table from measured symbol frequencies, following the classic
// merge-two-least-frequent-nodes construction with an overlong-code
// flattening pass, the same overall shape as the JPEG reference encoder's
// table optimizer (grounded on the general approach described for
// dlecorfec-progjpeg/writer.go's fixed-table huffmanLUT.init, inverted:
// here the table itself is also derived, not just the codes from it).
type optimalHuffmanOptimizer struct{}

func (optimalHuffmanOptimizer) Optimize(freq [257]uint32) huffmanTable {
	return buildOptimalHuffmanTable(freq)
}

func buildOptimalHuffmanTable(freq [257]uint32) huffmanTable {
	f := freq
	f[256] = 1 // reserve one always-present symbol so the tree is never degenerate

	var codesize [257]int
	others := make([]int, 257)
	for i := range others {
		others[i] = -1
	}

	for {
		v1 := leastFrequent(f, -1)
		if v1 < 0 {
			break
		}
		v2 := leastFrequent(f, v1)
		if v2 < 0 {
			break
		}
		f[v1] += f[v2]
		f[v2] = 0
		codesize[v1]++
		for others[v1] != -1 {
			v1 = others[v1]
			codesize[v1]++
		}
		others[v1] = v2
		codesize[v2]++
		for others[v2] != -1 {
			v2 = others[v2]
			codesize[v2]++
		}
	}

	var bits [33]int
	for i := 0; i <= 256; i++ {
		if codesize[i] > 0 {
			bits[codesize[i]]++
		}
	}

	// Flatten any code longer than 16 bits into the 16-bit limit.
	for i := 32; i > 16; i-- {
		for bits[i] > 0 {
			j := i - 2
			for bits[j] == 0 {
				j--
			}
			bits[i] -= 2
			bits[i-1]++
			bits[j+1] += 2
			bits[j]--
		}
	}
	// Remove one code to leave room for the reserved all-ones bit pattern.
	i := 16
	for bits[i] == 0 {
		i--
	}
	bits[i]--

	var table huffmanTable
	for i := 1; i <= 16; i++ {
		table.counts[i-1] = byte(bits[i])
	}

	// Order symbols by assigned code length, breaking ties by symbol
	// value, to build HUFFVAL.
	type sym struct {
		value int
		size  int
	}
	var syms []sym
	for v := 0; v <= 256; v++ {
		if codesize[v] > 0 {
			syms = append(syms, sym{value: v, size: codesize[v]})
		}
	}
	sort.Slice(syms, func(a, b int) bool {
		if syms[a].size != syms[b].size {
			return syms[a].size < syms[b].size
		}
		return syms[a].value < syms[b].value
	})
	for _, s := range syms {
		if s.value == 256 {
			continue // the guard symbol never appears in the transmitted table
		}
		table.values = append(table.values, byte(s.value))
	}
	// counts[] already excludes the guard symbol (its slot was taken off
	// the longest length above); copy only the lengths that the emitted
	// values cover so DHT stays internally consistent.
	var rebuilt [16]byte
	vi := 0
	for length := 1; length <= 16 && vi < len(table.values); length++ {
		n := int(table.counts[length-1])
		if n < 0 {
			n = 0
		}
		rebuilt[length-1] = byte(n)
		vi += n
	}
	table.counts = rebuilt
	return table
}

func leastFrequent(f [257]uint32, exclude int) int {
	best := -1
	var bestFreq uint32 = 1 << 31
	for i := 0; i <= 256; i++ {
		if i == exclude || f[i] == 0 {
			continue
		}
		if f[i] <= bestFreq {
			bestFreq = f[i]
			best = i
		}
	}
	return best
}

// codesFromTable runs the standard Annex C procedure, turning a
// counts/values table into a per-symbol (code,size) assignment. Grounded
// on dlecorfec-progjpeg/writer.go's huffmanLUT.init, which performs this
// exact canonical-code derivation against a fixed table; here it is
// applied to a table built at encode time.
func codesFromTable(t huffmanTable) map[byte]huffmanCode {
	codes := make(map[byte]huffmanCode)
	code := uint16(0)
	vi := 0
	for length := 1; length <= 16; length++ {
		n := int(t.counts[length-1])
		for i := 0; i < n; i++ {
			codes[t.values[vi]] = huffmanCode{code: code, size: uint8(length)}
			vi++
			code++
		}
		code <<= 1
	}
	return codes
}
