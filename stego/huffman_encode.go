package stego

// huffmanEncodeTable is the encode-side canonical Huffman table: for each
// possible 8-bit symbol value, the assigned code and its bit length. Built
// by walking the bit lengths in order, handing out consecutive codes and
// left-shifting at each length boundary.
type huffmanEncodeTable struct {
	code [256]uint16
	size [256]byte
}

func buildHuffmanEncodeTable(spec huffmanSpec) *huffmanEncodeTable {
	t := &huffmanEncodeTable{}

	var sizes [256]byte
	k := 0
	for l := 1; l <= 16; l++ {
		for i := 0; i < int(spec.counts[l-1]); i++ {
			sizes[k] = byte(l)
			k++
		}
	}

	code := uint16(0)
	curLen := byte(0)
	for i := 0; i < k; i++ {
		for sizes[i] != curLen {
			code <<= 1
			curLen++
		}
		symbol := spec.values[i]
		t.code[symbol] = code
		t.size[symbol] = sizes[i]
		code++
	}

	return t
}

func standardEncodeTables() [4]*huffmanEncodeTable {
	var tabs [4]*huffmanEncodeTable
	for i, spec := range standardHuffmanSpecs {
		tabs[i] = buildHuffmanEncodeTable(spec)
	}
	return tabs
}

// bitSize returns the number of bits needed to represent the magnitude of
// v (the JPEG "category"), and 0 for v == 0.
func bitSize(v int32) byte {
	if v < 0 {
		v = -v
	}
	var n byte
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

// encodeDC emits the Huffman-coded DC coefficient difference: category
// symbol via table, then the category's magnitude bits. Negative diffs
// are encoded as one's-complement of their magnitude, per the JPEG
// standard's VLI encoding.
func encodeDC(w *bitWriter, table *huffmanEncodeTable, diff int32) error {
	size := bitSize(diff)
	if err := w.write(uint32(table.code[size]), uint(table.size[size])); err != nil {
		return err
	}
	if size == 0 {
		return nil
	}
	return writeVLI(w, diff, size)
}

// encodeAC emits one block's 63 AC coefficients (in zigzag order) as a
// sequence of (zero-run, category) symbols and magnitude bits, using ZRL
// (run=15,size=0) for runs of 16 or more zeroes and EOB (run=0,size=0)
// once the remaining coefficients are all zero.
func encodeAC(w *bitWriter, table *huffmanEncodeTable, coeffs [blockPixels]int16) error {
	run := 0
	for i := 1; i < blockPixels; i++ {
		v := int32(coeffs[i])
		if v == 0 {
			run++
			continue
		}
		for run >= 16 {
			if err := writeACSymbol(w, table, 0xF0); err != nil {
				return err
			}
			run -= 16
		}
		size := bitSize(v)
		symbol := byte(run<<4) | size
		if err := writeACSymbol(w, table, symbol); err != nil {
			return err
		}
		if err := writeVLI(w, v, size); err != nil {
			return err
		}
		run = 0
	}
	if run > 0 {
		return writeACSymbol(w, table, 0x00)
	}
	return nil
}

func writeACSymbol(w *bitWriter, table *huffmanEncodeTable, symbol byte) error {
	return w.write(uint32(table.code[symbol]), uint(table.size[symbol]))
}

// writeVLI emits the size-bit variable-length-integer encoding of v: the
// magnitude bits directly for positive v, one's-complement magnitude for
// negative v.
func writeVLI(w *bitWriter, v int32, size byte) error {
	if v < 0 {
		v = v - 1
	}
	mask := int32(1)<<uint(size) - 1
	return w.write(uint32(v)&uint32(mask), uint(size))
}
