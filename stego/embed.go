package stego

// embedPatternFor returns the zigzag-position pattern used for the MCU at
// the given index, cycling through the four fixed patterns. All four are
// orderings of the same 16 positions (25..40), so the cycle changes which
// position carries which of the MCU's 16 bits; every fully used block
// carries payload bits at all 16 positions.
func embedPatternFor(mcuIndex int) [bitsPerMCU]int {
	return embedPatterns[mcuIndex%len(embedPatterns)]
}

// embedCapacityBits returns how many payload bits fit across numBlocks Cb
// blocks, at bitsPerMCU bits per block.
func embedCapacityBits(numBlocks int) int {
	return numBlocks * bitsPerMCU
}

// Capacity returns the maximum message length, in bytes, that an image of
// the given pixel dimensions can carry, given the fixed 16-bits-per-MCU
// embedding rate into the Cb plane.
func Capacity(w, h int) int {
	bw := blocksForDimension(w)
	bh := blocksForDimension(h)
	return embedCapacityBits(bw*bh) / 8
}

// embedBits writes the bits of payload (MSB-first within each byte) into
// the LSBs of cb's blocks, cycling the embed pattern per block. It returns
// an error if payload has more bits than the plane can hold.
func embedBits(cb *plane, payload []byte) error {
	totalBits := len(payload) * 8
	if totalBits > embedCapacityBits(len(cb.blocks)) {
		return newError(KindMessageTooLong, "message does not fit in this image's Cb capacity")
	}

	bitIdx := 0
	for i := range cb.blocks {
		if bitIdx >= totalBits {
			break
		}
		pattern := embedPatternFor(i)
		blk := &cb.blocks[i]
		for j := 0; j < bitsPerMCU && bitIdx < totalBits; j++ {
			bit := (payload[bitIdx/8] >> uint(7-bitIdx%8)) & 1
			pos := pattern[j]
			blk[pos] = setLSB(blk[pos], bit)
			bitIdx++
		}
	}
	return nil
}

// extractBits reads totalBits bits back out of cb's blocks in the same
// pattern-cycling order embedBits used, and packs them MSB-first into
// bytes.
func extractBits(cb *plane, totalBits int) []byte {
	out := make([]byte, (totalBits+7)/8)
	bitIdx := 0
	for i := range cb.blocks {
		if bitIdx >= totalBits {
			break
		}
		pattern := embedPatternFor(i)
		blk := &cb.blocks[i]
		for j := 0; j < bitsPerMCU && bitIdx < totalBits; j++ {
			pos := pattern[j]
			bit := lsb(blk[pos])
			out[bitIdx/8] |= bit << uint(7-bitIdx%8)
			bitIdx++
		}
	}
	return out
}

func setLSB(v int16, bit byte) int16 {
	if bit == 0 {
		return v &^ 1
	}
	return v | 1
}

func lsb(v int16) byte {
	return byte(v & 1)
}
