package stego

// baseLuminanceMatrix is the ITU-T T.81 Annex K.1 standard luminance
// quantisation matrix, in raster (natural) order. The same matrix is
// reused across luma and chroma planes.
var baseLuminanceMatrix = [blockPixels]int32{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// quantScale returns the ITU-T T.81 quality scale factor for quality in
// [1, 100].
func quantScale(quality int) int32 {
	if quality < 1 {
		quality = 1
	} else if quality > 100 {
		quality = 100
	}
	if quality < 50 {
		return int32(5000 / quality)
	}
	return int32(200 - 2*quality)
}

// buildQuantTable returns the 8x8 quantisation matrix for the given
// quality, in zigzag order (matching how it is written to a DQT segment
// and how it indexes zigzag-ordered coefficients during quantisation).
//
// Both DQT segments (table IDs 0 and 1) carry identical contents, and
// every plane — luma and chroma alike — is quantised with this same
// matrix rather than a separate chroma table.
func buildQuantTable(quality int) [blockPixels]int32 {
	scale := quantScale(quality)
	var natural [blockPixels]int32
	for i, base := range baseLuminanceMatrix {
		v := (scale*base + 50) / 100
		if v < 1 {
			v = 1
		} else if v > 255 {
			v = 255
		}
		natural[i] = v
	}
	return zigzag(natural)
}

// quantize divides each coefficient of a raster-order FDCT output by the
// matching zigzag-ordered quantisation value and rounds to the nearest
// signed integer, returning the result in zigzag order.
func quantize(coeffs [blockPixels]int16, zigzagQTable [blockPixels]int32) [blockPixels]int16 {
	var raster [blockPixels]int32
	for i, c := range coeffs {
		raster[i] = int32(c)
	}
	zz := zigzag(raster)

	var out [blockPixels]int16
	for i, c := range zz {
		q := zigzagQTable[i]
		out[i] = int16(roundDiv(c, q))
	}
	return out
}

// roundDiv divides a by b, rounding to the nearest integer (half away
// from zero).
func roundDiv(a, b int32) int32 {
	if b == 0 {
		return 0
	}
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}

// dequantize multiplies a zigzag-ordered quantised coefficient array back
// out by the quantisation matrix; exposed for tests that verify the
// quantize/dequantize relationship, not used on the hot encode/decode path
// since decoding never reconstructs pixels.
func dequantize(coeffs [blockPixels]int16, zigzagQTable [blockPixels]int32) [blockPixels]int32 {
	var out [blockPixels]int32
	for i, c := range coeffs {
		out[i] = int32(c) * zigzagQTable[i]
	}
	return out
}
