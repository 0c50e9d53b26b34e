package stego

// clampByte clamps v to the [0, 255] range a JPEG sample occupies.
func clampByte(v float64) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int32(v + 0.5)
}

// rgbToYCbCrBlock converts the 8x8 pixel block of an interleaved RGB
// raster rooted at (px, py) into three raster-order Y/Cb/Cr blocks, using
// fixed BT.601-style coefficients rather than image/color's built-in
// (differently-rounded) conversion — the round-trip invariant depends on
// these specific coefficients surviving quantisation bit for bit. Pixels
// beyond the raster edge replicate the last in-bounds row or column.
func rgbToYCbCrBlock(rgb []byte, w, h, px, py int) (y, cb, cr [blockPixels]int32) {
	for j := 0; j < blockSize; j++ {
		sy := py + j
		if sy >= h {
			sy = h - 1
		}
		for i := 0; i < blockSize; i++ {
			sx := px + i
			if sx >= w {
				sx = w - 1
			}
			off := (sy*w + sx) * 3
			r := float64(rgb[off])
			g := float64(rgb[off+1])
			b := float64(rgb[off+2])

			idx := j*blockSize + i
			y[idx] = clampByte(0.299*r+0.587*g+0.114*b) - 128
			cb[idx] = clampByte(-0.1687*r-0.3313*g+0.5*b+128) - 128
			cr[idx] = clampByte(0.5*r-0.4187*g-0.0813*b+128) - 128
		}
	}
	return
}
