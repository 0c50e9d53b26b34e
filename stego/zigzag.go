package stego

// rasterToZigzag maps a raster-order index (row*8+col) to its position in
// the zigzag linear order. This is the standard JPEG diagonal traversal.
var rasterToZigzag = [blockPixels]int{
	0, 1, 5, 6, 14, 15, 27, 28, 2, 4, 7, 13, 16, 26, 29, 42,
	3, 8, 12, 17, 25, 30, 41, 43, 9, 11, 18, 24, 31, 40, 44, 53,
	10, 19, 23, 32, 39, 45, 52, 54, 20, 22, 33, 38, 46, 51, 55, 60,
	21, 34, 37, 47, 50, 56, 59, 61, 35, 36, 48, 49, 57, 58, 62, 63,
}

// zigzagToRaster is the inverse permutation, built once at init.
var zigzagToRaster [blockPixels]int

func init() {
	for raster, zig := range rasterToZigzag {
		zigzagToRaster[zig] = raster
	}
}

// zigzag reorders an 8x8 matrix given in raster order into the 64-element
// zigzag linear order.
func zigzag(m [blockPixels]int32) [blockPixels]int32 {
	var a [blockPixels]int32
	for raster, v := range m {
		a[rasterToZigzag[raster]] = v
	}
	return a
}

// invZigzag reorders a 64-element zigzag-ordered array back into an 8x8
// raster-order matrix.
func invZigzag(a [blockPixels]int32) [blockPixels]int32 {
	var m [blockPixels]int32
	for zig, v := range a {
		m[zigzagToRaster[zig]] = v
	}
	return m
}
