package stego

import "testing"

func TestQuantScaleBounds(t *testing.T) {
	testCases := []struct {
		quality int
		want    int32
	}{
		{1, 5000},
		{50, 100},
		{51, 98},
		{100, 0},
	}
	for _, tc := range testCases {
		if got := quantScale(tc.quality); got != tc.want {
			t.Errorf("quantScale(%d) = %d, want %d", tc.quality, got, tc.want)
		}
	}
}

// TestBuildQuantTableQuality100 checks the boundary case where the scale
// factor drops to zero: every scaled entry clamps to 1.
func TestBuildQuantTableQuality100(t *testing.T) {
	table := buildQuantTable(100)
	for i, v := range table {
		if v != 1 {
			t.Errorf("quant table entry %d at quality 100 = %d, want 1", i, v)
		}
	}
}

func TestBuildQuantTableInRange(t *testing.T) {
	for _, q := range []int{1, 10, 50, 80, 100} {
		table := buildQuantTable(q)
		for i, v := range table {
			if v < 1 || v > 255 {
				t.Errorf("quality %d entry %d = %d, out of [1,255]", q, i, v)
			}
		}
	}
}

// TestQuantizeDequantizeRecoversMultiple checks that quantize/dequantize
// recovers the coefficient rounded to the nearest multiple of the
// quantisation value, not the exact original (lossy by construction).
func TestQuantizeDequantizeRecoversMultiple(t *testing.T) {
	qtable := buildQuantTable(50)
	var coeffs [blockPixels]int16
	for i := range coeffs {
		coeffs[i] = int16(i*7 - 100)
	}

	q := quantize(coeffs, qtable)
	deq := dequantize(q, qtable)

	var raster [blockPixels]int32
	for i, c := range coeffs {
		raster[i] = int32(c)
	}
	zz := zigzag(raster)

	for i := range deq {
		diff := zz[i] - deq[i]
		if diff < -int32(qtable[i]) || diff > int32(qtable[i]) {
			t.Fatalf("zigzag index %d: dequantized %d too far from original %d (q=%d)", i, deq[i], zz[i], qtable[i])
		}
	}
}
