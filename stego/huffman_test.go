package stego

import "testing"

// TestHuffmanEncodeDecodeDCRoundTrip exercises the encode/decode symbol
// pair in isolation, across DC categories 0, 1, 3, 7 and 11 of a standard
// table, with both signs for each nonzero category.
func TestHuffmanEncodeDecodeDCRoundTrip(t *testing.T) {
	encTable := buildHuffmanEncodeTable(standardHuffmanSpecs[huffDCLuma])
	decTable := buildHuffmanDecodeTable(standardHuffmanSpecs[huffDCLuma].counts, standardHuffmanSpecs[huffDCLuma].values)

	diffs := []int32{0, 1, -1, 5, -5, 127, -127, 2047, -2047}

	w := newBitWriter()
	for _, d := range diffs {
		if err := encodeDC(w, encTable, d); err != nil {
			t.Fatalf("encodeDC(%d): %v", d, err)
		}
	}
	buf := w.pad()

	r := newBitReader(buf)
	for _, want := range diffs {
		size, err := decodeHuffmanSymbol(r, decTable)
		if err != nil {
			t.Fatalf("decodeHuffmanSymbol: %v", err)
		}
		got := int32(0)
		if size > 0 {
			bits, err := r.readBits(uint(size))
			if err != nil {
				t.Fatalf("readBits: %v", err)
			}
			got = decodeVLI(int32(bits), size)
		}
		if got != want {
			t.Errorf("DC round trip: got %d, want %d", got, want)
		}
	}
}

// TestHuffmanBlockRoundTrip runs full block-level encode/decode (DC + AC)
// across a handful of representative zigzag-ordered coefficient blocks,
// checking that encoding then decoding recovers every coefficient exactly.
func TestHuffmanBlockRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		blk  [blockPixels]int16
	}{
		{"all-zero-ac", [blockPixels]int16{100}},
		{"sparse", func() (b [blockPixels]int16) {
			b[0] = -42
			b[5] = 3
			b[20] = -7
			b[63] = 1
			return
		}()},
		{"dense-run", func() (b [blockPixels]int16) {
			b[0] = 10
			for i := 1; i < blockPixels; i++ {
				if i%3 == 0 {
					b[i] = int16(i - 30)
				}
			}
			return
		}()},
		{"long-zero-run", func() (b [blockPixels]int16) {
			b[0] = 5
			b[63] = 9 // forces a ZRL-worthy run of zeros before the last coeff
			return
		}()},
	}

	encDC := buildHuffmanEncodeTable(standardHuffmanSpecs[huffDCLuma])
	encAC := buildHuffmanEncodeTable(standardHuffmanSpecs[huffACLuma])
	decDC := buildHuffmanDecodeTable(standardHuffmanSpecs[huffDCLuma].counts, standardHuffmanSpecs[huffDCLuma].values)
	decAC := buildHuffmanDecodeTable(standardHuffmanSpecs[huffACLuma].counts, standardHuffmanSpecs[huffACLuma].values)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := newBitWriter()
			prevDC := int32(0)
			diff := int32(tc.blk[0]) - prevDC
			if err := encodeDC(w, encDC, diff); err != nil {
				t.Fatalf("encodeDC: %v", err)
			}
			if err := encodeAC(w, encAC, tc.blk); err != nil {
				t.Fatalf("encodeAC: %v", err)
			}
			buf := w.pad()

			r := newBitReader(buf)
			got, gotDiff, err := decodeBlock(r, decDC, decAC, prevDC)
			if err != nil {
				t.Fatalf("decodeBlock: %v", err)
			}
			if gotDiff != diff {
				t.Errorf("DC diff mismatch: got %d, want %d", gotDiff, diff)
			}
			if got != tc.blk {
				t.Errorf("block mismatch:\n got  %v\n want %v", got, tc.blk)
			}
		})
	}
}

// TestHuffmanEncodeTableSymbolCoverage checks that every symbol listed in a
// standard spec round-trips through the canonical size/code construction
// without collision.
func TestHuffmanEncodeTableSymbolCoverage(t *testing.T) {
	for idx, spec := range standardHuffmanSpecs {
		enc := buildHuffmanEncodeTable(spec)
		dec := buildHuffmanDecodeTable(spec.counts, spec.values)

		seen := map[uint32]bool{}
		for _, sym := range spec.values {
			size := enc.size[sym]
			code := enc.code[sym]
			if size == 0 {
				t.Errorf("table %d symbol %#x has zero size", idx, sym)
			}
			key := uint32(size)<<16 | uint32(code)
			if seen[key] {
				t.Errorf("table %d symbol %#x collides on code %d/%d", idx, sym, code, size)
			}
			seen[key] = true

			w := newBitWriter()
			if err := w.write(uint32(code), uint(size)); err != nil {
				t.Fatalf("write: %v", err)
			}
			buf := w.pad()
			r := newBitReader(buf)
			gotSym, err := decodeHuffmanSymbol(r, dec)
			if err != nil {
				t.Fatalf("decode symbol %#x: %v", sym, err)
			}
			if gotSym != sym {
				t.Errorf("table %d: decoded %#x, want %#x", idx, gotSym, sym)
			}
		}
	}
}
