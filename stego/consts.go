// Package stego implements a baseline JPEG codec with DCT-domain
// steganographic embedding: it encodes an RGB raster into a
// standards-conformant baseline JPEG while hiding a byte payload in the
// least-significant bits of quantised Cb coefficients, and reverses the
// process by parsing the same bytestream back out.
package stego

// JPEG marker codes (second byte of the 0xFF-prefixed marker pair).
const (
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerDQT  = 0xDB
	markerDHT  = 0xC4
	markerDRI  = 0xDD
	markerAPP0 = 0xE0
	markerSOF0 = 0xC0
	markerSOF1 = 0xC1
	markerSOF2 = 0xC2
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerCOM  = 0xFE
)

// blockSize is the side length of a DCT block; blockPixels the count of
// samples in a block.
const (
	blockSize   = 8
	blockPixels = blockSize * blockSize
)

// numComponents is the fixed component count: Y, Cb, Cr, each sampled 1:1:1.
const numComponents = 3

// Component indices in frame order (Y, Cb, Cr).
const (
	compY  = 0
	compCb = 1
	compCr = 2
)

// cbQuantIndex is the index of the Cb plane's coefficient array where
// embedding happens, matching compCb above; the scan decoder uses it to
// pick the Cb blocks out of the interleaved Y/Cb/Cr scan.
const cbQuantIndex = compCb

// bitsPerMCU is the number of payload bits carried by one embedded MCU.
const bitsPerMCU = 16

// comType identifies the three comment-segment subtypes used to carry
// stego metadata ahead of SOF0.
type comType byte

const (
	comTypeAttribution  comType = 0
	comTypeMessageLen   comType = 1
	comTypeAESPassword  comType = 2
)

// attributionText is the fixed COM type-0 payload; it is informational
// only and is ignored on decode.
const attributionText = "jpegstego"

// embedStart and embedEnd bound the 16 zigzag positions (25..40 inclusive)
// that the four embedding patterns permute.
const (
	embedStart = 25
	embedEnd   = 40
)

// embedPatterns are the four fixed permutations of zigzag positions
// 25..40 that the embedder cycles through, one per MCU.
var embedPatterns = [4][16]int{
	{25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40},
	{40, 39, 38, 37, 36, 35, 34, 33, 32, 31, 30, 29, 28, 27, 26, 25},
	{28, 27, 26, 25, 29, 30, 31, 32, 33, 34, 35, 36, 40, 39, 38, 37},
	{25, 26, 27, 28, 36, 35, 34, 33, 32, 31, 30, 29, 37, 38, 39, 40},
}
