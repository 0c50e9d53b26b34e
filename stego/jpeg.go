package stego

import "encoding/binary"

// AnalyzeResult summarises a JPEG bytestream's stego-relevant metadata
// without decoding any hidden payload, for callers that want to probe an
// image before committing to a password prompt.
type AnalyzeResult struct {
	Width, Height int
	MCUCols       int
	MCURows       int
	Attribution   string
	HasMessage    bool
	MessageLength int
	HasPassword   bool
	// UsedMCUs is ceil(8*MessageLength/bitsPerMCU), the number of Cb blocks
	// the embedder actually touched. TotalCapacity is every MCU's share of
	// bitsPerMCU bits, expressed in bytes (MCUCols*MCURows*2).
	UsedMCUs      int
	TotalCapacity int
}

// Encode converts an interleaved RGB raster of the given pixel dimensions
// into a baseline JPEG bytestream, hiding message in the Cb plane's
// quantised coefficients. If password is non-empty, it is stored
// (AES-encrypted, see aescrypt.go) alongside the image so Decode can
// refuse to extract the message without the matching password.
//
// w and h are each cropped down to the nearest multiple of 8 before any
// block is built, since the block grid only ever covers whole 8x8 cells;
// a raster that crops to zero in either dimension is rejected.
func Encode(rgb []byte, w, h int, message string, password string, quality int, cfg Config) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, newError(KindInvalidImage, "width and height must be positive")
	}
	if len(rgb) != w*h*3 {
		return nil, newError(KindInvalidImage, "rgb buffer does not match width*height*3")
	}

	rasterStride := w
	cropW := (w / blockSize) * blockSize
	cropH := (h / blockSize) * blockSize
	if cropW == 0 || cropH == 0 {
		return nil, newError(KindInvalidImage, "width and height must each be at least 8 pixels")
	}
	w, h = cropW, cropH

	payload := caesarEncrypt([]byte(message), cfg.CaesarKey)
	if len(payload) > Capacity(w, h) {
		return nil, newError(KindMessageTooLong, "message does not fit in this image's capacity")
	}

	bw := blocksForDimension(w)
	bh := blocksForDimension(h)
	quantTable := buildQuantTable(quality)

	yPlane := newPlane(bw, bh)
	cbPlane := newPlane(bw, bh)
	crPlane := newPlane(bw, bh)

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			yBlk, cbBlk, crBlk := rgbToYCbCrBlock(rgb, rasterStride, h, bx*blockSize, by*blockSize)
			*yPlane.at(bx, by) = quantize(fdct(yBlk), quantTable)
			*cbPlane.at(bx, by) = quantize(fdct(cbBlk), quantTable)
			*crPlane.at(bx, by) = quantize(fdct(crBlk), quantTable)
		}
	}

	if err := embedBits(cbPlane, payload); err != nil {
		return nil, err
	}

	out := newJpegWriter()
	out.marker(markerSOI)
	out.writeAPP0()

	out.writeCOM(comTypeAttribution, []byte(attributionText))

	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(payload)))
	out.writeCOM(comTypeMessageLen, lenBuf)

	if password != "" {
		encPassword, err := encryptPassword(password, cfg)
		if err != nil {
			return nil, err
		}
		out.writeCOM(comTypeAESPassword, []byte(encPassword))
	}

	out.writeDQT(0, quantTable)
	out.writeDQT(1, quantTable)
	out.writeSOF0(w, h)

	dhtAssignments := [4]struct{ class, id byte }{
		huffDCLuma:   {0, 0},
		huffACLuma:   {1, 0},
		huffDCChroma: {0, 1},
		huffACChroma: {1, 1},
	}
	for idx, spec := range standardHuffmanSpecs {
		a := dhtAssignments[idx]
		out.writeDHT(a.class, a.id, spec)
	}

	out.writeSOS()

	if err := encodeScan(out, yPlane, cbPlane, crPlane); err != nil {
		return nil, err
	}

	out.marker(markerEOI)
	return out.buf, nil
}

// encodeScan Huffman-encodes the three planes' blocks in MCU order (one
// Y, Cb and Cr block per MCU, since sampling is 1:1:1), DC-predicting
// against the previous block of the same component.
func encodeScan(out *jpegWriter, y, cb, cr *plane) error {
	encTables := standardEncodeTables()
	dcY, acY := encTables[huffDCLuma], encTables[huffACLuma]
	dcC, acC := encTables[huffDCChroma], encTables[huffACChroma]

	w := newBitWriter()
	var prevDC [numComponents]int32

	planes := [numComponents]*plane{y, cb, cr}
	dcTables := [numComponents]*huffmanEncodeTable{dcY, dcC, dcC}
	acTables := [numComponents]*huffmanEncodeTable{acY, acC, acC}

	for by := 0; by < y.blocksHigh; by++ {
		for bx := 0; bx < y.blocksWide; bx++ {
			for ci := 0; ci < numComponents; ci++ {
				blk := planes[ci].at(bx, by)
				diff := int32(blk[0]) - prevDC[ci]
				prevDC[ci] = int32(blk[0])

				if err := encodeDC(w, dcTables[ci], diff); err != nil {
					return err
				}
				if err := encodeAC(w, acTables[ci], *blk); err != nil {
					return err
				}
			}
		}
	}

	out.bytes(w.pad())
	return nil
}

// Decode parses jpegBytes, verifies the optional embedded password
// against the one supplied by the caller, and extracts and returns the
// hidden message.
func Decode(jpegBytes []byte, password string, cfg Config) (string, error) {
	h, err := parseJPEG(jpegBytes)
	if err != nil {
		return "", err
	}

	if err := checkPassword(h, password, cfg); err != nil {
		return "", err
	}

	if !h.hasMessageLen || h.messageLen == 0 {
		return "", newError(KindNoHiddenMessage, "image carries no hidden message")
	}

	cbPlane, err := decodeScan(jpegBytes, h)
	if err != nil {
		return "", err
	}

	encrypted := extractBits(cbPlane, h.messageLen*8)
	payload := caesarDecrypt(encrypted, cfg.CaesarKey)
	return string(payload), nil
}

func checkPassword(h *parsedHeader, password string, cfg Config) error {
	if !h.hasPassword {
		return nil
	}
	expected, err := decryptPassword(h.passwordB64, cfg)
	if err != nil {
		return err
	}
	if password != string(expected) {
		return newError(KindInvalidPassword, "password does not match")
	}
	return nil
}

// Analyze parses jpegBytes and reports its stego-relevant metadata
// without touching the entropy-coded scan or requiring a password.
func Analyze(jpegBytes []byte) (AnalyzeResult, error) {
	h, err := parseJPEG(jpegBytes)
	if err != nil {
		return AnalyzeResult{}, err
	}

	mcuCols := blocksForDimension(h.width)
	mcuRows := blocksForDimension(h.height)
	totalCapacity := embedCapacityBits(mcuCols*mcuRows) / 8

	usedMCUs := 0
	if h.hasMessageLen && h.messageLen > 0 {
		usedMCUs = (h.messageLen*8 + bitsPerMCU - 1) / bitsPerMCU
	}

	return AnalyzeResult{
		Width:         h.width,
		Height:        h.height,
		MCUCols:       mcuCols,
		MCURows:       mcuRows,
		Attribution:   h.attribution,
		HasMessage:    h.hasMessageLen && h.messageLen > 0,
		MessageLength: h.messageLen,
		HasPassword:   h.hasPassword,
		UsedMCUs:      usedMCUs,
		TotalCapacity: totalCapacity,
	}, nil
}

// FormatSegments returns a short human-readable summary of jpegBytes'
// header as a debugging aid: an SOI line, one line for each of the three
// stego COM segments that is present, a single fixed "DQT/SOF0/DHT/SOS ..."
// line, and an EOI line. APP0 and other segments are not listed, and no
// offsets or lengths are printed.
func FormatSegments(jpegBytes []byte) (string, error) {
	h, err := parseJPEG(jpegBytes)
	if err != nil {
		return "", err
	}

	out := "SOI\n"
	if h.attribution != "" {
		out += "COM attribution=" + h.attribution + "\n"
	}
	if h.hasMessageLen {
		out += "COM message-length\n"
	}
	if h.hasPassword {
		out += "COM password\n"
	}
	out += "DQT/SOF0/DHT/SOS ...\n"
	out += "EOI\n"
	return out, nil
}
