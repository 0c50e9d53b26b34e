package stego

import "encoding/binary"

// scanComponentInfo is one component's table assignment as gathered from
// SOF0 (quantisation table) and SOS (Huffman tables).
type scanComponentInfo struct {
	id        byte
	qtableID  byte
	dcTableID byte
	acTableID byte
}

// parsedHeader is everything segment_reader extracts from a JPEG
// bytestream's markers, ahead of the entropy-coded scan itself: just
// enough to drive a 1:1:1 baseline decode plus the hidden-message
// metadata carried in the COM segments.
type parsedHeader struct {
	width, height int

	quantTables map[byte][blockPixels]int32
	huffDC      map[byte]*huffmanDecodeTable
	huffAC      map[byte]*huffmanDecodeTable

	restartInterval int

	attribution   string
	hasMessageLen bool
	messageLen    int
	hasPassword   bool
	passwordB64   string

	components []scanComponentInfo
	scanStart  int // byte offset of the entropy-coded data, just past the SOS header
}

// parseJPEG walks every marker segment in data and returns the
// accumulated header plus the offset where entropy-coded data begins.
// The dispatch loop never needs to handle progressive scans or component
// subsampling, since this codec writes neither.
func parseJPEG(data []byte) (*parsedHeader, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, newError(KindInvalidImage, "missing SOI marker")
	}

	h := &parsedHeader{
		quantTables: make(map[byte][blockPixels]int32),
		huffDC:      make(map[byte]*huffmanDecodeTable),
		huffAC:      make(map[byte]*huffmanDecodeTable),
	}

	pos := 2

	for pos < len(data) {
		if data[pos] != 0xFF {
			return nil, newError(KindMalformedStream, "expected marker byte")
		}
		for pos+2 < len(data) && data[pos+1] == 0xFF {
			pos++ // fill byte ahead of the marker code
		}
		marker := data[pos+1]
		pos += 2

		if marker == markerSOI || marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			continue // no length field
		}
		if marker == markerEOI {
			break
		}

		if pos+2 > len(data) {
			return nil, newError(KindMalformedStream, "truncated segment length")
		}
		length := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		if length < 2 {
			return nil, newError(KindInvalidImage, "segment length out of range")
		}
		if pos+length > len(data) {
			return nil, newError(KindMalformedStream, "truncated segment")
		}
		body := data[pos+2 : pos+length]

		switch marker {
		case markerCOM:
			if err := parseCOM(h, body); err != nil {
				return nil, err
			}
		case markerDQT:
			if err := parseDQT(h, body); err != nil {
				return nil, err
			}
		case markerSOF0, markerSOF1:
			if err := parseSOF0(h, body); err != nil {
				return nil, err
			}
		case markerSOF2:
			return nil, newError(KindInvalidImage, "progressive (SOF2) frames are not supported")
		case markerDHT:
			if err := parseDHT(h, body); err != nil {
				return nil, err
			}
		case markerDRI:
			if len(body) < 2 {
				return nil, newError(KindMalformedStream, "truncated DRI segment")
			}
			h.restartInterval = int(binary.BigEndian.Uint16(body))
		case markerSOS:
			if err := parseSOS(h, body); err != nil {
				return nil, err
			}
			h.scanStart = pos + length
			return h, nil
		default:
			// Unknown/unused marker (e.g. APP0): parse-and-preserve only.
		}

		pos += length
	}

	return nil, newError(KindInvalidImage, "reached end of file before SOS")
}

func parseCOM(h *parsedHeader, body []byte) error {
	if len(body) < 1 {
		return newError(KindMalformedStream, "empty comment segment")
	}
	switch comType(body[0]) {
	case comTypeAttribution:
		h.attribution = string(body[1:])
	case comTypeMessageLen:
		if len(body) < 5 {
			return newError(KindMalformedStream, "truncated message-length comment")
		}
		h.hasMessageLen = true
		h.messageLen = int(binary.BigEndian.Uint32(body[1:5]))
	case comTypeAESPassword:
		h.hasPassword = true
		h.passwordB64 = string(body[1:])
	}
	return nil
}

func parseDQT(h *parsedHeader, body []byte) error {
	for len(body) > 0 {
		pq := body[0] >> 4
		tq := body[0] & 0x0F
		if pq != 0 {
			return newError(KindInvalidImage, "only 8-bit quantisation table precision is supported")
		}
		body = body[1:]
		var table [blockPixels]int32
		if len(body) < blockPixels {
			return newError(KindMalformedStream, "truncated 8-bit DQT table")
		}
		for i := 0; i < blockPixels; i++ {
			table[i] = int32(body[i])
		}
		body = body[blockPixels:]
		h.quantTables[tq] = table
	}
	return nil
}

func parseSOF0(h *parsedHeader, body []byte) error {
	if len(body) < 6 {
		return newError(KindMalformedStream, "truncated SOF0 segment")
	}
	if body[0] != 8 {
		return newError(KindInvalidImage, "only 8-bit sample precision is supported")
	}
	h.height = int(binary.BigEndian.Uint16(body[1:3]))
	h.width = int(binary.BigEndian.Uint16(body[3:5]))
	numComps := int(body[5])
	if numComps != numComponents {
		return newError(KindInvalidImage, "only 3-component images are supported")
	}
	body = body[6:]
	if len(body) < numComps*3 {
		return newError(KindMalformedStream, "truncated SOF0 component list")
	}
	h.components = make([]scanComponentInfo, numComps)
	for i := 0; i < numComps; i++ {
		id := body[i*3]
		sampling := body[i*3+1]
		qtable := body[i*3+2]
		if sampling != 0x11 {
			return newError(KindInvalidImage, "chroma subsampling is not supported")
		}
		h.components[i] = scanComponentInfo{id: id, qtableID: qtable}
	}
	return nil
}

func parseDHT(h *parsedHeader, body []byte) error {
	for len(body) > 0 {
		if len(body) < 17 {
			return newError(KindMalformedStream, "truncated DHT segment")
		}
		class := body[0] >> 4
		id := body[0] & 0x0F
		var counts [16]byte
		copy(counts[:], body[1:17])
		total := 0
		for _, c := range counts {
			total += int(c)
		}
		body = body[17:]
		if len(body) < total {
			return newError(KindMalformedStream, "truncated DHT symbol list")
		}
		symbols := append([]byte(nil), body[:total]...)
		body = body[total:]

		table := buildHuffmanDecodeTable(counts, symbols)
		if class == 0 {
			h.huffDC[id] = table
		} else {
			h.huffAC[id] = table
		}
	}
	return nil
}

func parseSOS(h *parsedHeader, body []byte) error {
	if len(body) < 1 {
		return newError(KindMalformedStream, "empty SOS segment")
	}
	numComps := int(body[0])
	if numComps != len(h.components) {
		return newError(KindInvalidImage, "SOS component count does not match SOF0")
	}
	body = body[1:]
	if len(body) < numComps*2 {
		return newError(KindMalformedStream, "truncated SOS component list")
	}
	for i := 0; i < numComps; i++ {
		id := body[i*2]
		tables := body[i*2+1]
		for ci := range h.components {
			if h.components[ci].id == id {
				h.components[ci].dcTableID = tables >> 4
				h.components[ci].acTableID = tables & 0x0F
			}
		}
	}
	body = body[numComps*2:]
	if len(body) < 3 {
		return newError(KindMalformedStream, "truncated SOS spectral-selection bytes")
	}
	ss, se, ahal := body[0], body[1], body[2]
	if ss != 0 || se != 63 || ahal != 0 {
		return newError(KindInvalidImage, "only a full single-scan spectral selection (Ss=0, Se=63, Ah=Al=0) is supported")
	}
	return nil
}

// decodeScan Huffman-decodes the entropy-coded region following a parsed
// header, reconstructing every component's quantised coefficients in MCU
// order (Y, Cb, Cr per block, since sampling is 1:1:1) but keeping only
// the Cb plane — the decoder never reconstructs pixels (see the "decoder
// asymmetry" design note), it only needs the coefficients the embedder
// touched.
func decodeScan(data []byte, h *parsedHeader) (*plane, error) {
	bw := blocksForDimension(h.width)
	bh := blocksForDimension(h.height)
	cb := newPlane(bw, bh)

	r := newBitReader(data[h.scanStart:])
	prevDC := make([]int32, len(h.components))

	restartCount := 0
	blocksPerRestart := h.restartInterval

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			for ci, comp := range h.components {
				dcTable, ok := h.huffDC[comp.dcTableID]
				if !ok {
					return nil, newError(KindMalformedStream, "missing DC huffman table for component")
				}
				acTable, ok := h.huffAC[comp.acTableID]
				if !ok {
					return nil, newError(KindMalformedStream, "missing AC huffman table for component")
				}

				coeffs, diff, err := decodeBlock(r, dcTable, acTable, prevDC[ci])
				if err != nil {
					return nil, err
				}
				prevDC[ci] += diff

				if ci == cbQuantIndex {
					*cb.at(bx, by) = coeffs
				}
			}

			if blocksPerRestart > 0 {
				restartCount++
				if restartCount == blocksPerRestart && !(by == bh-1 && bx == bw-1) {
					restartCount = 0
					for i := range prevDC {
						prevDC[i] = 0
					}
					r.align()
					if _, ok := r.atMarker(); ok {
						r.pos += 2 // skip the 0xFF RSTn marker pair
						r.bits, r.bitsLeft, r.sawMarker = 0, 0, false
					}
				}
			}
		}
	}

	return cb, nil
}

// decodeBlock decodes one block's DC difference and AC run, returning the
// full zigzag-ordered coefficient block and the raw DC difference (the
// caller tracks the running DC predictor per component).
func decodeBlock(r *bitReader, dcTable, acTable *huffmanDecodeTable, prevDC int32) (block, int32, error) {
	var blk block

	size, err := decodeHuffmanSymbol(r, dcTable)
	if err != nil {
		return blk, 0, err
	}
	diff := int32(0)
	if size > 0 {
		bits, err := r.readBits(uint(size))
		if err != nil {
			return blk, 0, err
		}
		diff = decodeVLI(int32(bits), size)
	}
	blk[0] = int16(prevDC + diff)

	i := 1
	for i < blockPixels {
		rs, err := decodeHuffmanSymbol(r, acTable)
		if err != nil {
			return blk, 0, err
		}
		run := int(rs >> 4)
		sz := rs & 0x0F

		if sz == 0 {
			if run == 15 {
				i += 16 // ZRL
				continue
			}
			break // EOB
		}

		i += run
		if i >= blockPixels {
			return blk, 0, newError(KindMalformedStream, "AC run exceeds block size")
		}
		bits, err := r.readBits(uint(sz))
		if err != nil {
			return blk, 0, err
		}
		blk[i] = int16(decodeVLI(int32(bits), sz))
		i++
	}

	return blk, diff, nil
}

// decodeVLI reverses writeVLI's variable-length-integer encoding.
func decodeVLI(bits int32, size byte) int32 {
	half := int32(1) << (size - 1)
	if bits < half {
		full := (int32(1) << size) - 1
		return bits - full
	}
	return bits
}
