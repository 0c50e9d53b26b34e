package stego

import "encoding/binary"

// jpegWriter assembles a baseline JPEG bytestream segment by segment: a
// growable byte buffer with small helpers for markers, length-prefixed
// segments and the entropy-coded scan.
type jpegWriter struct {
	buf []byte
}

func newJpegWriter() *jpegWriter {
	return &jpegWriter{buf: make([]byte, 0, 65536)}
}

func (w *jpegWriter) marker(m byte) {
	w.buf = append(w.buf, 0xFF, m)
}

func (w *jpegWriter) beginSegment(m byte) int {
	w.marker(m)
	w.buf = append(w.buf, 0, 0) // placeholder length
	return len(w.buf)
}

// endSegment backfills the 2-byte big-endian length (inclusive of the
// length field itself) for the segment started at bodyStart.
func (w *jpegWriter) endSegment(bodyStart int) {
	length := len(w.buf) - bodyStart + 2
	binary.BigEndian.PutUint16(w.buf[bodyStart-2:bodyStart], uint16(length))
}

func (w *jpegWriter) byte(b byte)        { w.buf = append(w.buf, b) }
func (w *jpegWriter) bytes(b []byte)     { w.buf = append(w.buf, b...) }
func (w *jpegWriter) uint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

// writeCOM writes a one-byte-subtype comment segment: byte 0 is the
// comType, the remainder is the payload.
func (w *jpegWriter) writeCOM(typ comType, payload []byte) {
	start := w.beginSegment(markerCOM)
	w.byte(byte(typ))
	w.bytes(payload)
	w.endSegment(start)
}

// writeDQT writes one 8-bit-precision quantisation table segment carrying
// a single table at the given destination id, in zigzag order per the
// JPEG standard.
func (w *jpegWriter) writeDQT(tableID byte, zigzagTable [blockPixels]int32) {
	start := w.beginSegment(markerDQT)
	w.byte(tableID) // precision nibble 0 (8-bit) | id
	for _, v := range zigzagTable {
		w.byte(byte(v))
	}
	w.endSegment(start)
}

// writeSOF0 writes the baseline frame header for a 3-component, 1:1:1
// sampled image using quantisation tables 0 (luma) and 1 (chroma).
func (w *jpegWriter) writeSOF0(width, height int) {
	start := w.beginSegment(markerSOF0)
	w.byte(8) // sample precision
	w.uint16(uint16(height))
	w.uint16(uint16(width))
	w.byte(numComponents)
	comps := []struct {
		id, qtable byte
	}{
		{1, 0}, // Y
		{2, 1}, // Cb
		{3, 1}, // Cr
	}
	for _, c := range comps {
		w.byte(c.id)
		w.byte(0x11) // 1:1 sampling both axes
		w.byte(c.qtable)
	}
	w.endSegment(start)
}

// writeDHT writes one Huffman table segment. class is 0 for DC, 1 for AC.
func (w *jpegWriter) writeDHT(class, id byte, spec huffmanSpec) {
	start := w.beginSegment(markerDHT)
	w.byte(class<<4 | id)
	w.bytes(spec.counts[:])
	w.bytes(spec.values)
	w.endSegment(start)
}

// writeSOS writes the scan header for all three components, using DC/AC
// table indices 0 for luma and 1 for chroma, and returns control to the
// caller to append the entropy-coded bitstream.
func (w *jpegWriter) writeSOS() {
	start := w.beginSegment(markerSOS)
	w.byte(numComponents)
	comps := []struct{ id, tables byte }{
		{1, 0x00}, // Y: DC0 AC0
		{2, 0x11}, // Cb: DC1 AC1
		{3, 0x11}, // Cr: DC1 AC1
	}
	for _, c := range comps {
		w.byte(c.id)
		w.byte(c.tables)
	}
	w.byte(0)   // Ss
	w.byte(63)  // Se
	w.byte(0x00) // Ah/Al
	w.endSegment(start)
}

// writeAPP0 writes a minimal JFIF application segment so general-purpose
// image viewers recognise the file, independent of this package's own
// stego metadata (which travels in the COM segments instead).
func (w *jpegWriter) writeAPP0() {
	start := w.beginSegment(markerAPP0)
	w.bytes([]byte("JFIF\x00"))
	w.byte(1) // major version
	w.byte(1) // minor version
	w.byte(0) // aspect ratio units: none
	w.uint16(1)
	w.uint16(1)
	w.byte(0) // no thumbnail
	w.byte(0)
	w.endSegment(start)
}

func (w *jpegWriter) writeDRI(restartInterval uint16) {
	start := w.beginSegment(markerDRI)
	w.uint16(restartInterval)
	w.endSegment(start)
}
