package stego

import "testing"

// TestExampleRoundTrip walks the full Encode -> Analyze -> Decode pipeline
// end to end, narrating progress with t.Logf rather than a logging
// library.
func TestExampleRoundTrip(t *testing.T) {
	const w, h = 64, 64
	rgb := testRaster(w, h)
	cfg := NewConfig()

	t.Logf("encoding a %dx%d cover image, capacity %d bytes", w, h, Capacity(w, h))
	jpegBytes, err := Encode(rgb, w, h, "a message worth hiding", "swordfish", 85, cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	t.Logf("produced %d bytes of stego JPEG", len(jpegBytes))

	info, err := Analyze(jpegBytes)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	t.Logf("analyze: %dx%d, %d-byte message across %d MCUs of %d total capacity",
		info.Width, info.Height, info.MessageLength, info.UsedMCUs, info.TotalCapacity)

	message, err := Decode(jpegBytes, "swordfish", cfg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	t.Logf("decoded message: %q", message)

	if message != "a message worth hiding" {
		t.Fatalf("got %q", message)
	}
}
