package stego

import "bytes"
import "testing"

// TestCaesarLengthPreservation and TestCaesarRoundTrip cover the
// length-preservation and invertibility properties the shift must hold.
func TestCaesarLengthPreservation(t *testing.T) {
	testCases := []string{"", "a", "hello world", "Hello World 123! @#$%", string(make([]byte, 300))}
	for _, s := range testCases {
		for _, key := range []byte{0, 2, 255} {
			enc := caesarEncrypt([]byte(s), key)
			if len(enc) != len([]byte(s)) {
				t.Fatalf("key=%d: encrypted length %d != original length %d", key, len(enc), len(s))
			}
		}
	}
}

func TestCaesarRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		s    string
		key  byte
	}{
		{"empty", "", 2},
		{"ascii", "hello world", 2},
		{"default-key", "secret message", defaultCaesarKey},
		{"key-zero", "same shift every byte", 0},
		{"key-max", "wraps around 256", 255},
		{"long", string(bytes.Repeat([]byte{'x'}, 500)), 17},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			enc := caesarEncrypt([]byte(tc.s), tc.key)
			dec := caesarDecrypt(enc, tc.key)
			if !bytes.Equal(dec, []byte(tc.s)) {
				t.Fatalf("round trip failed: got %q, want %q", dec, tc.s)
			}
		})
	}
}

// TestCaesarIsPositionDependent checks that two equal bytes at different
// positions in the payload encrypt to different ciphertext bytes (unless
// the shift happens to wrap to the same value), distinguishing this from a
// plain fixed-shift Caesar cipher.
func TestCaesarIsPositionDependent(t *testing.T) {
	payload := bytes.Repeat([]byte{0x41}, 10)
	enc := caesarEncrypt(payload, 2)
	allSame := true
	for i := 1; i < len(enc); i++ {
		if enc[i] != enc[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Fatalf("expected position-dependent shift to vary ciphertext across identical input bytes, got %v", enc)
	}
}
