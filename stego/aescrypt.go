package stego

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
)

// encryptPassword encrypts password with AES-128-CBC under the
// configured key/IV, PKCS#7-pads it, and returns the Base64 encoding
// that is stored verbatim in the type-2 COM segment.
//
// This is built directly on the standard library the way every Go
// project that needs plain AES-CBC does: crypto/cipher's CBC mode wraps
// a crypto/aes block cipher, with padding and encoding handled by hand
// since the standard library does not parcel PKCS#7 up for you.
func encryptPassword(password string, cfg Config) (string, error) {
	block, err := aes.NewCipher([]byte(cfg.AESKey))
	if err != nil {
		return "", wrapCrypto("aes key init failed", err)
	}

	padded := pkcs7Pad([]byte(password), block.BlockSize())
	ciphertext := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, []byte(cfg.AESIV))
	mode.CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decryptPassword reverses encryptPassword, returning the plaintext
// password bytes.
func decryptPassword(b64 string, cfg Config) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, wrapCrypto("stored password is not valid base64", err)
	}

	block, err := aes.NewCipher([]byte(cfg.AESKey))
	if err != nil {
		return nil, wrapCrypto("aes key init failed", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, wrapCrypto("stored password has invalid block length", nil)
	}

	plain := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, []byte(cfg.AESIV))
	mode.CryptBlocks(plain, ciphertext)

	return pkcs7Unpad(plain)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(append([]byte(nil), data...), padding...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, wrapCrypto("cannot unpad empty data", nil)
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, wrapCrypto("invalid pkcs7 padding", nil)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, wrapCrypto("invalid pkcs7 padding", nil)
		}
	}
	return data[:len(data)-padLen], nil
}
