package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func sampleHeader() Header {
	h := Header{
		Version:       Version,
		CiphertextLen: 0x01020304,
		CRC32:         0xDEADBEEF,
	}
	for i := range h.Salt {
		h.Salt[i] = byte(i + 1)
	}
	for i := range h.Nonce {
		h.Nonce[i] = byte(0xA0 + i)
	}
	return h
}

func TestSerializeLayout(t *testing.T) {
	h := sampleHeader()
	buf := h.Serialize()

	if len(buf) != Size {
		t.Fatalf("expected %d bytes, got %d", Size, len(buf))
	}
	if !bytes.Equal(buf[:4], Magic[:]) {
		t.Errorf("magic mismatch: %x", buf[:4])
	}
	if buf[4] != Version {
		t.Errorf("version byte: expected %d, got %d", Version, buf[4])
	}
	if !bytes.Equal(buf[5:21], h.Salt[:]) {
		t.Errorf("salt region mismatch")
	}
	if !bytes.Equal(buf[21:33], h.Nonce[:]) {
		t.Errorf("nonce region mismatch")
	}
	if got := binary.BigEndian.Uint32(buf[33:37]); got != h.CiphertextLen {
		t.Errorf("ciphertext length: expected %#x, got %#x", h.CiphertextLen, got)
	}
	if got := binary.BigEndian.Uint32(buf[37:41]); got != h.CRC32 {
		t.Errorf("crc32: expected %#x, got %#x", h.CRC32, got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	h := sampleHeader()

	parsed, err := Parse(h.Serialize())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed != h {
		t.Errorf("round trip mismatch: expected %+v, got %+v", h, parsed)
	}
}

func TestParseTruncated(t *testing.T) {
	buf := sampleHeader().Serialize()

	_, err := Parse(buf[:Size-1])
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestParseBadMagic(t *testing.T) {
	buf := sampleHeader().Serialize()
	buf[0] ^= 0xFF

	_, err := Parse(buf)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	buf := sampleHeader().Serialize()
	buf[4] = 99

	_, err := Parse(buf)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestChecksumMatchesKnownVector(t *testing.T) {
	// IEEE CRC-32 of "123456789" is the standard check value.
	if got := Checksum([]byte("123456789")); got != 0xCBF43926 {
		t.Errorf("expected 0xCBF43926, got %#x", got)
	}
}

func TestChecksumDetectsBitFlip(t *testing.T) {
	data := []byte("the ciphertext and tag region")
	orig := Checksum(data)

	data[7] ^= 0x01
	if Checksum(data) == orig {
		t.Error("checksum unchanged after bit flip")
	}
}
