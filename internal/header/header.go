package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	// Size is the serialized header length in bytes.
	Size = 41
	// Bits is the number of sample LSBs the header occupies.
	Bits = Size * 8

	Version = 1

	SaltLen  = 16
	NonceLen = 12
)

// Magic identifies a carrier as holding an ouroboros-stego payload.
var Magic = [4]byte{'O', 'S', 'T', 'G'}

var (
	ErrTruncated          = errors.New("header shorter than 41 bytes")
	ErrBadMagic           = errors.New("bad magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported header version")
)

// Header is the fixed-layout record embedded at the start of the carrier:
// magic (4), version (1), salt (16), nonce (12), ciphertext length (4, BE),
// CRC-32 of the ciphertext+tag region (4, BE).
type Header struct {
	Version       uint8
	Salt          [SaltLen]byte
	Nonce         [NonceLen]byte
	CiphertextLen uint32
	CRC32         uint32
}

// Serialize encodes h into its fixed 41-byte wire form.
func (h Header) Serialize() []byte {
	buf := make([]byte, 0, Size)
	buf = append(buf, Magic[:]...)
	buf = append(buf, h.Version)
	buf = append(buf, h.Salt[:]...)
	buf = append(buf, h.Nonce[:]...)
	buf = binary.BigEndian.AppendUint32(buf, h.CiphertextLen)
	buf = binary.BigEndian.AppendUint32(buf, h.CRC32)
	return buf
}

// Parse decodes a 41-byte header. Magic and version are validated before any
// other field is trusted; the caller still has to check CiphertextLen against
// the carrier's capacity.
func Parse(data []byte) (Header, error) {
	if len(data) < Size {
		return Header{}, fmt.Errorf("%w: got %d bytes", ErrTruncated, len(data))
	}

	if !bytes.Equal(data[:4], Magic[:]) {
		return Header{}, ErrBadMagic
	}

	h := Header{Version: data[4]}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	copy(h.Salt[:], data[5:21])
	copy(h.Nonce[:], data[21:33])
	h.CiphertextLen = binary.BigEndian.Uint32(data[33:37])
	h.CRC32 = binary.BigEndian.Uint32(data[37:41])

	return h, nil
}

// Checksum computes the CRC-32 (IEEE polynomial) of the ciphertext+tag
// region. It catches accidental corruption on the extraction path; tamper
// detection is the cipher tag's job.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
