package ouroborosstego

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/i5heu/ouroboros-stego/internal/crypt"
	"github.com/i5heu/ouroboros-stego/internal/header"
	"github.com/i5heu/ouroboros-stego/internal/scatter"
)

// Decode recovers a message previously embedded with Encode. The sample
// buffer is only read. Failure modes: ErrFormat when no payload is
// recognizable, ErrIntegrity on extraction-path corruption, and
// ErrAuthentication on a wrong passphrase or tampered data.
func (s *Stego) Decode(samples []int16, passphrase string) ([]byte, error) {
	atomic.AddUint64(&s.decodeCounter, 1)

	hdr, err := readHeader(samples)
	if err != nil {
		return nil, err
	}

	if err := validateCapacity(int(hdr.CiphertextLen), len(samples)); err != nil {
		// A length the carrier cannot hold means garbage, not a real payload.
		return nil, fmt.Errorf("%w: ciphertext length %d exceeds carrier", ErrFormat, hdr.CiphertextLen)
	}

	perm, err := scatter.Permutation(hdr.Salt[:], len(samples)-header.Bits, int(hdr.CiphertextLen)*8)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	bits := make([]byte, int(hdr.CiphertextLen)*8)
	for i, idx := range perm {
		bits[i] = byte(samples[header.Bits+idx] & 1)
	}
	ciphertext := scatter.BitsToBytes(bits)

	if header.Checksum(ciphertext) != hdr.CRC32 {
		return nil, ErrIntegrity
	}

	key := crypt.DeriveKey(passphrase, hdr.Salt[:], s.config.KDFIterations)
	defer crypt.Zero(key)

	envelope, err := crypt.Decrypt(key, hdr.Nonce[:], ciphertext)
	if err != nil {
		if errors.Is(err, crypt.ErrAuthentication) {
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("failed to decrypt payload: %w", err)
	}

	message, err := openEnvelope(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	log.Debugf("extracted %d message bytes from %d samples", len(message), len(samples))
	return message, nil
}

// HasPayloadHeader reports whether the fixed header region of samples parses
// as a version-1 payload header that fits the carrier. It needs no
// passphrase; diagnostic tooling uses it to sniff for embedded payloads.
func HasPayloadHeader(samples []int16) bool {
	hdr, err := readHeader(samples)
	if err != nil {
		return false
	}
	return validateCapacity(int(hdr.CiphertextLen), len(samples)) == nil
}

// EmbeddedPayloadBytes returns the ciphertext+tag byte count recorded in the
// carrier's header. It needs no passphrase.
func EmbeddedPayloadBytes(samples []int16) (int, error) {
	hdr, err := readHeader(samples)
	if err != nil {
		return 0, err
	}
	return int(hdr.CiphertextLen), nil
}

// readHeader extracts and parses the fixed-position header region.
func readHeader(samples []int16) (header.Header, error) {
	if len(samples) < header.Bits {
		return header.Header{}, fmt.Errorf("%w: carrier shorter than header region", ErrFormat)
	}

	bits := make([]byte, header.Bits)
	for i := range bits {
		bits[i] = byte(samples[i] & 1)
	}

	hdr, err := header.Parse(scatter.BitsToBytes(bits))
	if err != nil {
		return header.Header{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return hdr, nil
}
