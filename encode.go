package ouroborosstego

import (
	"fmt"
	"sync/atomic"

	"github.com/i5heu/ouroboros-stego/internal/crypt"
	"github.com/i5heu/ouroboros-stego/internal/header"
	"github.com/i5heu/ouroboros-stego/internal/scatter"
)

// Encode hides message inside the LSBs of samples, protected by passphrase,
// and returns the modified buffer. The input slice is never mutated; on any
// error the caller's audio is byte-for-byte unchanged.
func (s *Stego) Encode(message []byte, passphrase string, samples []int16) ([]int16, error) {
	atomic.AddUint64(&s.encodeCounter, 1)

	salt, err := crypt.NewSalt()
	if err != nil {
		return nil, err
	}
	nonce, err := crypt.NewNonce()
	if err != nil {
		return nil, err
	}

	key := crypt.DeriveKey(passphrase, salt, s.config.KDFIterations)
	defer crypt.Zero(key)

	envelope, err := s.sealEnvelope(message)
	if err != nil {
		return nil, err
	}

	ciphertext, err := crypt.Encrypt(key, nonce, envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}

	hdr := header.Header{
		Version:       header.Version,
		CiphertextLen: uint32(len(ciphertext)),
		CRC32:         header.Checksum(ciphertext),
	}
	copy(hdr.Salt[:], salt)
	copy(hdr.Nonce[:], nonce)

	if err := validateCapacity(len(ciphertext), len(samples)); err != nil {
		return nil, err
	}

	perm, err := scatter.Permutation(salt, len(samples)-header.Bits, len(ciphertext)*8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scatter pattern: %w", err)
	}

	out := make([]int16, len(samples))
	copy(out, samples)

	// Header bits go to the fixed region in natural order; decode has to
	// read them before it knows the salt.
	for i, bit := range scatter.BytesToBits(hdr.Serialize()) {
		out[i] = setLSB(out[i], bit)
	}

	for i, bit := range scatter.BytesToBits(ciphertext) {
		out[header.Bits+perm[i]] = setLSB(out[header.Bits+perm[i]], bit)
	}

	log.Debugf("embedded %d payload bytes into %d samples", len(ciphertext), len(samples))
	return out, nil
}

func setLSB(sample int16, bit byte) int16 {
	if bit != 0 {
		return sample | 1
	}
	return sample &^ 1
}
