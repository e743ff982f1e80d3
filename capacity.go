package ouroborosstego

import (
	"github.com/i5heu/ouroboros-stego/internal/crypt"
	"github.com/i5heu/ouroboros-stego/internal/header"
)

// One payload bit per sample, carried in its LSB.
func capacityBits(sampleCount int) int {
	return sampleCount
}

// MaxPayloadBytes returns the largest ciphertext+tag byte count a carrier of
// sampleCount samples can hold after the fixed header region.
func MaxPayloadBytes(sampleCount int) int {
	bits := capacityBits(sampleCount) - header.Bits
	if bits < 0 {
		return 0
	}
	return bits / 8
}

// MaxMessageBytes returns the largest plaintext message that fits, accounting
// for the cipher tag and the envelope flag byte inside the ciphertext.
func MaxMessageBytes(sampleCount int) int {
	payload := MaxPayloadBytes(sampleCount) - crypt.TagLen - envelopeOverhead
	if payload < 0 {
		return 0
	}
	return payload
}

// validateCapacity checks that header plus payload fit the carrier. It runs
// before any sample is touched, so a failing encode leaves the input intact.
func validateCapacity(payloadLen, sampleCount int) error {
	required := header.Bits + payloadLen*8
	available := capacityBits(sampleCount)
	if required > available {
		return &CapacityError{RequiredBits: required, AvailableBits: available}
	}
	return nil
}
