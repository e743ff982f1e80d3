package ouroborosstego

import (
	"errors"
	"testing"

	"github.com/i5heu/ouroboros-stego/internal/crypt"
	"github.com/i5heu/ouroboros-stego/internal/header"
)

func TestMaxPayloadBytes(t *testing.T) {
	tests := []struct {
		name        string
		sampleCount int
		expected    int
	}{
		{"empty buffer", 0, 0},
		{"smaller than header region", header.Bits - 1, 0},
		{"exactly header region", header.Bits, 0},
		{"header plus one byte", header.Bits + 8, 1},
		{"header plus seven bits", header.Bits + 7, 0},
		{"hundred thousand samples", 100_000, (100_000 - header.Bits) / 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxPayloadBytes(tt.sampleCount); got != tt.expected {
				t.Errorf("MaxPayloadBytes(%d): expected %d, got %d", tt.sampleCount, tt.expected, got)
			}
		})
	}
}

func TestMaxMessageBytes(t *testing.T) {
	// Message capacity is payload capacity minus tag and envelope flag.
	if got := MaxMessageBytes(100_000); got != MaxPayloadBytes(100_000)-crypt.TagLen-1 {
		t.Errorf("unexpected message capacity: %d", got)
	}
	if got := MaxMessageBytes(header.Bits); got != 0 {
		t.Errorf("expected zero message capacity, got %d", got)
	}
}

func TestValidateCapacityBoundary(t *testing.T) {
	const payloadLen = 100
	boundary := header.Bits + payloadLen*8

	if err := validateCapacity(payloadLen, boundary); err != nil {
		t.Errorf("expected boundary to fit exactly, got %v", err)
	}

	err := validateCapacity(payloadLen, boundary-1)
	if err == nil {
		t.Fatal("expected capacity error one bit under the boundary, got nil")
	}

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *CapacityError, got %T", err)
	}
	if capErr.RequiredBits != boundary || capErr.AvailableBits != boundary-1 {
		t.Errorf("unexpected capacity numbers: %+v", capErr)
	}
}
