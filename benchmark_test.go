package ouroborosstego

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func benchStego(b *testing.B) *Stego {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := Init(&Config{KDFIterations: testIterations, Logger: logger})
	require.NoError(b, err)
	return s
}

func BenchmarkEncode(b *testing.B) {
	s := benchStego(b)
	samples := makeTestSamples(1_000_000)
	message := bytes.Repeat([]byte("payload"), 512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Encode(message, "bench pass", samples); err != nil {
			b.Fatalf("Encode failed: %v", err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	s := benchStego(b)
	samples := makeTestSamples(1_000_000)
	message := bytes.Repeat([]byte("payload"), 512)

	out, err := s.Encode(message, "bench pass", samples)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Decode(out, "bench pass"); err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
	}
}
