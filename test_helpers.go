package ouroborosstego

import (
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
)

// testIterations keeps the KDF cheap in tests; production uses the default.
const testIterations = 1000

// setupTestStego creates an engine with a quiet logger and a fast KDF.
func setupTestStego(t *testing.T, compression bool) *Stego {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := Init(&Config{
		KDFIterations: testIterations,
		Compression:   compression,
		Logger:        logger,
	})
	if err != nil {
		t.Fatalf("Failed to initialize Stego engine: %v", err)
	}
	return s
}

// makeTestSamples produces a deterministic pseudo-audio buffer so failures
// reproduce.
func makeTestSamples(n int) []int16 {
	rng := rand.New(rand.NewSource(0xA0D10))
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(rng.Intn(1 << 16))
	}
	return samples
}

func cloneSamples(samples []int16) []int16 {
	out := make([]int16, len(samples))
	copy(out, samples)
	return out
}
