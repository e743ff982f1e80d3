package ouroborosstego

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/ouroboros-stego/internal/header"
	"github.com/i5heu/ouroboros-stego/internal/scatter"
)

// TestHelloScenario walks the canonical end-to-end case: a short message in
// a 100k-sample mono buffer, recovered with the right passphrase, rejected
// with the wrong one, and broken by corrupting a carrying sample.
func TestHelloScenario(t *testing.T) {
	s := setupTestStego(t, false)
	samples := makeTestSamples(100_000)

	out, err := s.Encode([]byte("HELLO"), "correct horse", samples)
	require.NoError(t, err)
	require.Len(t, out, len(samples))

	got, err := s.Decode(out, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, []byte("HELLO"), got)

	_, err = s.Decode(out, "wrong horse")
	assert.ErrorIs(t, err, ErrAuthentication)

	// Corrupt a sample inside the payload region that actually carries a bit.
	hdr, err := readHeader(out)
	require.NoError(t, err)
	perm, err := scatter.Permutation(hdr.Salt[:], len(out)-header.Bits, int(hdr.CiphertextLen)*8)
	require.NoError(t, err)

	tampered := cloneSamples(out)
	tampered[header.Bits+perm[0]] ^= 1

	_, err = s.Decode(tampered, "correct horse")
	if !errors.Is(err, ErrIntegrity) && !errors.Is(err, ErrAuthentication) {
		t.Errorf("expected integrity or authentication failure, got %v", err)
	}
}

// TestConcurrentEncodeDecode exercises the engine's statelessness: parallel
// calls on independent buffers must not interfere.
func TestConcurrentEncodeDecode(t *testing.T) {
	s := setupTestStego(t, false)

	const workers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			message := []byte{byte(n), 0xAA, byte(n * 3)}
			out, err := s.Encode(message, "shared pass", makeTestSamples(10_000))
			if err != nil {
				errCh <- err
				return
			}
			got, err := s.Decode(out, "shared pass")
			if err != nil {
				errCh <- err
				return
			}
			if len(got) != len(message) || got[0] != message[0] || got[2] != message[2] {
				errCh <- errors.New("concurrent round trip mismatch")
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent worker failed: %v", err)
	}
}

// TestOperationCounterReporting drives the per-second counter ticker and
// checks that completed operations show up in its log line.
func TestOperationCounterReporting(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	hook := test.NewLocal(logger)

	s, err := Init(&Config{KDFIterations: testIterations, Logger: logger})
	require.NoError(t, err)

	s.StartOperationCounter()

	out, err := s.Encode([]byte("counted"), "pass", makeTestSamples(10_000))
	require.NoError(t, err)
	_, err = s.Decode(out, "pass")
	require.NoError(t, err)

	deadline := time.After(3 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("no operations-per-second log entry within 3s")
		case <-time.After(50 * time.Millisecond):
		}

		// The two ops may land in different ticks; sum over all entries.
		var encodeOps, decodeOps uint64
		for _, entry := range hook.AllEntries() {
			if entry.Message != "Stego operations per second" {
				continue
			}
			if n, ok := entry.Data["encode_ops"].(uint64); ok {
				encodeOps += n
			}
			if n, ok := entry.Data["decode_ops"].(uint64); ok {
				decodeOps += n
			}
		}
		if encodeOps >= 1 && decodeOps >= 1 {
			return
		}
	}
}

func TestInitDefaults(t *testing.T) {
	s, err := Init(nil)
	require.NoError(t, err)
	assert.Equal(t, 200_000, s.config.KDFIterations)
	assert.NotNil(t, s.config.Logger)
}

func TestInitRejectsWeakKDF(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := Init(&Config{KDFIterations: 10, Logger: logger})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KDF iterations too low")
}
