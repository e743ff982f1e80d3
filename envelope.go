package ouroborosstego

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// The first plaintext byte inside the ciphertext says how the message body
// is encoded. Keeping the flag inside the encrypted envelope leaves the
// 41-byte header layout untouched.
const (
	envelopePlain = 0x00
	envelopeZstd  = 0x01

	envelopeOverhead = 1
)

// sealEnvelope prefixes the message with its encoding flag, compressing
// first when compression is enabled and actually helps.
func (s *Stego) sealEnvelope(message []byte) ([]byte, error) {
	if s.config.Compression {
		compressed, err := compressWithZstd(message)
		if err != nil {
			return nil, fmt.Errorf("failed to compress message: %w", err)
		}
		if len(compressed) < len(message) {
			return append([]byte{envelopeZstd}, compressed...), nil
		}
	}
	return append([]byte{envelopePlain}, message...), nil
}

// openEnvelope undoes sealEnvelope after decryption.
func openEnvelope(envelope []byte) ([]byte, error) {
	if len(envelope) == 0 {
		return nil, fmt.Errorf("empty envelope")
	}

	body := envelope[1:]
	switch envelope[0] {
	case envelopePlain:
		return body, nil
	case envelopeZstd:
		decompressed, err := decompressWithZstd(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress message: %w", err)
		}
		return decompressed, nil
	default:
		return nil, fmt.Errorf("unknown envelope flag: %#x", envelope[0])
	}
}

func compressWithZstd(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	_, err = enc.Write(data)
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressWithZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
