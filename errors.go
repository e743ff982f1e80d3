package ouroborosstego

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat means the carrier holds no recognizable payload: bad magic,
	// unsupported version, or a ciphertext length exceeding the carrier.
	ErrFormat = errors.New("no recognizable payload in carrier")

	// ErrIntegrity means the extracted ciphertext failed its checksum,
	// signaling corruption on the extraction path.
	ErrIntegrity = errors.New("payload checksum mismatch")

	// ErrAuthentication means tag verification failed: wrong passphrase or
	// tampered data. The two cases are deliberately indistinguishable.
	ErrAuthentication = errors.New("authentication failed: wrong passphrase or tampered data")
)

// CapacityError reports a payload that does not fit the carrier. The encode
// that returns it has not touched the sample buffer.
type CapacityError struct {
	RequiredBits  int
	AvailableBits int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: need %d bits, have %d", e.RequiredBits, e.AvailableBits)
}
