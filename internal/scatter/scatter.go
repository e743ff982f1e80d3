// Package scatter generates the deterministic pseudo-random permutation that
// decides which sample LSB carries which payload bit. The algorithm is part
// of the version-1 format contract: seed from the salt, Fisher-Yates over the
// post-header index range. The header itself never goes through the
// permutation; it sits in the first fixed LSBs so decode can recover the salt
// before the permutation is reproducible.
package scatter

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// domainSeparation keeps the scatter seed from colliding with any other use
// of the salt.
const domainSeparation = "ouroboros-stego/scatter/v1"

// Seed derives the permutation seed from the public salt. The salt is
// already transmitted in the header, so no key material is needed to locate
// the payload bits.
func Seed(salt []byte) int64 {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(domainSeparation))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Permutation returns the first count entries of a reproducible shuffle of
// [0, regionSize). Identical inputs yield an identical sequence on encode
// and decode; the indices are a permutation, so no sample carries two bits.
func Permutation(salt []byte, regionSize, count int) ([]int, error) {
	if count < 0 || regionSize < 0 {
		return nil, fmt.Errorf("negative scatter geometry: region %d, count %d", regionSize, count)
	}
	if count > regionSize {
		return nil, fmt.Errorf("not enough samples for scatter pattern: need %d, have %d", count, regionSize)
	}

	indices := make([]int, regionSize)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(Seed(salt)))
	for i := regionSize - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return indices[:count], nil
}
