package ouroborosstego

import (
	"fmt"

	"github.com/i5heu/ouroboros-stego/internal/crypt"
	"github.com/sirupsen/logrus"
)

// Config configures a Stego engine.
type Config struct {
	// KDFIterations is the PBKDF2 cost. Defaults to crypt.DefaultIterations;
	// encode and decode must agree on it or authentication fails.
	KDFIterations int
	// Compression enables zstd compression of the message before encryption
	// when it actually shrinks the payload.
	Compression bool
	Logger      *logrus.Logger
}

// minKDFIterations guards against configs that would make brute force cheap.
// Tests may go below it through internal constructors only.
const minKDFIterations = 1000

func (c *Config) checkConfig() error {
	if c.KDFIterations == 0 {
		c.KDFIterations = crypt.DefaultIterations
	}
	if c.KDFIterations < minKDFIterations {
		return fmt.Errorf("KDF iterations too low: %d < %d", c.KDFIterations, minKDFIterations)
	}
	if c.Logger == nil {
		return fmt.Errorf("no logger provided")
	}
	return nil
}
