package ouroborosstego

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Stego is the embed/extract engine. It carries no state between calls;
// independent Encode/Decode calls may run concurrently as long as each gets
// its own sample buffer.
type Stego struct {
	config        Config
	encodeCounter uint64
	decodeCounter uint64
}

// Init creates a Stego engine from the given configuration, applying
// defaults for anything unset.
func Init(config *Config) (*Stego, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	log = config.Logger

	err := config.checkConfig()
	if err != nil {
		return nil, fmt.Errorf("error checking config for Stego engine: %w", err)
	}

	return &Stego{
		config:        *config,
		encodeCounter: 0,
		decodeCounter: 0,
	}, nil
}
