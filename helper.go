package ouroborosstego

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *Stego) StartOperationCounter() {

	// Start the ticker to log operations per second
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			encodeOps := atomic.SwapUint64(&s.encodeCounter, 0)
			decodeOps := atomic.SwapUint64(&s.decodeCounter, 0)
			s.config.Logger.WithFields(logrus.Fields{
				"encode_ops": encodeOps,
				"decode_ops": decodeOps,
			}).Info("Stego operations per second")
		}
	}()
}
