// Package sensor provides accelerometer sample sources and the fixed-rate
// sampling loop that feeds them into a sample store.
package sensor

import (
	"context"
	"errors"

	"lightstick.klederson.com/internal/sample"
)

// Source produces raw accelerometer samples. Read blocks until a sample is
// available, the context is done, or the source is exhausted (io.EOF).
type Source interface {
	Read(ctx context.Context) (sample.Sample, error)
	Close() error
}

// ErrStreamFailed marks a read error the source cannot recover from, such
// as a disconnected port. The sampler stops on it.
var ErrStreamFailed = errors.New("sensor stream failed")

// selfPaced is implemented by sources whose Read blocks until the device
// delivers the next sample. The sampler reads those back to back instead of
// on its own ticker.
type selfPaced interface {
	selfPaced()
}
