package sink

import (
	"context"
	"errors"

	"github.com/darrenvechain/flight-telemetry/telemetry"
)

// ErrUnavailable is returned while the backing storage cannot be written to.
var ErrUnavailable = errors.New("sink: storage unavailable")

// Sink persists drained samples.
type Sink interface {
	Write(ctx context.Context, sample telemetry.Sample) error
}
