package telemetry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/mclock"
)

// Sample is a single instrument reading.
type Sample struct {
	Channel string
	Seq     uint64
	Time    mclock.AbsTime
	Value   float64
}

func (s Sample) String() string {
	return fmt.Sprintf("%s#%d@%d=%g", s.Channel, s.Seq, s.Time, s.Value)
}
