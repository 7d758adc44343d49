package capture

import (
	"github.com/google/gopacket"
)

// Handle is a receive-only capture channel bound to one interface.
// It is owned by a single goroutine.
type Handle interface {
	gopacket.PacketDataSource
	Close()
}

// Stats are cumulative kernel counters of a handle.
type Stats struct {
	Received uint64
	Dropped  uint64
}

// StatProvider is implemented by handles that can report kernel counters.
type StatProvider interface {
	CaptureStats() (Stats, error)
}
