package biz

import (
	"expvar"
)

var stats *expvar.Map

func init() {
	stats = expvar.NewMap("capture")
}

// workerStats are the expvar counters of one interface, published as
// "<iface>.<counter>" in the "capture" map.
type workerStats struct {
	frames         *expvar.Int
	bytes          *expvar.Int
	readErrors     *expvar.Int
	suppressed     *expvar.Int
	kernelReceived *expvar.Int
	kernelDropped  *expvar.Int
}

func newWorkerStats(iface string) *workerStats {
	ws := &workerStats{
		frames:         new(expvar.Int),
		bytes:          new(expvar.Int),
		readErrors:     new(expvar.Int),
		suppressed:     new(expvar.Int),
		kernelReceived: new(expvar.Int),
		kernelDropped:  new(expvar.Int),
	}
	stats.Set(iface+".frames", ws.frames)
	stats.Set(iface+".bytes", ws.bytes)
	stats.Set(iface+".read_errors", ws.readErrors)
	stats.Set(iface+".read_errors_suppressed", ws.suppressed)
	stats.Set(iface+".kernel_received", ws.kernelReceived)
	stats.Set(iface+".kernel_dropped", ws.kernelDropped)
	return ws
}
