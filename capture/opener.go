package capture

import (
	"github.com/vearne/ifsniff/model"
)

// Opener is the capture channel factory.
type Opener interface {
	// Open returns a handle for ifi or an *OpenError.
	Open(ifi model.Interface) (Handle, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ifi model.Interface) (Handle, error)

func (f OpenerFunc) Open(ifi model.Interface) (Handle, error) {
	return f(ifi)
}

type engineOpener struct {
	opts Options
}

// NewOpener returns the Opener for opts.Engine.
func NewOpener(opts Options) Opener {
	return &engineOpener{opts: opts}
}

func (o *engineOpener) Open(ifi model.Interface) (Handle, error) {
	switch o.opts.Engine {
	case EngineAFPacket:
		return openAFPacket(ifi, o.opts)
	case EngineRawSocket:
		return openRawSocket(ifi, o.opts)
	default:
		return openPcap(ifi, o.opts)
	}
}
