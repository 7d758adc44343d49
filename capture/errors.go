package capture

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedTransport means the interface does not deliver Ethernet frames.
	ErrUnsupportedTransport = errors.New("unsupported transport")
	// ErrChannelOpenFailed means the host refused or could not set up the capture channel.
	ErrChannelOpenFailed = errors.New("channel open failed")
	// ErrTimeout is returned by Handle.ReadPacketData when no frame arrived
	// within the read timeout. It is not a read failure.
	ErrTimeout = errors.New("read timeout expired")
)

// OpenError is returned by Opener.Open. Kind is ErrUnsupportedTransport or
// ErrChannelOpenFailed, Err is the host provided cause.
type OpenError struct {
	Interface string
	Kind      error
	Err       error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%v on %s: %v", e.Kind, e.Interface, e.Err)
}

// Is lets errors.Is match the failure kind.
func (e *OpenError) Is(target error) bool {
	return target == e.Kind
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Cause implements the github.com/pkg/errors causer interface.
func (e *OpenError) Cause() error {
	return e.Err
}

func openFailed(iface string, err error) *OpenError {
	return &OpenError{Interface: iface, Kind: ErrChannelOpenFailed, Err: err}
}

func unsupported(iface string, format string, args ...interface{}) *OpenError {
	return &OpenError{Interface: iface, Kind: ErrUnsupportedTransport, Err: errors.Errorf(format, args...)}
}
