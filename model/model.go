package model

import (
	"fmt"
	"net"
	"time"
)

// Interface is a snapshot of one network interface taken at enumeration time.
// Workers receive their own copy through Clone and never mutate it.
type Interface struct {
	Index        int              `json:"index"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	HardwareAddr net.HardwareAddr `json:"hardwareAddr,omitempty"`
	MTU          int              `json:"mtu"`
	Flags        net.Flags        `json:"flags"`
	Addresses    []net.IP         `json:"addresses,omitempty"`
}

// Clone returns a deep copy of the descriptor.
func (i Interface) Clone() Interface {
	c := i
	if i.HardwareAddr != nil {
		c.HardwareAddr = append(net.HardwareAddr(nil), i.HardwareAddr...)
	}
	if i.Addresses != nil {
		c.Addresses = make([]net.IP, len(i.Addresses))
		for k, ip := range i.Addresses {
			c.Addresses[k] = append(net.IP(nil), ip...)
		}
	}
	return c
}

func (i Interface) IsUp() bool {
	return i.Flags&net.FlagUp != 0
}

func (i Interface) IsLoopback() bool {
	return i.Flags&net.FlagLoopback != 0
}

func (i Interface) String() string {
	return fmt.Sprintf("%s(index=%d, mtu=%d, hw=%s, flags=%s)", i.Name, i.Index, i.MTU, i.HardwareAddr, i.Flags)
}

// CaptureEvent is the report for exactly one captured frame.
type CaptureEvent struct {
	RunID     string
	WorkerID  int
	Interface string
	Length    int
	Timestamp time.Time
	Data      []byte
}

// DiagnosticKind classifies a failure reported on the diagnostic stream.
type DiagnosticKind string

const (
	ChannelOpenFailed    DiagnosticKind = "ChannelOpenFailed"
	UnsupportedTransport DiagnosticKind = "UnsupportedTransport"
	FrameReadError       DiagnosticKind = "FrameReadError"
	FatalWorkerFault     DiagnosticKind = "FatalWorkerFault"
)

// Diagnostic describes a failure of one worker. It is never a CaptureEvent.
type Diagnostic struct {
	RunID     string
	WorkerID  int
	Interface string
	Kind      DiagnosticKind
	Err       error
	Timestamp time.Time
}

func (d *Diagnostic) Message() string {
	switch d.Kind {
	case ChannelOpenFailed:
		return fmt.Sprintf("failed to create channel on %s", d.Interface)
	case UnsupportedTransport:
		return fmt.Sprintf("only Ethernet interfaces are supported, skipping %s", d.Interface)
	case FrameReadError:
		return fmt.Sprintf("error capturing packet on %s", d.Interface)
	case FatalWorkerFault:
		return fmt.Sprintf("capture worker for %s crashed", d.Interface)
	}
	return fmt.Sprintf("failure on %s", d.Interface)
}

func (d *Diagnostic) Cause() string {
	if d.Err == nil {
		return "unknown error"
	}
	return d.Err.Error()
}
