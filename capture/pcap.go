package capture

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/pkg/errors"

	"github.com/vearne/ifsniff/model"
)

type pcapHandle struct {
	*pcap.Handle
}

// openPcap activates a libpcap handle on ifi, the way it is configured for
// live capture: snaplen, promisc, kernel buffer and read timeout.
func openPcap(ifi model.Interface, opts Options) (Handle, error) {
	inactive, err := pcap.NewInactiveHandle(ifi.Name)
	if err != nil {
		return nil, openFailed(ifi.Name, errors.Wrap(err, "inactive handle error"))
	}
	defer inactive.CleanUp()

	if opts.Promiscuous {
		if err = inactive.SetPromisc(true); err != nil {
			return nil, openFailed(ifi.Name, errors.Wrap(err, "promiscuous mode error"))
		}
	}
	if err = inactive.SetSnapLen(opts.snaplen(ifi)); err != nil {
		return nil, openFailed(ifi.Name, errors.Wrap(err, "snapshot length error"))
	}
	if opts.BufferSize > 0 {
		if err = inactive.SetBufferSize(int(opts.BufferSize)); err != nil {
			return nil, openFailed(ifi.Name, errors.Wrap(err, "handle buffer size error"))
		}
	}
	if err = inactive.SetTimeout(opts.timeout()); err != nil {
		return nil, openFailed(ifi.Name, errors.Wrap(err, "handle buffer timeout error"))
	}

	handle, err := inactive.Activate()
	if err != nil {
		return nil, openFailed(ifi.Name, errors.Wrap(err, "PCAP Activate device error"))
	}
	if lt := handle.LinkType(); lt != layers.LinkTypeEthernet {
		handle.Close()
		return nil, unsupported(ifi.Name, "link type %s", lt)
	}
	return &pcapHandle{Handle: handle}, nil
}

// ReadPacketData satisfies PacketDataSource interface
func (h *pcapHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	data, ci, err := h.Handle.ReadPacketData()
	if enext, ok := err.(pcap.NextError); ok && enext == pcap.NextErrorTimeoutExpired {
		return nil, ci, ErrTimeout
	}
	return data, ci, err
}

func (h *pcapHandle) CaptureStats() (Stats, error) {
	s, err := h.Handle.Stats()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Received: uint64(s.PacketsReceived),
		Dropped:  uint64(s.PacketsDropped + s.PacketsIfDropped),
	}, nil
}
