//go:build linux
// +build linux

package capture

import (
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/afpacket"
	"github.com/pkg/errors"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/ifsniff/model"
)

type afpacketHandle struct {
	*afpacket.TPacket
}

func openAFPacket(ifi model.Interface, opts Options) (Handle, error) {
	if err := checkEthernet(ifi.Name); err != nil {
		return nil, err
	}

	target := int(opts.BufferSize)
	if target <= 0 {
		target = defaultRingSize
	}
	szFrame, szBlock, numBlocks, err := afpacketComputeSize(target, opts.snaplen(ifi), os.Getpagesize())
	if err != nil {
		return nil, openFailed(ifi.Name, err)
	}
	if opts.Promiscuous {
		slog.Warn("af_packet engine does not switch %s to promiscuous mode", ifi.Name)
	}

	tp, err := afpacket.NewTPacket(
		afpacket.OptInterface(ifi.Name),
		afpacket.OptFrameSize(szFrame),
		afpacket.OptBlockSize(szBlock),
		afpacket.OptNumBlocks(numBlocks),
		afpacket.OptPollTimeout(opts.timeout()),
	)
	if err != nil {
		return nil, openFailed(ifi.Name, errors.Wrap(err, "afpacket"))
	}
	return &afpacketHandle{TPacket: tp}, nil
}

// ReadPacketData satisfies PacketDataSource interface
func (h *afpacketHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	data, ci, err := h.TPacket.ReadPacketData()
	if err == afpacket.ErrTimeout {
		return nil, ci, ErrTimeout
	}
	return data, ci, err
}

func (h *afpacketHandle) CaptureStats() (Stats, error) {
	v2, v3, err := h.SocketStats()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Received: uint64(v2.Packets() + v3.Packets()),
		Dropped:  uint64(v2.Drops() + v3.Drops()),
	}, nil
}
