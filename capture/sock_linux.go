//go:build linux
// +build linux

package capture

import (
	"net"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/vearne/ifsniff/model"
)

// rawSocket is a plain AF_PACKET/SOCK_RAW socket bound to one interface.
// Frames are copied out with recvfrom, one per read.
type rawSocket struct {
	mu      sync.Mutex
	fd      int
	ifindex int
	buf     []byte
	stats   Stats
}

func openRawSocket(ifi model.Interface, opts Options) (Handle, error) {
	if err := checkEthernet(ifi.Name); err != nil {
		return nil, err
	}
	index := ifi.Index
	if index == 0 {
		ni, err := net.InterfaceByName(ifi.Name)
		if err != nil {
			return nil, openFailed(ifi.Name, errors.Wrap(err, "can't find matching interface"))
		}
		index = ni.Index
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, int(ETHALL))
	if err != nil {
		return nil, openFailed(ifi.Name, errors.Wrap(err, "sock raw error"))
	}
	sock := &rawSocket{
		fd:      fd,
		ifindex: index,
		buf:     make([]byte, opts.snaplen(ifi)),
	}
	if err = sock.setup(opts); err != nil {
		unix.Close(fd)
		return nil, openFailed(ifi.Name, err)
	}
	return sock, nil
}

func (sock *rawSocket) setup(opts Options) error {
	err := unix.Bind(sock.fd, &unix.SockaddrLinklayer{Protocol: ETHALL, Ifindex: sock.ifindex})
	if err != nil {
		return errors.Wrap(err, "bind")
	}
	tv := unix.NsecToTimeval(opts.timeout().Nanoseconds())
	if err = unix.SetsockoptTimeval(sock.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return errors.Wrap(err, "setsockopt so_rcvtimeo")
	}
	if opts.BufferSize > 0 {
		if err = unix.SetsockoptInt(sock.fd, unix.SOL_SOCKET, unix.SO_RCVBUF, int(opts.BufferSize)); err != nil {
			return errors.Wrap(err, "setsockopt so_rcvbuf")
		}
	}
	if opts.Promiscuous {
		mreq := unix.PacketMreq{
			Ifindex: int32(sock.ifindex),
			Type:    unix.PACKET_MR_PROMISC,
		}
		if err = unix.SetsockoptPacketMreq(sock.fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq); err != nil {
			return errors.Wrap(err, "promiscuous mode error")
		}
	}
	return nil
}

// ReadPacketData implements gopacket.PacketDataSource.
func (sock *rawSocket) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	sock.mu.Lock()
	defer sock.mu.Unlock()
	if sock.fd == -1 {
		return nil, ci, unix.EBADF
	}
	n, _, err := unix.Recvfrom(sock.fd, sock.buf, unix.MSG_TRUNC)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EINTR {
			return nil, ci, ErrTimeout
		}
		return nil, ci, err
	}
	ci.Timestamp = time.Now()
	ci.Length = n
	ci.InterfaceIndex = sock.ifindex
	if n > len(sock.buf) {
		n = len(sock.buf)
	}
	data = make([]byte, n)
	ci.CaptureLength = copy(data, sock.buf[:n])
	return data, ci, nil
}

// CaptureStats accumulates PACKET_STATISTICS, which the kernel resets on every read.
func (sock *rawSocket) CaptureStats() (Stats, error) {
	sock.mu.Lock()
	defer sock.mu.Unlock()
	s, err := unix.GetsockoptTpacketStats(sock.fd, unix.SOL_PACKET, unix.PACKET_STATISTICS)
	if err != nil {
		return Stats{}, err
	}
	sock.stats.Received += uint64(s.Packets)
	sock.stats.Dropped += uint64(s.Drops)
	return sock.stats, nil
}

// Close closes the underlying socket
func (sock *rawSocket) Close() {
	sock.mu.Lock()
	defer sock.mu.Unlock()
	if sock.fd != -1 {
		unix.Close(sock.fd)
		sock.fd = -1
	}
}
