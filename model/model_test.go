package model

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterfaceClone(t *testing.T) {
	orig := Interface{
		Index:        2,
		Name:         "eth0",
		HardwareAddr: net.HardwareAddr{0x02, 0x42, 0xac, 0x11, 0x00, 0x02},
		MTU:          1500,
		Flags:        net.FlagUp | net.FlagBroadcast,
		Addresses:    []net.IP{net.ParseIP("172.17.0.2").To4()},
	}
	c := orig.Clone()
	assert.Equal(t, orig, c)

	c.HardwareAddr[0] = 0xff
	c.Addresses[0][0] = 10
	assert.Equal(t, byte(0x02), orig.HardwareAddr[0])
	assert.Equal(t, "172.17.0.2", orig.Addresses[0].String())
	assert.True(t, orig.IsUp())
	assert.False(t, orig.IsLoopback())
}

func TestDiagnosticMessage(t *testing.T) {
	d := &Diagnostic{WorkerID: 3, Interface: "wlan0", Kind: ChannelOpenFailed, Err: errors.New("operation not permitted")}
	assert.Equal(t, "failed to create channel on wlan0", d.Message())
	assert.Equal(t, "operation not permitted", d.Cause())

	d = &Diagnostic{Interface: "tun0", Kind: UnsupportedTransport}
	assert.Contains(t, d.Message(), "only Ethernet")
	assert.Equal(t, "unknown error", d.Cause())
}
