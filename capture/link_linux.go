//go:build linux
// +build linux

package capture

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ETHALL htons(ETH_P_ALL)
const ETHALL uint16 = unix.ETH_P_ALL<<8 | unix.ETH_P_ALL>>8

// hardwareType returns the ARPHRD_* type of the named interface.
func hardwareType(name string) (uint16, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return 0, errors.Wrap(err, "socket")
	}
	defer unix.Close(fd)

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, errors.Wrap(err, "ifreq")
	}
	if err = unix.IoctlIfreq(fd, unix.SIOCGIFHWADDR, ifr); err != nil {
		return 0, errors.Wrap(err, "SIOCGIFHWADDR")
	}
	return ifr.Uint16(), nil
}

// checkEthernet fails unless AF_PACKET delivers Ethernet frames for name.
// Loopback devices carry a zeroed Ethernet header on Linux.
func checkEthernet(name string) error {
	hw, err := hardwareType(name)
	if err != nil {
		return openFailed(name, err)
	}
	switch hw {
	case unix.ARPHRD_ETHER, unix.ARPHRD_LOOPBACK:
		return nil
	}
	return unsupported(name, "hardware type %d", hw)
}
