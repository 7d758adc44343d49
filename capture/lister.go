package capture

import (
	"net"
	"strings"

	"github.com/google/gopacket/pcap"
	"github.com/pkg/errors"
	psnet "github.com/shirou/gopsutil/v3/net"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/ifsniff/model"
	"github.com/vearne/ifsniff/util"
)

// Lister is the interface enumerator. An empty result is valid.
type Lister interface {
	List() ([]model.Interface, error)
}

// NewLister returns the enumerator matching the engine: libpcap devices for
// EnginePcap, the kernel interface table otherwise.
func NewLister(engine EngineType) Lister {
	if engine == EnginePcap {
		return &PcapLister{}
	}
	return &NetLister{}
}

// PcapLister lists libpcap devices and completes them with net.Interfaces.
type PcapLister struct{}

func (PcapLister) List() ([]model.Interface, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return nil, errors.Wrap(err, "pcap.FindAllDevs")
	}
	// missing kernel details only cost index/mtu/flags
	ifis, err := net.Interfaces()
	if err != nil {
		slog.Warn("net.Interfaces:%v", err)
	}
	return fromPcapDevs(devs, ifis), nil
}

func fromPcapDevs(devs []pcap.Interface, ifis []net.Interface) []model.Interface {
	byName := make(map[string]net.Interface, len(ifis))
	for _, ni := range ifis {
		byName[ni.Name] = ni
	}

	seen := util.NewStringSet()
	result := make([]model.Interface, 0, len(devs))
	for _, dev := range devs {
		if !seen.AddIfAbsent(dev.Name) {
			continue
		}
		item := model.Interface{
			Name:        dev.Name,
			Description: dev.Description,
		}
		for _, addr := range dev.Addresses {
			item.Addresses = append(item.Addresses, addr.IP)
		}
		if ni, ok := byName[dev.Name]; ok {
			item.Index = ni.Index
			item.MTU = ni.MTU
			item.Flags = ni.Flags
			item.HardwareAddr = ni.HardwareAddr
		} else {
			item.Flags = pcapFlags(dev.Flags)
		}
		result = append(result, item)
	}
	return result
}

// libpcap PCAP_IF_* bits
const (
	pcapIfLoopback = 0x00000001
	pcapIfUp       = 0x00000002
	pcapIfRunning  = 0x00000004
)

func pcapFlags(f uint32) net.Flags {
	var flags net.Flags
	if f&pcapIfLoopback != 0 {
		flags |= net.FlagLoopback
	}
	if f&pcapIfUp != 0 {
		flags |= net.FlagUp
	}
	if f&pcapIfRunning != 0 {
		flags |= net.FlagRunning
	}
	return flags
}

// NetLister lists interfaces through gopsutil and needs no libpcap device access.
type NetLister struct{}

func (NetLister) List() ([]model.Interface, error) {
	stats, err := psnet.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "net.Interfaces")
	}
	return fromInterfaceStats(stats), nil
}

func fromInterfaceStats(stats []psnet.InterfaceStat) []model.Interface {
	seen := util.NewStringSet()
	result := make([]model.Interface, 0, len(stats))
	for _, st := range stats {
		if !seen.AddIfAbsent(st.Name) {
			continue
		}
		item := model.Interface{
			Index: st.Index,
			Name:  st.Name,
			MTU:   st.MTU,
			Flags: parseFlags(st.Flags),
		}
		if hw, err := net.ParseMAC(st.HardwareAddr); err == nil {
			item.HardwareAddr = hw
		}
		for _, addr := range st.Addrs {
			// addresses come in CIDR notation
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil {
				ip = net.ParseIP(addr.Addr)
			}
			if ip != nil {
				item.Addresses = append(item.Addresses, ip)
			}
		}
		result = append(result, item)
	}
	return result
}

var flagNames = map[string]net.Flags{
	"up":           net.FlagUp,
	"broadcast":    net.FlagBroadcast,
	"loopback":     net.FlagLoopback,
	"pointtopoint": net.FlagPointToPoint,
	"multicast":    net.FlagMulticast,
	"running":      net.FlagRunning,
}

func parseFlags(names []string) net.Flags {
	var flags net.Flags
	for _, name := range names {
		flags |= flagNames[strings.ToLower(name)]
	}
	return flags
}
