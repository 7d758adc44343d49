// listifaces prints what each interface lister sees on this host.
package main

import (
	"log"

	"github.com/vearne/ifsniff/capture"
)

func main() {
	listers := map[string]capture.Lister{
		"libpcap": capture.PcapLister{},
		"netlink": capture.NetLister{},
	}
	for name, lister := range listers {
		itemList, err := lister.List()
		if err != nil {
			log.Println(name, err)
			continue
		}
		for _, item := range itemList {
			log.Printf("[%s] %v up=%v addrs=%v", name, item.String(), item.IsUp(), item.Addresses)
		}
	}
}
