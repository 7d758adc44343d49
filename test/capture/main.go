// capture opens one interface through the capture engines and decodes the
// first frames, to check an engine by hand:
//
//	sudo go run ./test/capture -i eth0 -engine af_packet -count 5
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/model"
)

var (
	device  string
	count   int
	timeout time.Duration
	opts    capture.Options
)

func main() {
	flag.StringVar(&device, "i", "lo", "interface")
	flag.IntVar(&count, "count", 10, "frames to decode")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "give up after")
	flag.Var(&opts.Engine, "engine", "libpcap, af_packet or raw_socket")
	flag.Parse()
	if opts.Engine == 0 {
		opts.Engine = capture.EnginePcap
	}

	handle, err := capture.NewOpener(opts).Open(model.Interface{Name: device})
	if err != nil {
		log.Fatal(err)
	}
	defer handle.Close()

	deadline := time.Now().Add(timeout)
	for got := 0; got < count && time.Now().Before(deadline); {
		data, ci, err := handle.ReadPacketData()
		if errors.Is(err, capture.ErrTimeout) {
			continue
		}
		if err != nil {
			log.Println("read:", err)
			continue
		}
		got++
		packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.NoCopy)
		fmt.Printf("%v %d bytes:", ci.Timestamp.Format(time.RFC3339Nano), len(data))
		for _, l := range packet.Layers() {
			fmt.Printf(" %v", l.LayerType())
		}
		fmt.Println()
	}

	if sp, ok := handle.(capture.StatProvider); ok {
		if st, err := sp.CaptureStats(); err == nil {
			fmt.Printf("kernel received=%d dropped=%d\n", st.Received, st.Dropped)
		}
	}
}
