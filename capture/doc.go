/*
Package capture opens link-layer capture handles on the host's network
interfaces. It enumerates interfaces (Lister) and opens one receive-only
Handle per interface (Opener) using libpcap, an AF_PACKET ring or a plain
AF_PACKET raw socket. Only Ethernet framing is accepted; any other link
type fails with ErrUnsupportedTransport, any host failure with
ErrChannelOpenFailed.

example:

	lister := capture.NewLister(capture.EngineAFPacket)
	ifaces, err := lister.List()
	if err != nil {
		// handle error
	}
	opener := capture.NewOpener(capture.Options{Engine: capture.EngineAFPacket})
	handle, err := opener.Open(ifaces[0])
	if errors.Is(err, capture.ErrUnsupportedTransport) {
		// not an Ethernet interface
	}
	defer handle.Close()
	data, ci, err := handle.ReadPacketData()
*/
package capture
