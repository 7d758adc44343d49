package capture

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/vearne/ifsniff/consts"
	"github.com/vearne/ifsniff/model"
	"github.com/vearne/ifsniff/size"
)

// EngineType selects how capture channels are opened.
type EngineType uint8

// Available engines for capturing frames
const (
	EnginePcap EngineType = 1 << iota
	EngineAFPacket
	EngineRawSocket
)

const (
	DefaultBufferTimeout = 2000 * time.Millisecond
	defaultSnaplen       = 64<<10 + 200
	// bytes added to the MTU so link-layer headers fit in the snapshot
	snaplenMTUSlack = 200
	// af_packet ring size when --buffer-size is not given
	defaultRingSize = 32 << 20
)

// Set is here so that EngineType can implement flag.Var
func (eng *EngineType) Set(v string) error {
	switch v {
	case "", "libpcap":
		*eng = EnginePcap
	case "af_packet":
		*eng = EngineAFPacket
	case "raw_socket":
		*eng = EngineRawSocket
	default:
		return errors.Wrapf(consts.ErrUnknownEngine, "%q", v)
	}
	return nil
}

func (eng *EngineType) String() (e string) {
	switch *eng {
	case EnginePcap:
		e = "libpcap"
	case EngineAFPacket:
		e = "af_packet"
	case EngineRawSocket:
		e = "raw_socket"
	default:
		e = ""
	}
	return e
}

func (eng *EngineType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return eng.Set(s)
}

func (eng EngineType) MarshalJSON() ([]byte, error) {
	return json.Marshal(eng.String())
}

// Options are applied to every handle an Opener creates.
type Options struct {
	Engine EngineType `json:"engine"`
	// Snaplen is the maximum number of bytes captured per frame, 0 derives it from the MTU.
	Snaplen     int       `json:"snaplen"`
	Promiscuous bool      `json:"promisc"`
	BufferSize  size.Size `json:"buffer-size"`
	// BufferTimeout bounds a single read so workers can notice a stop request.
	BufferTimeout time.Duration `json:"buffer-timeout"`
}

func (o Options) snaplen(ifi model.Interface) int {
	if o.Snaplen > 0 {
		return o.Snaplen
	}
	if ifi.MTU > 0 {
		return ifi.MTU + snaplenMTUSlack
	}
	return defaultSnaplen
}

func (o Options) timeout() time.Duration {
	if o.BufferTimeout <= 0 {
		return DefaultBufferTimeout
	}
	return o.BufferTimeout
}

// maxBlockSize bounds one TPACKET block; larger blocks are refused by many kernels.
const maxBlockSize = 1 << 20

// afpacketComputeSize derives an AF_PACKET ring layout holding roughly
// targetSize bytes of frames of at least snaplen bytes each. A block holds as
// many frames as fit in maxBlockSize, and at least one.
func afpacketComputeSize(targetSize int, snaplen int, pageSize int) (
	frameSize int, blockSize int, numBlocks int, err error) {
	if snaplen <= 0 || pageSize <= 0 {
		return 0, 0, 0, errors.Errorf("invalid snaplen %d or page size %d", snaplen, pageSize)
	}
	if snaplen < pageSize {
		frameSize = pageSize / (pageSize / snaplen)
	} else {
		frameSize = (snaplen/pageSize + 1) * pageSize
	}

	framesPerBlock := maxBlockSize / frameSize
	if framesPerBlock < 1 {
		framesPerBlock = 1
	}
	blockSize = frameSize * framesPerBlock
	numBlocks = targetSize / blockSize
	if numBlocks == 0 {
		return 0, 0, 0, errors.Errorf("buffer size %d is too small for %d byte frames", targetSize, frameSize)
	}
	return frameSize, blockSize, numBlocks, nil
}
