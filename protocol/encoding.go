package protocol

import (
	"strings"

	"github.com/vearne/ifsniff/model"
)

type Codec interface {
	// Marshal returns the rendering of one capture event, ending in '\n'.
	Marshal(ev *model.CaptureEvent) ([]byte, error)
	// MarshalDiagnostic returns the rendering of one failure, ending in '\n'.
	MarshalDiagnostic(d *model.Diagnostic) ([]byte, error)
	// Name returns the name of the Codec implementation, as selected with --codec.
	// The result must be static; the result cannot change between calls.
	Name() string
}

var registeredCodecs = make(map[string]Codec)

func RegisterCodec(codec Codec) {
	if codec == nil {
		panic("cannot register a nil Codec")
	}
	if codec.Name() == "" {
		panic("cannot register Codec with empty string result for Name()")
	}
	contentSubtype := strings.ToLower(codec.Name())
	registeredCodecs[contentSubtype] = codec
}

// The name is expected to be lowercase.
func GetCodec(codecType string) Codec {
	return registeredCodecs[codecType]
}

const hexDigits = "0123456789abcdef"

// AppendHex appends data as two lowercase hex digits per byte, each followed by a space.
func AppendHex(dst []byte, data []byte) []byte {
	for _, b := range data {
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0f], ' ')
	}
	return dst
}
