package protocol

import (
	"strconv"

	"github.com/vearne/ifsniff/model"
)

const CodecSimpleName = "simple"

func init() {
	RegisterCodec(CodecSimple{})
}

// CodecSimple renders events for a console:
//
//	[worker 1] Packet captured: 3 bytes on interface eth0
//	0a ff 00
type CodecSimple struct{}

func (c CodecSimple) Marshal(ev *model.CaptureEvent) ([]byte, error) {
	buff := make([]byte, 0, 64+3*len(ev.Data))
	// line 1
	buff = appendWorker(buff, ev.WorkerID)
	buff = append(buff, "Packet captured: "...)
	buff = strconv.AppendInt(buff, int64(ev.Length), 10)
	buff = append(buff, " bytes on interface "...)
	buff = append(buff, ev.Interface...)
	buff = append(buff, '\n')
	// line 2
	buff = AppendHex(buff, ev.Data)
	buff = append(buff, '\n')
	return buff, nil
}

func (c CodecSimple) MarshalDiagnostic(d *model.Diagnostic) ([]byte, error) {
	buff := make([]byte, 0, 128)
	buff = append(buff, "error: "...)
	buff = appendWorker(buff, d.WorkerID)
	buff = append(buff, d.Message()...)
	buff = append(buff, ": "...)
	buff = append(buff, d.Cause()...)
	buff = append(buff, '\n')
	return buff, nil
}

func (c CodecSimple) Name() string {
	return CodecSimpleName
}

func appendWorker(buff []byte, id int) []byte {
	buff = append(buff, "[worker "...)
	buff = strconv.AppendInt(buff, int64(id), 10)
	return append(buff, "] "...)
}
