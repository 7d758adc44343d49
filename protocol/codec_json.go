package protocol

import (
	"encoding/json"
	"time"

	"github.com/vearne/ifsniff/model"
)

const CodecJsonName = "json"

func init() {
	RegisterCodec(CodecJson{})
}

type jsonEvent struct {
	Run       string    `json:"run,omitempty"`
	Worker    int       `json:"worker"`
	Interface string    `json:"interface"`
	Length    int       `json:"length"`
	Timestamp time.Time `json:"timestamp"`
	Data      string    `json:"data"`
}

type jsonDiagnostic struct {
	Level     string    `json:"level"`
	Run       string    `json:"run,omitempty"`
	Worker    int       `json:"worker"`
	Interface string    `json:"interface"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// CodecJson renders one JSON object per line, frame bytes as a lowercase hex string.
type CodecJson struct{}

func (c CodecJson) Marshal(ev *model.CaptureEvent) ([]byte, error) {
	hexData := make([]byte, 0, 2*len(ev.Data))
	for _, b := range ev.Data {
		hexData = append(hexData, hexDigits[b>>4], hexDigits[b&0x0f])
	}
	data, err := json.Marshal(&jsonEvent{
		Run:       ev.RunID,
		Worker:    ev.WorkerID,
		Interface: ev.Interface,
		Length:    ev.Length,
		Timestamp: ev.Timestamp,
		Data:      string(hexData),
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (c CodecJson) MarshalDiagnostic(d *model.Diagnostic) ([]byte, error) {
	data, err := json.Marshal(&jsonDiagnostic{
		Level:     "error",
		Run:       d.RunID,
		Worker:    d.WorkerID,
		Interface: d.Interface,
		Kind:      string(d.Kind),
		Message:   d.Message(),
		Error:     d.Cause(),
		Timestamp: d.Timestamp,
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (c CodecJson) Name() string {
	return CodecJsonName
}
