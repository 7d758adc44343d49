package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearne/ifsniff/model"
)

func TestAppendHex(t *testing.T) {
	got := string(AppendHex(nil, []byte{0x0A, 0xFF, 0x00}))
	assert.Equal(t, "0a ff 00 ", got)
	assert.Equal(t, got, strings.ToLower(got))
	assert.Equal(t, "", string(AppendHex(nil, nil)))
}

func TestCodecSimple_Marshal(t *testing.T) {
	tests := []struct {
		name string
		ev   *model.CaptureEvent
		want string
	}{
		{
			name: "three bytes",
			ev:   &model.CaptureEvent{WorkerID: 1, Interface: "eth0", Length: 3, Data: []byte{0x0a, 0xff, 0x00}},
			want: "[worker 1] Packet captured: 3 bytes on interface eth0\n0a ff 00 \n",
		},
		{
			name: "empty frame",
			ev:   &model.CaptureEvent{WorkerID: 12, Interface: "lo", Length: 0},
			want: "[worker 12] Packet captured: 0 bytes on interface lo\n\n",
		},
	}

	codec := CodecSimple{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Marshal(tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestCodecSimple_MarshalDiagnostic(t *testing.T) {
	d := &model.Diagnostic{
		WorkerID:  2,
		Interface: "eth1",
		Kind:      model.ChannelOpenFailed,
		Err:       errors.New("operation not permitted"),
	}
	data, err := CodecSimple{}.MarshalDiagnostic(d)
	require.NoError(t, err)
	assert.Equal(t, "error: [worker 2] failed to create channel on eth1: operation not permitted\n", string(data))
	assert.False(t, strings.HasPrefix(string(data), "[worker"))
}

func TestCodecJson(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err := CodecJson{}.Marshal(&model.CaptureEvent{
		RunID:     "run-1",
		WorkerID:  4,
		Interface: "eth0",
		Length:    3,
		Timestamp: ts,
		Data:      []byte{0x0a, 0xff, 0x00},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
	assert.Equal(t, 1, strings.Count(string(data), "\n"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got["run"])
	assert.Equal(t, float64(4), got["worker"])
	assert.Equal(t, "eth0", got["interface"])
	assert.Equal(t, float64(3), got["length"])
	assert.Equal(t, "0aff00", got["data"])
	assert.Equal(t, "2024-05-01T12:00:00Z", got["timestamp"])

	data, err = CodecJson{}.MarshalDiagnostic(&model.Diagnostic{
		WorkerID:  4,
		Interface: "tun0",
		Kind:      model.UnsupportedTransport,
		Err:       errors.New("link type Raw"),
	})
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "UnsupportedTransport", got["kind"])
	assert.Equal(t, "link type Raw", got["error"])
}

func TestGetCodec(t *testing.T) {
	assert.Equal(t, CodecSimpleName, GetCodec("simple").Name())
	assert.Equal(t, CodecJsonName, GetCodec("json").Name())
	assert.Nil(t, GetCodec("protobuf"))
	assert.Panics(t, func() { RegisterCodec(nil) })
}
