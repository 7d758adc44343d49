//go:build !linux
// +build !linux

package capture

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/vearne/ifsniff/model"
)

func openAFPacket(ifi model.Interface, opts Options) (Handle, error) {
	return nil, openFailed(ifi.Name, errors.Errorf("af_packet is not implemented on %s", runtime.GOOS))
}

func openRawSocket(ifi model.Interface, opts Options) (Handle, error) {
	return nil, openFailed(ifi.Name, errors.Errorf("raw_socket is not implemented on %s", runtime.GOOS))
}
