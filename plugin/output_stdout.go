package plugin

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/vearne/ifsniff/consts"
	"github.com/vearne/ifsniff/model"
	"github.com/vearne/ifsniff/protocol"
)

// StdOutput is the shared output sink of all capture workers. Events go to
// out, diagnostics to errOut. Every record is marshalled before the lock is
// taken and written with a single Write, so records never interleave.
type StdOutput struct {
	mu     sync.Mutex
	codec  protocol.Codec
	out    io.Writer
	errOut io.Writer
	closer io.Closer
}

// NewStdOutput writes events to stdout and diagnostics to stderr. A non-nil
// diag additionally receives every diagnostic and is closed by Close.
func NewStdOutput(codec string, diag io.WriteCloser) (*StdOutput, error) {
	c := protocol.GetCodec(codec)
	if c == nil {
		return nil, errors.Wrapf(consts.ErrUnknownCodec, "%q", codec)
	}
	var errOut io.Writer = os.Stderr
	if diag != nil {
		errOut = io.MultiWriter(os.Stderr, diag)
	}
	o := NewWriterOutput(c, os.Stdout, errOut)
	if diag != nil {
		o.closer = diag
	}
	return o, nil
}

// NewWriterOutput builds a sink on arbitrary writers; out and errOut may be the same.
func NewWriterOutput(codec protocol.Codec, out, errOut io.Writer) *StdOutput {
	return &StdOutput{codec: codec, out: out, errOut: errOut}
}

func (o *StdOutput) WriteEvent(ev *model.CaptureEvent) error {
	data, err := o.codec.Marshal(ev)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err = o.out.Write(data)
	return err
}

func (o *StdOutput) WriteDiagnostic(d *model.Diagnostic) error {
	data, err := o.codec.MarshalDiagnostic(d)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err = o.errOut.Write(data)
	return err
}

func (o *StdOutput) Close() error {
	if o.closer != nil {
		return o.closer.Close()
	}
	return nil
}
