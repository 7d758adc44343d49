package biz

import (
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/model"
)

// step is one scripted result of ReadPacketData.
type step struct {
	data  []byte
	err   error
	panic bool
}

func frame(n int) step {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return step{data: data}
}

// fakeHandle replays its steps and then times out forever.
type fakeHandle struct {
	mu     sync.Mutex
	steps  []step
	pos    int
	closed bool
	stats  *capture.Stats
	// returned forever once steps run out, instead of timeouts
	tail error
}

func (h *fakeHandle) ReadPacketData() ([]byte, gopacket.CaptureInfo, error) {
	h.mu.Lock()
	if h.pos < len(h.steps) {
		s := h.steps[h.pos]
		h.pos++
		h.mu.Unlock()
		if s.panic {
			panic("boom")
		}
		ci := gopacket.CaptureInfo{Timestamp: time.Now(), CaptureLength: len(s.data), Length: len(s.data)}
		return s.data, ci, s.err
	}
	tail := h.tail
	h.mu.Unlock()
	if tail != nil {
		return nil, gopacket.CaptureInfo{}, tail
	}
	time.Sleep(time.Millisecond)
	return nil, gopacket.CaptureInfo{}, capture.ErrTimeout
}

func (h *fakeHandle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

func (h *fakeHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

type statHandle struct {
	*fakeHandle
}

func (h statHandle) CaptureStats() (capture.Stats, error) {
	return *h.stats, nil
}

// fakeOpener hands out prepared handles or errors by interface name.
type fakeOpener struct {
	mu      sync.Mutex
	handles map[string]capture.Handle
	errs    map[string]error
	opened  []string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{handles: map[string]capture.Handle{}, errs: map[string]error{}}
}

func (o *fakeOpener) Open(ifi model.Interface) (capture.Handle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, ifi.Name)
	if err, ok := o.errs[ifi.Name]; ok {
		return nil, err
	}
	if h, ok := o.handles[ifi.Name]; ok {
		return h, nil
	}
	return &fakeHandle{}, nil
}

func (o *fakeOpener) openedNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

// memSink keeps everything in memory.
type memSink struct {
	mu     sync.Mutex
	events []model.CaptureEvent
	diags  []model.Diagnostic
}

func (s *memSink) WriteEvent(ev *model.CaptureEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *ev)
	return nil
}

func (s *memSink) WriteDiagnostic(d *model.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, *d)
	return nil
}

func (s *memSink) Events() []model.CaptureEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CaptureEvent(nil), s.events...)
}

func (s *memSink) EventsOf(iface string) []model.CaptureEvent {
	var out []model.CaptureEvent
	for _, ev := range s.Events() {
		if ev.Interface == iface {
			out = append(out, ev)
		}
	}
	return out
}

func (s *memSink) Diagnostics() []model.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Diagnostic(nil), s.diags...)
}

func iface(name string) model.Interface {
	return model.Interface{Name: name}
}
