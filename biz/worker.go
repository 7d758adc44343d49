package biz

import (
	"context"
	"time"

	"github.com/google/gopacket"
	"github.com/pkg/errors"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/model"
	slog "github.com/vearne/simplelog"
)

const (
	DefaultStatsInterval = time.Second
	// upper bound of the pause between consecutive failing reads
	MaxReadErrorBackoff = time.Second
)

// Outcome is how a worker terminated.
type Outcome int

const (
	// OutcomeStopped means the capture loop observed the stop signal.
	OutcomeStopped Outcome = iota
	OutcomeChannelOpenFailed
	OutcomeUnsupportedTransport
	// OutcomePanicked means the worker goroutine panicked; the error is a *FaultError.
	OutcomePanicked
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStopped:
		return "stopped"
	case OutcomeChannelOpenFailed:
		return "channel open failed"
	case OutcomeUnsupportedTransport:
		return "unsupported transport"
	case OutcomePanicked:
		return "panicked"
	}
	return "unknown"
}

// Worker captures frames from one interface and reports them to a Sink.
type Worker struct {
	ID    int
	Iface model.Interface
	RunID string

	opener        capture.Opener
	sink          Sink
	limiter       Limiter
	stats         *workerStats
	statsInterval time.Duration
	maxBackoff    time.Duration
}

func NewWorker(id int, ifi model.Interface, opener capture.Opener, sink Sink) *Worker {
	return &Worker{
		ID:            id,
		Iface:         ifi,
		opener:        opener,
		sink:          sink,
		stats:         newWorkerStats(ifi.Name),
		statsInterval: DefaultStatsInterval,
		maxBackoff:    MaxReadErrorBackoff,
	}
}

// Run opens the capture channel and pulls frames until ctx is done.
// Read errors are reported and never end the loop.
func (w *Worker) Run(ctx context.Context) (Outcome, error) {
	handle, err := w.opener.Open(w.Iface)
	if err != nil {
		outcome, kind := OutcomeChannelOpenFailed, model.ChannelOpenFailed
		if errors.Is(err, capture.ErrUnsupportedTransport) {
			outcome, kind = OutcomeUnsupportedTransport, model.UnsupportedTransport
		}
		cause := err
		var oe *capture.OpenError
		if errors.As(err, &oe) {
			cause = oe.Err
		}
		w.diagnose(kind, cause)
		return outcome, err
	}
	defer handle.Close()

	slog.Info("Capturing packets on interface: %s", w.Iface.Name)
	stats.Add("workers_running", 1)
	defer stats.Add("workers_running", -1)

	w.loop(ctx, handle)
	slog.Debug("[worker %d] capture on %s stopped", w.ID, w.Iface.Name)
	return OutcomeStopped, nil
}

func (w *Worker) loop(ctx context.Context, handle capture.Handle) {
	provider, _ := handle.(capture.StatProvider)
	lastPoll := time.Now()
	var backoff time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if provider != nil && time.Since(lastPoll) >= w.statsInterval {
			w.pollStats(provider)
			lastPoll = time.Now()
		}

		data, ci, err := handle.ReadPacketData()
		if err == nil {
			backoff = 0
			w.emit(data, ci)
			continue
		}
		if errors.Is(err, capture.ErrTimeout) {
			backoff = 0
			continue
		}
		w.readError(err)

		// a handle that keeps failing (device gone) must not spin
		if backoff > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
		}
		backoff = nextBackoff(backoff, w.maxBackoff)
	}
}

// nextBackoff doubles the pause starting at 1ms, capped at max.
func nextBackoff(cur, max time.Duration) time.Duration {
	if cur <= 0 {
		return time.Millisecond
	}
	cur *= 2
	if cur > max {
		return max
	}
	return cur
}

func (w *Worker) emit(data []byte, ci gopacket.CaptureInfo) {
	ts := ci.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ev := model.CaptureEvent{
		RunID:     w.RunID,
		WorkerID:  w.ID,
		Interface: w.Iface.Name,
		Length:    len(data),
		Timestamp: ts,
		Data:      data,
	}
	w.stats.frames.Add(1)
	w.stats.bytes.Add(int64(len(data)))
	if err := w.sink.WriteEvent(&ev); err != nil {
		slog.Error("[worker %d] sink.WriteEvent:%v", w.ID, err)
	}
}

func (w *Worker) readError(err error) {
	w.stats.readErrors.Add(1)
	if w.limiter != nil && !w.limiter.Allow() {
		w.stats.suppressed.Add(1)
		return
	}
	w.diagnose(model.FrameReadError, err)
}

func (w *Worker) pollStats(p capture.StatProvider) {
	st, err := p.CaptureStats()
	if err != nil {
		slog.Debug("[worker %d] stats on %s:%v", w.ID, w.Iface.Name, err)
		return
	}
	w.stats.kernelReceived.Set(int64(st.Received))
	w.stats.kernelDropped.Set(int64(st.Dropped))
}

func (w *Worker) diagnose(kind model.DiagnosticKind, err error) {
	d := model.Diagnostic{
		RunID:     w.RunID,
		WorkerID:  w.ID,
		Interface: w.Iface.Name,
		Kind:      kind,
		Err:       err,
		Timestamp: time.Now(),
	}
	if werr := w.sink.WriteDiagnostic(&d); werr != nil {
		slog.Error("[worker %d] sink.WriteDiagnostic:%v", w.ID, werr)
	}
}
