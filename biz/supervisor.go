// Package biz runs one capture worker per interface and decides what happens
// when a worker fails.
package biz

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vearne/ifsniff/capture"
	"github.com/vearne/ifsniff/consts"
	"github.com/vearne/ifsniff/model"
	slog "github.com/vearne/simplelog"
)

// CrashPolicy decides what a worker panic does to the rest of the process.
type CrashPolicy string

const (
	// CrashPolicyExit stops every worker and makes Run return the fault.
	CrashPolicyExit CrashPolicy = "exit"
	// CrashPolicyContinue reports the fault and keeps the other workers running.
	CrashPolicyContinue CrashPolicy = "continue"
)

func (p *CrashPolicy) String() string {
	return string(*p)
}

func (p *CrashPolicy) Set(value string) error {
	switch CrashPolicy(strings.ToLower(value)) {
	case CrashPolicyExit, "":
		*p = CrashPolicyExit
	case CrashPolicyContinue:
		*p = CrashPolicyContinue
	default:
		return errors.Wrapf(consts.ErrUnknownPolicy, "%q", value)
	}
	return nil
}

// FaultError is a recovered worker panic.
type FaultError struct {
	WorkerID  int
	Interface string
	Value     interface{}
	Stack     []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("worker %d on %s panicked: %v", e.WorkerID, e.Interface, e.Value)
}

// Result is what a worker goroutine reports when it ends.
type Result struct {
	WorkerID  int
	Interface string
	Outcome   Outcome
	Err       error
}

type SupervisorConfig struct {
	RunID         string
	Policy        CrashPolicy
	DiagRateLimit int
	StatsInterval time.Duration
}

// Supervisor fans out one Worker per interface and joins them.
type Supervisor struct {
	sync.WaitGroup
	opener capture.Opener
	sink   Sink
	cf     SupervisorConfig
}

func NewSupervisor(opener capture.Opener, sink Sink, cf SupervisorConfig) *Supervisor {
	if cf.Policy == "" {
		cf.Policy = CrashPolicyExit
	}
	if cf.StatsInterval <= 0 {
		cf.StatsInterval = DefaultStatsInterval
	}
	return &Supervisor{opener: opener, sink: sink, cf: cf}
}

func (s *Supervisor) newWorker(id int, ifi model.Interface) *Worker {
	w := NewWorker(id, ifi, s.opener, s.sink)
	w.RunID = s.cf.RunID
	w.limiter = NewRateLimit(s.cf.DiagRateLimit)
	w.statsInterval = s.cf.StatsInterval
	return w
}

// Run starts a worker for every interface and blocks until all of them have
// ended. It returns a *FaultError when a worker panicked under CrashPolicyExit,
// nil otherwise.
func (s *Supervisor) Run(ctx context.Context, ifaces []model.Interface) error {
	if len(ifaces) == 0 {
		slog.Warn("no interface selected, nothing to capture")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Result, len(ifaces))
	for i, ifi := range ifaces {
		w := s.newWorker(i+1, ifi.Clone())
		s.Add(1)
		go func(w *Worker) {
			defer s.Done()
			results <- s.runWorker(ctx, w)
		}(w)
	}

	var fault error
	for range ifaces {
		res := <-results
		switch res.Outcome {
		case OutcomePanicked:
			s.fault(res)
			if s.cf.Policy == CrashPolicyExit && fault == nil {
				slog.Error("crash policy %s, stopping all workers", s.cf.Policy)
				fault = res.Err
				cancel()
			}
		case OutcomeChannelOpenFailed, OutcomeUnsupportedTransport:
			slog.Warn("[worker %d] %s terminated: %v", res.WorkerID, res.Interface, res.Outcome)
		default:
			slog.Debug("[worker %d] %s terminated: %v", res.WorkerID, res.Interface, res.Outcome)
		}
	}
	s.Wait()
	return fault
}

func (s *Supervisor) runWorker(ctx context.Context, w *Worker) (res Result) {
	res = Result{WorkerID: w.ID, Interface: w.Iface.Name}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomePanicked
			res.Err = &FaultError{
				WorkerID:  w.ID,
				Interface: w.Iface.Name,
				Value:     r,
				Stack:     debug.Stack(),
			}
		}
	}()
	res.Outcome, res.Err = w.Run(ctx)
	return res
}

func (s *Supervisor) fault(res Result) {
	if fe, ok := res.Err.(*FaultError); ok {
		slog.Error("[worker %d] %s crashed: %v\n%s", fe.WorkerID, fe.Interface, fe.Value, fe.Stack)
	}
	d := model.Diagnostic{
		RunID:     s.cf.RunID,
		WorkerID:  res.WorkerID,
		Interface: res.Interface,
		Kind:      model.FatalWorkerFault,
		Err:       res.Err,
		Timestamp: time.Now(),
	}
	if err := s.sink.WriteDiagnostic(&d); err != nil {
		slog.Error("sink.WriteDiagnostic:%v", err)
	}
}
