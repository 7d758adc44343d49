package biz

import "github.com/vearne/ifsniff/model"

// EventWriter receives one record per captured frame.
type EventWriter interface {
	WriteEvent(ev *model.CaptureEvent) error
}

// DiagnosticWriter receives worker failures.
type DiagnosticWriter interface {
	WriteDiagnostic(d *model.Diagnostic) error
}

// Sink is the output shared by all workers. Implementations must be safe
// for concurrent use and write every record atomically.
type Sink interface {
	EventWriter
	DiagnosticWriter
}

// Limiter decides whether a diagnostic may be written now.
type Limiter interface {
	Allow() bool
}
