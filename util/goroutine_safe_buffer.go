package util

import (
	"bytes"
	"strings"
	"sync"
)

// GoroutineSafeBuffer is an io.Writer that can be shared by capture workers,
// mostly as an in-memory output sink.
type GoroutineSafeBuffer struct {
	mu     sync.Mutex
	buf    *bytes.Buffer
	writes int
}

func NewGoroutineSafeBuffer() *GoroutineSafeBuffer {
	var b GoroutineSafeBuffer
	b.buf = bytes.NewBuffer([]byte{})
	return &b
}

func (g *GoroutineSafeBuffer) Write(p []byte) (n int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes++
	return g.buf.Write(p)
}

func (g *GoroutineSafeBuffer) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.String()
}

// Lines returns the buffered text split on '\n', without the trailing empty line.
func (g *GoroutineSafeBuffer) Lines() []string {
	s := strings.TrimSuffix(g.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Writes returns how many Write calls the buffer has seen.
func (g *GoroutineSafeBuffer) Writes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writes
}

func (g *GoroutineSafeBuffer) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buf.Reset()
	g.writes = 0
}
