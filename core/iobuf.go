package core

import (
	"fmt"
	"sync"
)

// IOBuf collects the lines a core prints. Every line is also traced.
type IOBuf struct {
	mu    sync.Mutex
	name  string
	lines []string
}

// NewIOBuf creates an empty buffer.
func NewIOBuf(name string) *IOBuf {
	return &IOBuf{name: name}
}

// Printf appends one line.
func (b *IOBuf) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)

	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()

	Trace("IOBuf", "Buffer", b.name, "Line", line)
}

// Lines returns a copy of everything printed so far.
func (b *IOBuf) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.lines...)
}
