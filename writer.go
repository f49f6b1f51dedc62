// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync"

// TraceEvent is one append-only record of a run-loop dispatch, used for
// diagnostics only.
type TraceEvent struct {
	Node  string
	Frame int32
}

// traceBuffer is a bounded Writer-shaped accumulator: tell appends,
// Events reads a snapshot, Censor rewrites it.
type traceBuffer struct {
	mu     sync.Mutex
	cap    int
	events []TraceEvent
}

// newTraceBuffer returns a trace accumulator holding at most capacity
// events; once full, Tell drops the oldest entry (a ring).
func newTraceBuffer(capacity int) *traceBuffer {
	if capacity <= 0 {
		capacity = 256
	}
	return &traceBuffer{cap: capacity}
}

// tell appends one event (Writer's Tell).
func (b *traceBuffer) tell(node string, frame frameIndex) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) >= b.cap {
		b.events = append(b.events[1:], TraceEvent{Node: node, Frame: int32(frame)})
		return
	}
	b.events = append(b.events, TraceEvent{Node: node, Frame: int32(frame)})
}

// Events returns a snapshot of accumulated events (Writer's Listen).
func (b *traceBuffer) Events() []TraceEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]TraceEvent, len(b.events))
	copy(out, b.events)
	return out
}

// Censor rewrites the accumulated events with f (Writer's Censor).
func (b *traceBuffer) Censor(f func([]TraceEvent) []TraceEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = f(b.events)
}
