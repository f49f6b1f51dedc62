// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"sync"
	"sync/atomic"
)

// onceGuard is a payload-free at-most-once gate used where two or more
// goroutines race to perform a single action (a cancel stack's terminal
// transition, a Memo cell's first-run election, a Race/ParallelPair
// winner election) and only the caller that wins needs to know it won.
type onceGuard struct {
	used atomic.Uintptr
}

// enter claims the guard. Returns true for exactly one caller.
func (g *onceGuard) enter() bool {
	return g.used.Add(1) == 1
}

// entered reports whether the guard has already been claimed.
func (g *onceGuard) entered() bool {
	return g.used.Load() != 0
}

// CancelStack is the LIFO of cancel actions for one run.
// push/pop are called only by the run-loop goroutine that currently owns
// the run plus whichever goroutine is about to deliver an Async callback;
// cancel may be called by any goroutine holding a CancelHandle. All three
// are made safe by a single mutex guarding the linked list plus an
// onceGuard marking the terminal "cancelled" transition.
type CancelStack struct {
	mu        sync.Mutex
	top       *cancelEntry
	cancelled onceGuard
}

// NewCancelStack returns an empty cancellation stack.
func NewCancelStack() *CancelStack {
	return &CancelStack{}
}

// push adds a cancel action tied to the currently active asynchronous
// operation. If the stack has already been cancelled, the action runs
// immediately instead of being retained.
func (s *CancelStack) push(action func()) {
	s.mu.Lock()
	if s.cancelled.entered() {
		s.mu.Unlock()
		action()
		return
	}
	s.top = acquireCancelEntry(action, s.top)
	s.mu.Unlock()
}

// pop removes the most recently pushed entry, used when an async operation
// completes normally and its cleanup is no longer needed.
func (s *CancelStack) pop() {
	s.mu.Lock()
	if s.top != nil {
		e := s.top
		s.top = e.next
		s.mu.Unlock()
		releaseCancelEntry(e)
		return
	}
	s.mu.Unlock()
}

// pushCollection pushes a single composite entry that cancels every
// action in actions, LIFO, on top of the entries already on the stack,
// so a group of actions is surfaced as one entry.
func (s *CancelStack) pushCollection(actions []func()) {
	composite := func() {
		for i := len(actions) - 1; i >= 0; i-- {
			actions[i]()
		}
	}
	s.mu.Lock()
	if s.cancelled.entered() {
		s.mu.Unlock()
		composite()
		return
	}
	s.top = acquireCancelEntry(composite, s.top)
	s.mu.Unlock()
}

// cancel marks the stack cancelled and invokes every entry LIFO, exactly
// once each. Calling cancel more than once is safe; only the first call
// runs any actions.
func (s *CancelStack) cancel() {
	if !s.cancelled.enter() {
		return
	}
	s.mu.Lock()
	top := s.top
	s.top = nil
	s.mu.Unlock()
	for e := top; e != nil; {
		next := e.next
		e.action()
		releaseCancelEntry(e)
		e = next
	}
}

// isCancelled reports whether cancel has been called.
func (s *CancelStack) isCancelled() bool {
	return s.cancelled.entered()
}

// CancelFunc requests cancellation of the run it was returned for.
type CancelFunc func()

// CancelHandle is returned by RunToCallback and RunToFuture; it exposes
// the active run's cancellation stack without exposing push/pop, which
// are run-loop-internal.
type CancelHandle struct {
	stack *CancelStack
}

// Cancel runs every registered finalizer LIFO and suppresses any further
// delivery to the run's outer callback. Idempotent.
func (h CancelHandle) Cancel() {
	h.stack.cancel()
}

// IsCancelled reports whether Cancel has been called on this handle.
func (h CancelHandle) IsCancelled() bool {
	return h.stack.isCancelled()
}
