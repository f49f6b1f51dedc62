// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"sync/atomic"
	"testing"
)

// countingExecutor runs every hop inline on the calling goroutine and
// counts how many times each hop kind occurs so tests can observe the
// run-loop's pacing decisions directly.
type countingExecutor struct {
	model            ExecutionModel
	asyncCalls       int32
	trampolinedCalls int32
	reporter         FailureReporter
}

func newCountingExecutor(model ExecutionModel) *countingExecutor {
	return &countingExecutor{model: model, reporter: NopReporter}
}

func (e *countingExecutor) ExecuteAsync(f func()) {
	atomic.AddInt32(&e.asyncCalls, 1)
	f()
}

func (e *countingExecutor) ExecuteTrampolined(f func()) {
	atomic.AddInt32(&e.trampolinedCalls, 1)
	f()
}

func (e *countingExecutor) ReportFailure(err error)        { e.reporter.ReportFailure(err) }
func (e *countingExecutor) ExecutionModel() ExecutionModel { return e.model }

func flatMapChain(depth int) Effect[int] {
	e := Pure(0)
	for i := 0; i < depth; i++ {
		e = FlatMap(e, func(a int) Effect[int] { return Pure(a + 1) })
	}
	return e
}

func TestAlwaysAsyncHopsOnEveryBind(t *testing.T) {
	exec := newCountingExecutor(AlwaysAsync)
	fut, _ := RunToFuture(flatMapChain(3), exec, DefaultOptions())
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	if exec.asyncCalls != 3 {
		t.Fatalf("asyncCalls = %d, want 3 (one real hop per bind)", exec.asyncCalls)
	}
	if exec.trampolinedCalls != 0 {
		t.Fatalf("trampolinedCalls = %d, want 0", exec.trampolinedCalls)
	}
}

func TestSynchronousNeverHops(t *testing.T) {
	exec := newCountingExecutor(Synchronous)
	fut, _ := RunToFuture(flatMapChain(5), exec, DefaultOptions())
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	if exec.asyncCalls != 0 || exec.trampolinedCalls != 0 {
		t.Fatalf("Synchronous should never hop, got async=%d trampolined=%d", exec.asyncCalls, exec.trampolinedCalls)
	}
}

func TestBatchedYieldsOnlyAtBoundary(t *testing.T) {
	exec := newCountingExecutor(Batched(4))
	fut, _ := RunToFuture(flatMapChain(4), exec, DefaultOptions())
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	if exec.asyncCalls != 0 {
		t.Fatalf("Batched must never use a real hop, got asyncCalls=%d", exec.asyncCalls)
	}
	if exec.trampolinedCalls != 1 {
		t.Fatalf("trampolinedCalls = %d, want exactly 1 for a 4-deep chain under Batched(4)", exec.trampolinedCalls)
	}
}

// TestBatchedChainIsStackSafeAcrossManyBoundaries runs a chain deep
// enough to cross many Batched yield boundaries through the real
// GoroutineExecutor, whose ExecuteTrampolined drains iteratively
// rather than recursing back into advance. A recursive
// ExecuteTrampolined would grow the native stack by one frame per
// boundary crossed; this only proves the path doesn't crash under a
// depth that would have, which is the best a non-executing test can do.
func TestBatchedChainIsStackSafeAcrossManyBoundaries(t *testing.T) {
	const depth = 200000
	exec := NewGoroutineExecutor(Batched(8), NopReporter)
	fut, _ := RunToFuture(flatMapChain(depth), exec, DefaultOptions())
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != depth {
		t.Fatalf("got %d, want %d", got, depth)
	}
}

func TestTraceBufferRecordsDispatches(t *testing.T) {
	opts := DefaultOptions()
	opts.TraceCapacity = 16
	var seen []TraceEvent
	tail := Async(func(ctx *Context, cb Callback[int]) {
		seen = ctx.TraceEvents()
		cb.OnSuccess(1)
	})
	e := FlatMap(Pure(0), func(int) Effect[int] { return tail })
	fut, _ := RunToFuture(e, NewGoroutineExecutor(Synchronous, NopReporter), opts)
	if _, err := fut.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) == 0 {
		t.Fatal("expected at least one recorded dispatch before the Async node ran")
	}
}

func TestTraceBufferIsRingBounded(t *testing.T) {
	b := newTraceBuffer(2)
	b.tell("a", 0)
	b.tell("b", 1)
	b.tell("c", 2)
	events := b.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Node != "b" || events[1].Node != "c" {
		t.Fatalf("expected the oldest event to be dropped, got %+v", events)
	}
}
