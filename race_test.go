// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"errors"
	"testing"
)

// neverCompletes registers a callback that is never invoked within the
// test's lifetime, letting tests control exactly which side of a Race
// or ParallelPair finishes first instead of relying on timing.
func neverCompletes[A any]() Effect[A] {
	return Async(func(ctx *Context, cb Callback[A]) {})
}

// inlineExecutor runs every hop on the calling goroutine so a test can
// observe effects of a callback invocation without a synchronization
// race against a background goroutine.
type inlineExecutor struct {
	model    ExecutionModel
	reporter FailureReporter
}

func (e *inlineExecutor) ExecuteAsync(f func())          { f() }
func (e *inlineExecutor) ExecuteTrampolined(f func())    { f() }
func (e *inlineExecutor) ReportFailure(err error)        { e.reporter.ReportFailure(err) }
func (e *inlineExecutor) ExecutionModel() ExecutionModel { return e.model }

func TestRaceReturnsTheSynchronousWinner(t *testing.T) {
	e := Race(Pure(1), neverCompletes[int]())
	fut, _ := RunToFuture(e, NewGoroutineExecutor(Synchronous, NopReporter), DefaultOptions())
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestRaceCancelsTheLoser(t *testing.T) {
	cancelled := false
	loser := DoOnCancel(neverCompletes[int](), func() { cancelled = true })
	e := Race(Pure(1), loser)

	exec := &inlineExecutor{model: Synchronous, reporter: NopReporter}
	fut, _ := RunToFuture(e, exec, DefaultOptions())
	if _, err := fut.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cancelled {
		t.Fatal("the losing side should have been cancelled")
	}
}

func TestRacePropagatesWinnerFailure(t *testing.T) {
	boom := errors.New("boom")
	e := Race(Fail[int](boom), neverCompletes[int]())
	fut, _ := RunToFuture(e, NewGoroutineExecutor(Synchronous, NopReporter), DefaultOptions())
	_, err := fut.Wait()
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

func TestRaceReportsLateLoserFailureInsteadOfDeliveringIt(t *testing.T) {
	var reported error
	reporter := FailureReporterFunc(func(err error) { reported = err })
	boom := errors.New("late boom")

	var loserCB Callback[int]
	loser := Async(func(ctx *Context, cb Callback[int]) { loserCB = cb })
	e := Race(Pure(1), loser)

	exec := &inlineExecutor{model: Synchronous, reporter: reporter}
	fut, _ := RunToFuture(e, exec, DefaultOptions())
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %d, want 1", got)
	}

	loserCB.OnError(boom)
	if !errors.Is(reported, boom) {
		t.Fatalf("got reported=%v, want %v", reported, boom)
	}
}
