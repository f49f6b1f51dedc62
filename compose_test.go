// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "testing"

func TestRunBuilderFluentOptions(t *testing.T) {
	b := NewRun(NewGoroutineExecutor(Synchronous, NopReporter)).
		AutoCancelableBinds(true).
		PropagateLocalContext(true).
		TraceCapacity(32)

	if !b.opts.AutoCancelableBinds {
		t.Fatal("AutoCancelableBinds should be set")
	}
	if !b.opts.PropagateLocalContext {
		t.Fatal("PropagateLocalContext should be set")
	}
	if b.opts.TraceCapacity != 32 {
		t.Fatalf("got TraceCapacity %d, want 32", b.opts.TraceCapacity)
	}
}

func TestRunBuilderWithOptionsReplacesOutright(t *testing.T) {
	b := NewRun(NewGoroutineExecutor(Synchronous, NopReporter)).AutoCancelableBinds(true)
	b = b.WithOptions(Options{TraceCapacity: 4})
	if b.opts.AutoCancelableBinds {
		t.Fatal("WithOptions should replace the whole Options value, not merge into it")
	}
	if b.opts.TraceCapacity != 4 {
		t.Fatalf("got TraceCapacity %d, want 4", b.opts.TraceCapacity)
	}
}

func TestRunFutureUsesBuilderSettings(t *testing.T) {
	b := NewRun(NewGoroutineExecutor(Synchronous, NopReporter))
	fut, _ := RunFuture(b, Pure(11))
	got, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 11 {
		t.Fatalf("got %d, want 11", got)
	}
}

func TestRunSyncUsesBuilderSettings(t *testing.T) {
	b := NewRun(NewGoroutineExecutor(Synchronous, NopReporter))
	res, _ := RunSync(b, Pure(12))
	v, ok := res.Right()
	if !ok {
		t.Fatal("expected a synchronous success")
	}
	if v != 12 {
		t.Fatalf("got %d, want 12", v)
	}
}

func TestRunCallbackUsesBuilderSettings(t *testing.T) {
	b := NewRun(NewGoroutineExecutor(Synchronous, NopReporter))
	cb := newCollectingCallback()
	RunCallback(b, Pure(13), cb)
	select {
	case v := <-cb.success:
		if v != 13 {
			t.Fatalf("got %d, want 13", v)
		}
	case err := <-cb.failure:
		t.Fatalf("unexpected failure: %v", err)
	}
}
