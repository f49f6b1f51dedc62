// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoRunsProducerOnce(t *testing.T) {
	var calls int32
	m := NewMemo(Eval(func() (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}), true)

	exec := NewGoroutineExecutor(Synchronous, NopReporter)
	opts := DefaultOptions()

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fut, _ := RunToFuture(m.Effect(), exec, opts)
			v, err := fut.Wait()
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("producer ran %d times, want 1", calls)
	}
	for _, v := range results {
		if v != 1 {
			t.Fatalf("got result %d, want 1 for every subscriber", v)
		}
	}
}

func TestMemoCachesFailureWhenRequested(t *testing.T) {
	var calls int32
	boom := errors.New("boom")
	m := NewMemo(Eval(func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, boom
	}), true)

	exec := NewGoroutineExecutor(Synchronous, NopReporter)
	opts := DefaultOptions()

	for i := 0; i < 3; i++ {
		fut, _ := RunToFuture(m.Effect(), exec, opts)
		_, err := fut.Wait()
		if !errors.Is(err, boom) {
			t.Fatalf("got %v, want %v", err, boom)
		}
	}
	if calls != 1 {
		t.Fatalf("producer ran %d times, want 1 (failure should be cached)", calls)
	}
}

func TestMemoRetriesAfterUncachedFailure(t *testing.T) {
	var calls int32
	boom := errors.New("boom")
	m := NewMemo(Eval(func() (int, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return 0, boom
		}
		return int(n), nil
	}), false)

	exec := NewGoroutineExecutor(Synchronous, NopReporter)
	opts := DefaultOptions()

	fut1, _ := RunToFuture(m.Effect(), exec, opts)
	_, err := fut1.Wait()
	if !errors.Is(err, boom) {
		t.Fatalf("first run: got %v, want %v", err, boom)
	}

	fut2, _ := RunToFuture(m.Effect(), exec, opts)
	v, err := fut2.Wait()
	if err != nil {
		t.Fatalf("second run: unexpected error %v", err)
	}
	if v != 2 {
		t.Fatalf("second run: got %d, want 2", v)
	}
	if calls != 2 {
		t.Fatalf("producer ran %d times, want exactly 2", calls)
	}
}
