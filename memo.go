// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync"

// memoCell is the shared state behind a Memo: the underlying effect
// runs at most once no matter how many runs reach it concurrently;
// every caller after the first one to arrive just waits for that
// single run's outcome.
type memoCell struct {
	producer      node
	cacheFailures bool

	mu        sync.Mutex
	started   onceGuard
	completed bool
	val       any
	err       error
	waiters   []func(any, error)
}

// newMemoCell wraps producer so its result is computed at most once.
// If cacheFailures is false, a failed run is not cached: the next
// subscriber after a failure restarts the producer from scratch.
func newMemoCell(producer node, cacheFailures bool) *memoCell {
	return &memoCell{producer: producer, cacheFailures: cacheFailures}
}

// subscribe registers cb for the cell's eventual result. If the cell
// already has one, cb runs immediately, synchronously, on the calling
// goroutine; otherwise it is queued and the caller that happens to be
// first to subscribe starts the producer.
func (c *memoCell) subscribe(ctx *Context, cb func(v any, err error)) {
	c.mu.Lock()
	if c.completed {
		v, err := c.val, c.err
		c.mu.Unlock()
		cb(v, err)
		return
	}
	c.waiters = append(c.waiters, cb)
	first := c.started.enter()
	c.mu.Unlock()
	if !first {
		return
	}
	producerCtx := newContext(ctx.executor, ctx.options)
	advance(producerCtx, c.producer, nil, funcCallback{
		success: func(v any) { c.complete(v, nil) },
		failure: func(err error) { c.complete(nil, err) },
	})
}

func (c *memoCell) complete(v any, err error) {
	c.mu.Lock()
	if err != nil && !c.cacheFailures {
		waiters := c.waiters
		c.waiters = nil
		c.started = onceGuard{}
		c.mu.Unlock()
		for _, w := range waiters {
			w(nil, err)
		}
		return
	}
	c.val, c.err = v, err
	c.completed = true
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range waiters {
		w(v, err)
	}
}

// Memo shares a single run of an Effect across every place it is used.
type Memo[A any] struct{ cell *memoCell }

// NewMemo wraps e so that, across every Effect obtained from this
// Memo's Effect method, e itself runs at most once. If cacheFailures is
// false, a failed run is discarded rather than cached: the next
// Effect reached after a failure retries e from scratch.
func NewMemo[A any](e Effect[A], cacheFailures bool) *Memo[A] {
	return &Memo[A]{cell: newMemoCell(e.n, cacheFailures)}
}

// Effect returns an Effect that evaluates to this Memo's shared result.
func (m *Memo[A]) Effect() Effect[A] {
	return Effect[A]{n: &memoNode{cell: m.cell}}
}
