// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync"

// ParallelPair runs a and b concurrently on their own forked Contexts
// sharing the parent's executor and options, and completes once both
// have succeeded, combining their results with f. A panic out of f is
// caught and becomes the result's failure, the same protection every
// other user-supplied function in this package gets. If either side
// fails, the other is cancelled and the first error observed becomes
// the result; a second error arriving after that point is routed to
// the executor's FailureReporter.
func ParallelPair[A, B, C any](a Effect[A], b Effect[B], f func(A, B) C) Effect[C] {
	return Effect[C]{n: &asyncNode{
		register: func(ctx *Context, cb internalCallback) {
			var mu sync.Mutex
			var aDone, bDone bool
			var aVal, bVal any
			failed := onceGuard{}

			ctxA := newContext(ctx.executor, ctx.options)
			ctxB := newContext(ctx.executor, ctx.options)
			handleA, handleB := ctxA.handle(), ctxB.handle()

			combine := func(av, bv any) (out any, err error) {
				defer func() {
					if r := recover(); r != nil {
						err = panicToError(r)
					}
				}()
				return f(av.(A), bv.(B)), nil
			}
			complete := func() {
				mu.Lock()
				ready := aDone && bDone
				av, bv := aVal, bVal
				mu.Unlock()
				if !ready || failed.entered() {
					return
				}
				out, err := combine(av, bv)
				if err != nil {
					cb.onError(err)
					return
				}
				cb.onSuccess(out)
			}
			fail := func(other CancelHandle, err error) {
				if !failed.enter() {
					ctx.executor.ReportFailure(err)
					return
				}
				other.Cancel()
				cb.onError(err)
			}

			ctx.executor.ExecuteAsync(func() {
				advance(ctxA, a.n, nil, funcCallback{
					success: func(v any) {
						mu.Lock()
						aDone, aVal = true, v
						mu.Unlock()
						complete()
					},
					failure: func(err error) { fail(handleB, err) },
				})
			})
			ctx.executor.ExecuteAsync(func() {
				advance(ctxB, b.n, nil, funcCallback{
					success: func(v any) {
						mu.Lock()
						bDone, bVal = true, v
						mu.Unlock()
						complete()
					},
					failure: func(err error) { fail(handleA, err) },
				})
			})
		},
	}}
}
