// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// Race runs a and b concurrently, each on its own forked Context
// sharing the parent's executor and options. Whichever completes
// first decides the result; the other side is cancelled immediately,
// cooperating through whatever DoOnCancel finalizers it registered. If
// the loser still manages to deliver an error after losing, that error
// is routed to the executor's FailureReporter instead of the result
// callback, since the result callback has already fired.
func Race[A any](a, b Effect[A]) Effect[A] {
	return Effect[A]{n: &asyncNode{
		register: func(ctx *Context, cb internalCallback) {
			won := onceGuard{}
			ctxA := newContext(ctx.executor, ctx.options)
			ctxB := newContext(ctx.executor, ctx.options)
			handleA, handleB := ctxA.handle(), ctxB.handle()

			finish := func(other CancelHandle, reporter FailureReporter, v any, err error) {
				if !won.enter() {
					if err != nil {
						reporter.ReportFailure(err)
					}
					return
				}
				other.Cancel()
				if err != nil {
					cb.onError(err)
					return
				}
				cb.onSuccess(v)
			}

			ctx.executor.ExecuteAsync(func() {
				advance(ctxA, a.n, nil, funcCallback{
					success: func(v any) { finish(handleB, ctx.executor, v, nil) },
					failure: func(err error) { finish(handleB, ctx.executor, nil, err) },
				})
			})
			ctx.executor.ExecuteAsync(func() {
				advance(ctxB, b.n, nil, funcCallback{
					success: func(v any) { finish(handleA, ctx.executor, v, nil) },
					failure: func(err error) { finish(handleA, ctx.executor, nil, err) },
				})
			})
		},
	}}
}
