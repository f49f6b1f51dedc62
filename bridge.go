// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// resolveCallback adapts a plain (value, error) resolver function to
// Callback[A], the shape Lift and Unlift cross between.
type resolveCallback[A any] struct{ resolve func(A, error) }

func (r resolveCallback[A]) OnSuccess(a A)     { r.resolve(a, nil) }
func (r resolveCallback[A]) OnError(err error) { var zero A; r.resolve(zero, err) }

// Lift wraps a foreign callback-style asynchronous API — one that
// takes a single (value, error) resolver and calls it exactly once —
// as an Effect. This is the common shape of SDK calls and third-party
// client libraries that were never written against this package.
func Lift[A any](register func(resolve func(A, error))) Effect[A] {
	return Async[A](func(_ *Context, cb Callback[A]) {
		register(func(v A, err error) {
			if err != nil {
				cb.OnError(err)
				return
			}
			cb.OnSuccess(v)
		})
	})
}

// Unlift is Lift's inverse: it turns an Effect into a plain
// callback-style function a foreign caller can invoke without knowing
// anything about Executor or Options. Each call starts an independent
// run of e on exec under opts and returns a CancelFunc for that run.
func Unlift[A any](e Effect[A], exec Executor, opts Options) func(resolve func(A, error)) CancelFunc {
	return func(resolve func(A, error)) CancelFunc {
		h := RunToCallback(e, exec, opts, resolveCallback[A]{resolve: resolve})
		return h.Cancel
	}
}
