// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// externalCallback adapts a user-supplied Callback[A] to the run-loop's
// erased internalCallback.
type externalCallback[A any] struct{ cb Callback[A] }

func (e externalCallback[A]) onSuccess(v any)   { e.cb.OnSuccess(v.(A)) }
func (e externalCallback[A]) onError(err error) { e.cb.OnError(err) }

// RunToCallback starts e on exec under opts, delivering its outcome to
// callback at most once; a run cancelled through the returned
// CancelHandle delivers nothing further. It returns immediately; callback may fire
// before RunToCallback returns (for an Effect that never suspends) or
// any time afterward from any goroutine the executor schedules onto.
// The returned CancelHandle requests cancellation of this run.
func RunToCallback[A any](e Effect[A], exec Executor, opts Options, callback Callback[A]) CancelHandle {
	ctx := newContext(exec, opts)
	sc := newSafeCallback(externalCallback[A]{cb: callback}, exec.ReportFailure)
	advance(ctx, e.n, nil, sc)
	return ctx.handle()
}

// Future is a single outcome that becomes available exactly once.
type Future[A any] struct {
	done chan struct{}
	val  A
	err  error
}

// Done returns a channel that closes once the future's outcome is set.
func (f *Future[A]) Done() <-chan struct{} { return f.done }

// Wait blocks until the future's outcome is available and returns it.
func (f *Future[A]) Wait() (A, error) {
	<-f.done
	return f.val, f.err
}

// TryGet returns the future's outcome without blocking. ok is false if
// the outcome is not yet available.
func (f *Future[A]) TryGet() (val A, err error, ok bool) {
	select {
	case <-f.done:
		return f.val, f.err, true
	default:
		var zero A
		return zero, nil, false
	}
}

// RunToFuture starts e on exec under opts and returns a Future for its
// eventual outcome alongside a CancelHandle for the run.
func RunToFuture[A any](e Effect[A], exec Executor, opts Options) (*Future[A], CancelHandle) {
	fut := &Future[A]{done: make(chan struct{})}
	ctx := newContext(exec, opts)
	sc := newSafeCallback(funcCallback{
		success: func(v any) { fut.val = v.(A); close(fut.done) },
		failure: func(err error) { fut.err = err; close(fut.done) },
	}, exec.ReportFailure)
	advance(ctx, e.n, nil, sc)
	return fut, ctx.handle()
}

// RunSyncMaybe starts e on exec under opts and distinguishes a run that
// completed synchronously (without ever suspending) from one that did
// not. Right holds the value of a synchronous success. Left holds a
// Future covering every other outcome: still pending, or a synchronous
// failure, which Future.TryGet already reports without blocking.
func RunSyncMaybe[A any](e Effect[A], exec Executor, opts Options) (Either[*Future[A], A], CancelHandle) {
	fut := &Future[A]{done: make(chan struct{})}
	ctx := newContext(exec, opts)
	sc := newSafeCallback(funcCallback{
		success: func(v any) { fut.val = v.(A); close(fut.done) },
		failure: func(err error) { fut.err = err; close(fut.done) },
	}, exec.ReportFailure)
	advance(ctx, e.n, nil, sc)
	select {
	case <-fut.done:
		if fut.err == nil {
			return RightOf[*Future[A], A](fut.val), ctx.handle()
		}
		return LeftOf[*Future[A], A](fut), ctx.handle()
	default:
		return LeftOf[*Future[A], A](fut), ctx.handle()
	}
}
