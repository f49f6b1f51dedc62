// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// runDetached starts e on a private, synchronous-by-default executor
// and discards its result, reporting a failure if one occurs. It backs
// the cancellation path of Bracket, where release must still run even
// though nothing is waiting on its result.
func runDetached[A any](e Effect[A], reporter FailureReporter) {
	if reporter == nil {
		reporter = defaultReporter()
	}
	exec := NewGoroutineExecutor(Synchronous, reporter)
	ctx := newContext(exec, DefaultOptions())
	advance(ctx, e.n, nil, funcCallback{
		success: func(any) {},
		failure: func(err error) { reporter.ReportFailure(err) },
	})
}

// Bracket acquires a resource, runs use with it, and guarantees release
// runs exactly once: after use completes normally (success or failure)
// or, if the run is cancelled while use is pending, as part of that
// cancellation. A failure from use is preserved and re-reported after
// release completes; a failure from release itself replaces it.
func Bracket[R, A any](acquire Effect[R], release func(R) Effect[struct{}], use func(R) Effect[A]) Effect[A] {
	return FlatMap(acquire, func(r R) Effect[A] {
		guarded := DoOnCancel(use(r), func() {
			runDetached(release(r), nil)
		})
		// Capture use's outcome before releasing, so a failing release is
		// not caught by this Handle and released a second time.
		outcome := Handle(
			Map(guarded, func(a A) Effect[A] { return Pure(a) }),
			func(err error) Effect[Effect[A]] { return Pure(Fail[A](err)) },
		)
		return FlatMap(outcome, func(result Effect[A]) Effect[A] {
			return FlatMap(release(r), func(struct{}) Effect[A] { return result })
		})
	})
}

// OnError runs cleanup only if body fails, then re-raises body's
// original error once cleanup has completed.
func OnError[A any](body Effect[A], cleanup func(err error) Effect[struct{}]) Effect[A] {
	return Handle(body, func(err error) Effect[A] {
		return FlatMap(cleanup(err), func(struct{}) Effect[A] { return Fail[A](err) })
	})
}
