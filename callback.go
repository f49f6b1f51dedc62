// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync/atomic"

// Callback is the single-shot sink an Async registration resumes through.
// Exactly one of OnSuccess or OnError is ever called for a given
// Callback; calling a second method is a contract violation that a
// safeCallback routes to the executor's FailureReporter instead of the
// original caller.
type Callback[A any] interface {
	OnSuccess(a A)
	OnError(err error)
}

// internalCallback is the type-erased shape Callback[A] is reduced to
// once it crosses into the run-loop, mirroring the erased boundary
// between typed constructors and the evaluator (see doc.go).
type internalCallback interface {
	onSuccess(v any)
	onError(err error)
}

// typedCallback adapts an internalCallback back to a typed Callback[A] at
// the Async registration boundary. It satisfies Callback[A] structurally.
type typedCallback[A any] struct{ inner internalCallback }

func (t typedCallback[A]) OnSuccess(a A)     { t.inner.onSuccess(a) }
func (t typedCallback[A]) OnError(err error) { t.inner.onError(err) }

// funcCallback implements internalCallback from two plain functions; used
// wherever the run-loop needs a throwaway sink (e.g. the restart callback
// feeding Pure/Fail back into the trampoline).
type funcCallback struct {
	success func(v any)
	failure func(err error)
}

func (f funcCallback) onSuccess(v any)   { f.success(v) }
func (f funcCallback) onError(err error) { f.failure(err) }

// safeCallback enforces the at-most-once contract on top of an arbitrary
// internalCallback: whichever of onSuccess/onError reaches used first
// is the only one that ever reaches inner. Every call after that is
// routed to report instead of inner, since by then the caller that
// owns inner has already moved on and cannot be resumed again.
type safeCallback struct {
	used   atomic.Uintptr
	inner  internalCallback
	report func(err error)
}

func newSafeCallback(inner internalCallback, report func(err error)) *safeCallback {
	return &safeCallback{inner: inner, report: report}
}

func (c *safeCallback) onSuccess(v any) {
	if c.used.Add(1) != 1 {
		c.report(errDoubleCompletion)
		return
	}
	c.inner.onSuccess(v)
}

func (c *safeCallback) onError(err error) {
	if c.used.Add(1) != 1 {
		c.report(errDoubleCompletion)
		return
	}
	c.inner.onError(err)
}
