// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// RunBuilder composes an Executor with Options across several run
// entry points, instead of repeating the same Options literal at every
// RunToCallback/RunToFuture/RunSyncMaybe call site.
type RunBuilder struct {
	exec Executor
	opts Options
}

// NewRun starts a builder for exec, seeded with DefaultOptions.
func NewRun(exec Executor) RunBuilder {
	return RunBuilder{exec: exec, opts: DefaultOptions()}
}

// WithOptions replaces the builder's Options outright.
func (b RunBuilder) WithOptions(opts Options) RunBuilder {
	b.opts = opts
	return b
}

// AutoCancelableBinds sets Options.AutoCancelableBinds.
func (b RunBuilder) AutoCancelableBinds(v bool) RunBuilder {
	b.opts.AutoCancelableBinds = v
	return b
}

// PropagateLocalContext sets Options.PropagateLocalContext.
func (b RunBuilder) PropagateLocalContext(v bool) RunBuilder {
	b.opts.PropagateLocalContext = v
	return b
}

// TraceCapacity sets Options.TraceCapacity.
func (b RunBuilder) TraceCapacity(n int) RunBuilder {
	b.opts.TraceCapacity = n
	return b
}

// RunCallback runs e under this builder's Executor and Options,
// delivering its outcome to callback.
func RunCallback[A any](b RunBuilder, e Effect[A], callback Callback[A]) CancelHandle {
	return RunToCallback(e, b.exec, b.opts, callback)
}

// RunFuture runs e under this builder's Executor and Options and
// returns a Future for its eventual outcome.
func RunFuture[A any](b RunBuilder, e Effect[A]) (*Future[A], CancelHandle) {
	return RunToFuture(e, b.exec, b.opts)
}

// RunSync runs e under this builder's Executor and Options,
// distinguishing synchronous completion from a still-pending (or
// synchronously failed) run the way RunSyncMaybe does.
func RunSync[A any](b RunBuilder, e Effect[A]) (Either[*Future[A], A], CancelHandle) {
	return RunSyncMaybe(e, b.exec, b.opts)
}
