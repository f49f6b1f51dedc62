// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync"

// node is the erased representation every Effect[A] carries internally.
// Effect[A] is a thin, typed handle around a node tree; the run-loop
// walks the tree without ever knowing the concrete A of any given
// subtree, which is what lets Bind chain effects of different result
// types without the type-parameter explosion a generic method set
// would otherwise require.
type node interface{ isNode() }

// pureNode already holds its result; the run-loop completes it without
// touching the executor.
type pureNode struct{ val any }

func (*pureNode) isNode() {}

// failNode already holds its error.
type failNode struct{ err error }

func (*failNode) isNode() {}

// evalNode runs thunk exactly once when the run-loop reaches it. A
// panic inside thunk is recovered and turned into the node's failure.
type evalNode struct{ thunk func() (any, error) }

func (*evalNode) isNode() {}

// evalOnceNode shares a single cached result across every time this
// particular node value is reached, including concurrent reaches from
// a race or a parallel pair: the first goroutine to arrive runs thunk,
// everyone else waits for and observes its outcome. A panic inside
// thunk is recovered and cached as the node's failure.
type evalOnceNode struct {
	once  sync.Once
	thunk func() (any, error)
	val   any
	err   error
}

func (*evalOnceNode) isNode() {}

func (o *evalOnceNode) run() (any, error) {
	o.once.Do(func() { o.val, o.err = protectedEval(o.thunk) })
	return o.val, o.err
}

// suspendNode defers building its child node tree until the run-loop
// actually reaches it, so recursive definitions do not build an
// infinite tree up front.
type suspendNode struct{ thunk func() node }

func (*suspendNode) isNode() {}

// bindNode sequences src, then calls k with its result to obtain the
// next node. k runs under recover: a panic becomes the bind's failure
// instead of unwinding the run-loop's own goroutine.
type bindNode struct {
	src node
	k   func(any) node
}

func (*bindNode) isNode() {}

// mapNode transforms src's successful result with f. Map fuses
// consecutive Map calls into a single mapNode when it builds the tree,
// so the run-loop dispatches one mapNode for up to mapFuseLimit+1
// calls instead of one per call. fused counts how many
// Map calls are already folded into f, so Map can cap the chain at
// mapFuseLimit instead of growing f's closure depth without bound.
type mapNode struct {
	src   node
	f     func(any) any
	fused int
}

func (*mapNode) isNode() {}

// handleNode recovers from src's failure: if src fails, h runs with
// the error and its result replaces the failure; if src succeeds, h
// never runs.
type handleNode struct {
	src node
	h   func(error) node
}

func (*handleNode) isNode() {}

// asyncNode suspends the run-loop and hands register a callback that
// resumes it exactly once, later, from any goroutine. register also
// receives the active Context so it can push a cancel action.
type asyncNode struct {
	register func(ctx *Context, cb internalCallback)
}

func (*asyncNode) isNode() {}

// memoNode evaluates to the shared memo cell's result: the first run
// to reach it starts the underlying computation, every other run
// (concurrent or sequential) waits on and reuses that same outcome.
type memoNode struct{ cell *memoCell }

func (*memoNode) isNode() {}

// execOnNode switches the executor used for the remainder of src's
// evaluation. When force is true the switch happens even if exec is
// already the active executor, guaranteeing a real hop and therefore a
// frame-counter reset.
type execOnNode struct {
	src   node
	exec  Executor
	force bool
}

func (*execOnNode) isNode() {}

// withOptionsNode runs src under options produced by transforming the
// options currently in effect.
type withOptionsNode struct {
	src       node
	transform func(Options) Options
}

func (*withOptionsNode) isNode() {}

// withModelNode runs src under a different execution model.
type withModelNode struct {
	src   node
	model ExecutionModel
}

func (*withModelNode) isNode() {}

// doOnCancelNode pushes fin onto the cancel stack before evaluating
// src and pops it once src completes normally; if the run is cancelled
// while src is pending, fin runs as part of unwinding the stack.
type doOnCancelNode struct {
	src node
	fin func()
}

func (*doOnCancelNode) isNode() {}

// withLocalNode installs one key/value pair into the local environment
// for the duration of evaluating src.
type withLocalNode struct {
	src        node
	key, value any
}

func (*withLocalNode) isNode() {}

// askNode reads one key out of the local environment currently in
// effect.
type askNode struct{ key any }

func (*askNode) isNode() {}

// Eval wraps a side-effecting function as an Effect. f runs once, each
// time the returned Effect is reached by the run-loop.
func Eval[A any](f func() (A, error)) Effect[A] {
	return Effect[A]{n: &evalNode{thunk: func() (any, error) { return f() }}}
}

// EvalOnce wraps f so that, no matter how many times the returned
// Effect is reached, f itself runs at most once; every reach after the
// first observes the first call's result.
func EvalOnce[A any](f func() (A, error)) Effect[A] {
	return Effect[A]{n: &evalOnceNode{thunk: func() (any, error) { return f() }}}
}

// Async suspends the run-loop and hands register a Callback to resume
// it. register may call the callback synchronously, from another
// goroutine, or not at all if the operation is cancelled first; it
// must call it at most once.
func Async[A any](register func(ctx *Context, cb Callback[A])) Effect[A] {
	return Effect[A]{n: &asyncNode{
		register: func(ctx *Context, cb internalCallback) {
			register(ctx, typedCallback[A]{inner: cb})
		},
	}}
}

// ExecOn returns an Effect that evaluates e using exec instead of
// whatever executor is currently in effect.
func ExecOn[A any](e Effect[A], exec Executor) Effect[A] {
	return Effect[A]{n: &execOnNode{src: e.n, exec: exec, force: true}}
}

// WithOptions returns an Effect that evaluates e under transform
// applied to the options currently in effect.
func WithOptions[A any](e Effect[A], transform func(Options) Options) Effect[A] {
	return Effect[A]{n: &withOptionsNode{src: e.n, transform: transform}}
}

// WithModel returns an Effect that evaluates e under a different
// execution model.
func WithModel[A any](e Effect[A], model ExecutionModel) Effect[A] {
	return Effect[A]{n: &withModelNode{src: e.n, model: model}}
}

// DoOnCancel returns an Effect that runs onCancel if the run is
// cancelled while e is still pending. Once e completes normally its
// own result is returned and onCancel never runs.
func DoOnCancel[A any](e Effect[A], onCancel func()) Effect[A] {
	return Effect[A]{n: &doOnCancelNode{src: e.n, fin: onCancel}}
}

// SetLocal returns an Effect that evaluates e with key bound to value
// in the local environment visible to Ask and Context.Value.
func SetLocal[A any](e Effect[A], key, value any) Effect[A] {
	return Effect[A]{n: &withLocalNode{src: e.n, key: key, value: value}}
}

// Ask reads key from the local environment installed by SetLocal. It
// fails if no enclosing SetLocal bound that key, or if the bound value
// is not an A.
func Ask[A any](key any) Effect[A] {
	return Effect[A]{n: &askNode{key: key}}
}
