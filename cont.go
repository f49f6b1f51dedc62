// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// Effect[A] is a lazy, cancellable description of a computation that
// eventually produces an A or fails with an error. Building an Effect
// never runs anything: Pure, Fail, Eval, Bind and friends only grow a
// node tree. Nothing happens until that tree is handed to
// RunToCallback, RunToFuture or RunSyncMaybe.
//
// The zero Effect[A] is not useful; always obtain one from a
// constructor in this package.
type Effect[A any] struct{ n node }

// Pure returns an Effect that already holds a, with no work to do.
func Pure[A any](a A) Effect[A] {
	return Effect[A]{n: &pureNode{val: a}}
}

// Fail returns an Effect that has already failed with err. err must
// not be nil.
func Fail[A any](err error) Effect[A] {
	return Effect[A]{n: &failNode{err: err}}
}

// Suspend defers calling f until the run-loop reaches this point,
// which lets f build a self-referential Effect (for example a retry
// loop) without recursing at construction time.
func Suspend[A any](f func() Effect[A]) Effect[A] {
	return Effect[A]{n: &suspendNode{thunk: func() node { return f().n }}}
}
