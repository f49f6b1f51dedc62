// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "errors"

// errDoubleCompletion is reported to a FailureReporter whenever a
// safeCallback observes a second completion signal after the first one
// already resolved it.
var errDoubleCompletion = errors.New("aeon: callback invoked more than once")

// errLocalValueMissing is the failure an Ask effect produces when no
// enclosing SetLocal bound the requested key, or bound it to a value
// of the wrong type.
var errLocalValueMissing = errors.New("aeon: no local value bound for key")

// Handle builds the error-branching bind: if the source effect fails,
// recover runs with the error and its result replaces the failure; if
// the source succeeds, recover is never invoked.
func Handle[A any](e Effect[A], recover func(err error) Effect[A]) Effect[A] {
	return Effect[A]{n: &handleNode{
		src: e.n,
		h: func(err error) node {
			return recover(err).n
		},
	}}
}

// Either represents a value that is one of two cases: Left or Right.
// Generalized to a symmetric pair of cases so it can serve both an
// error-or-success result and RunSyncMaybe's
// Either[Future[A], A] "pending-or-already-complete" result.
type Either[L, R any] struct {
	isRight bool
	left    L
	right   R
}

// LeftOf creates a Left value.
func LeftOf[L, R any](l L) Either[L, R] { return Either[L, R]{left: l} }

// RightOf creates a Right value.
func RightOf[L, R any](r R) Either[L, R] { return Either[L, R]{isRight: true, right: r} }

// IsLeft reports whether this is a Left value.
func (e Either[L, R]) IsLeft() bool { return !e.isRight }

// IsRight reports whether this is a Right value.
func (e Either[L, R]) IsRight() bool { return e.isRight }

// Left returns the Left value and true, or the zero value and false.
func (e Either[L, R]) Left() (L, bool) {
	if e.isRight {
		var zero L
		return zero, false
	}
	return e.left, true
}

// Right returns the Right value and true, or the zero value and false.
func (e Either[L, R]) Right() (R, bool) {
	if !e.isRight {
		var zero R
		return zero, false
	}
	return e.right, true
}

// MatchEither pattern-matches on e.
func MatchEither[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
