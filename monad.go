// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// FlatMap sequences two effects: it runs m, then passes its result to
// f to obtain the effect to run next. FlatMap and Pure are the two
// operations every other combinator in this package is built from.
//
// FlatMap is a free function rather than a method because Go forbids a
// method from introducing a type parameter the receiver does not
// already have; Effect[A].FlatMap could never mention B.
func FlatMap[A, B any](m Effect[A], f func(A) Effect[B]) Effect[B] {
	return Effect[B]{n: &bindNode{
		src: m.n,
		k:   func(a any) node { return f(a.(A)).n },
	}}
}

// mapFuseLimit bounds how many consecutive Map calls are folded into a
// single mapNode's closure. Past the limit Map starts a fresh mapNode
// wrapping the fully-fused one instead of nesting f further, keeping
// the fused function itself cheap to invoke under very long chains.
const mapFuseLimit = 32

// Map transforms m's result with f once m succeeds. Consecutive Map
// calls on the same chain are fused here, as the tree is built, into a
// single mapNode up to mapFuseLimit, so mapping N times costs roughly one
// frame per mapFuseLimit calls, not one per call.
func Map[A, B any](m Effect[A], f func(A) B) Effect[B] {
	if mn, ok := m.n.(*mapNode); ok && mn.fused < mapFuseLimit {
		return Effect[B]{n: &mapNode{
			src:   mn.src,
			f:     func(a any) any { return f(mn.f(a).(A)) },
			fused: mn.fused + 1,
		}}
	}
	return Effect[B]{n: &mapNode{
		src: m.n,
		f:   func(a any) any { return f(a.(A)) },
	}}
}

// Then runs m, discards its result, then runs n.
func Then[A, B any](m Effect[A], n Effect[B]) Effect[B] {
	return FlatMap(m, func(A) Effect[B] { return n })
}
