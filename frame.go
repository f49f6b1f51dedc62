// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "fmt"

// erased marks a type-erased value flowing through the run-loop's node
// tree. Concrete types are recovered via type assertions at the public
// API boundary (Pure/Map/FlatMap/...), never inside the loop itself.
type erased = any

// ExecutionModel controls how the run-loop paces asynchronous yields.
// The zero value is not a valid model; use one of AlwaysAsync,
// Synchronous, or Batched.
type ExecutionModel struct {
	kind modelKind
	n    int32
}

type modelKind uint8

const (
	modelAlwaysAsync modelKind = iota
	modelSynchronous
	modelBatched
)

// AlwaysAsync forces a real asynchronous hop before every Bind/Map
// reduction.
var AlwaysAsync = ExecutionModel{kind: modelAlwaysAsync}

// Synchronous never yields on its own; only Async nodes suspend.
var Synchronous = ExecutionModel{kind: modelSynchronous}

// Batched yields after n synchronous Bind/Map reductions. n must be a
// power of two ≥ 2; Batched panics otherwise.
func Batched(n int32) ExecutionModel {
	if n < 2 || n&(n-1) != 0 {
		panic(fmt.Sprintf("aeon: Batched(%d): n must be a power of two >= 2", n))
	}
	return ExecutionModel{kind: modelBatched, n: n}
}

// String implements fmt.Stringer for diagnostics and trace events.
func (m ExecutionModel) String() string {
	switch m.kind {
	case modelAlwaysAsync:
		return "AlwaysAsync"
	case modelSynchronous:
		return "Synchronous"
	default:
		return fmt.Sprintf("Batched(%d)", m.n)
	}
}

// frameIndex is the per-run bind-step counter: the number of binds
// executed since the last real asynchronous hop. Reaching zero under
// Batched forces a yield.
type frameIndex int32

// start returns the frame value a fresh run (or a resumed light hop)
// begins with: 1 under Batched/Synchronous, 0 under AlwaysAsync (which
// forces an immediate yield before the first bind).
func (m ExecutionModel) start() frameIndex {
	if m.kind == modelAlwaysAsync {
		return 0
	}
	return 1
}

// next advances the frame counter by one bind/map reduction.
func (m ExecutionModel) next(i frameIndex) frameIndex {
	switch m.kind {
	case modelAlwaysAsync:
		return 0
	case modelSynchronous:
		return 1
	default:
		return frameIndex((int32(i) + 1) % m.n)
	}
}

// reset is the frame value installed after a real asynchronous hop.
func (m ExecutionModel) reset() frameIndex {
	if m.kind == modelAlwaysAsync {
		return 0
	}
	return 1
}
