// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync/atomic"

// frameCell is the mutable register backing the run-loop's frame
// counter: a single integer threaded through one run, optionally shared
// across a "light" (execute_trampolined) hop. It is the State-effect
// shape (Get, Put) specialized to the one piece of state the run-loop
// actually threads — the bind-step count since the last real async hop.
type frameCell struct {
	v atomic.Int32
}

func newFrameCell(initial frameIndex) *frameCell {
	c := &frameCell{}
	c.v.Store(int32(initial))
	return c
}

// get reads the current frame value (State's Get).
func (c *frameCell) get() frameIndex {
	return frameIndex(c.v.Load())
}

// put writes a new frame value (State's Put), used when a Bind/Map
// reduction ticks the counter, when a real asynchronous hop (ExecOn,
// Async, Memo, an AlwaysAsync yield) resets it to the model's reset
// value, and when WithModel installs the new model's start value.
func (c *frameCell) put(v frameIndex) {
	c.v.Store(int32(v))
}
