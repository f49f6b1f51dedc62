// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync"

// contKind tags what a contFrame does when the run-loop unwinds to it.
type contKind uint8

const (
	contBind contKind = iota
	contMap
	contHandle
	contRestoreExecutor
	contRestoreOptions
	contRestoreModel
	contRestoreEnv
	contPopCancel
)

// contFrame is one link in the run-loop's explicit continuation stack:
// the heap-allocated stand-in for the native call stack a recursive
// interpreter would otherwise grow without bound on a long Bind chain.
// Pooled for the same reason a CancelStack entry is: pushed on every
// Bind/Map and popped again almost immediately.
type contFrame struct {
	kind contKind
	bind func(any) node
	fn   func(any) any
	h    func(error) node
	exec Executor
	opts Options
	mdl  ExecutionModel
	env  *localEnv
	next *contFrame
}

var contFramePool = sync.Pool{New: func() any { return new(contFrame) }}

func pushBind(next *contFrame, k func(any) node) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.bind, f.next = contBind, k, next
	return f
}

func pushMap(next *contFrame, fn func(any) any) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.fn, f.next = contMap, fn, next
	return f
}

func pushHandle(next *contFrame, h func(error) node) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.h, f.next = contHandle, h, next
	return f
}

func pushRestoreExecutor(next *contFrame, exec Executor) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.exec, f.next = contRestoreExecutor, exec, next
	return f
}

func pushRestoreOptions(next *contFrame, opts Options) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.opts, f.next = contRestoreOptions, opts, next
	return f
}

func pushRestoreModel(next *contFrame, mdl ExecutionModel) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.mdl, f.next = contRestoreModel, mdl, next
	return f
}

func pushRestoreEnv(next *contFrame, env *localEnv) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.env, f.next = contRestoreEnv, env, next
	return f
}

func pushPopCancel(next *contFrame) *contFrame {
	f := contFramePool.Get().(*contFrame)
	f.kind, f.next = contPopCancel, next
	return f
}

func releaseContFrame(f *contFrame) {
	*f = contFrame{}
	contFramePool.Put(f)
}
