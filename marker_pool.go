// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "sync"

// cancelEntryPool recycles the linked-list nodes backing CancelStack: a
// hot path (push on every DoOnCancel / Async registration) should not
// allocate when a freed node is available.
var cancelEntryPool = sync.Pool{
	New: func() any { return new(cancelEntry) },
}

// cancelEntry is one LIFO link in a CancelStack: either a leaf action or a
// nested collection installed by pushCollection.
type cancelEntry struct {
	action func()
	next   *cancelEntry
}

func acquireCancelEntry(action func(), next *cancelEntry) *cancelEntry {
	e := cancelEntryPool.Get().(*cancelEntry)
	e.action = action
	e.next = next
	return e
}

func releaseCancelEntry(e *cancelEntry) {
	e.action = nil
	e.next = nil
	cancelEntryPool.Put(e)
}
