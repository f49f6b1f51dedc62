// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "fmt"

// panicToError converts a recovered panic value into an error so the
// run-loop can fold it into the same Fail path a returned error takes.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("aeon: panic: %v", r)
}

// protectedEval runs thunk, converting a panic into its error result.
func protectedEval(thunk func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return thunk()
}

// protectedSuspend runs thunk, converting a panic into a failNode.
func protectedSuspend(thunk func() node) (n node) {
	defer func() {
		if r := recover(); r != nil {
			n = &failNode{err: panicToError(r)}
		}
	}()
	return thunk()
}

// protectedBind applies a bind continuation, converting a panic into a
// failNode instead of unwinding the run-loop's goroutine.
func protectedBind(k func(any) node, v any) (n node) {
	defer func() {
		if r := recover(); r != nil {
			n = &failNode{err: panicToError(r)}
		}
	}()
	return k(v)
}

// protectedMap applies a map transform, converting a panic into an error.
func protectedMap(f func(any) any, v any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return f(v), nil
}

// protectedHandle applies a Handle recovery function, converting a
// panic into a failNode.
func protectedHandle(h func(error) node, err error) (n node) {
	defer func() {
		if r := recover(); r != nil {
			n = &failNode{err: panicToError(r)}
		}
	}()
	return h(err)
}

// tickAndYield advances the frame counter by one Bind/Map reduction.
// If the execution model calls for a yield at this point, it schedules
// the remainder of the run through the active executor and returns
// true; the caller must stop dispatching immediately. AlwaysAsync
// yields through ExecuteAsync (a real hop, so the frame counter is
// reset); a Batched boundary yields through ExecuteTrampolined, which
// keeps the counter where tick left it so the next batch starts fresh.
func (c *Context) tickAndYield(next node, stack *contFrame, cb internalCallback) bool {
	nf := c.model.next(c.frame.get())
	c.frame.put(nf)
	switch {
	case c.model.kind == modelAlwaysAsync:
		c.frame.put(c.model.reset())
		exec := c.executor
		exec.ExecuteAsync(func() { advance(c, next, stack, cb) })
		return true
	case c.model.kind == modelBatched && nf == 0:
		exec := c.executor
		exec.ExecuteTrampolined(func() { advance(c, next, stack, cb) })
		return true
	default:
		return false
	}
}
