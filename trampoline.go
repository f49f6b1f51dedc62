// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import "errors"

// errCancelled is the error AutoCancelableBinds reports to the active
// executor's FailureReporter when it observes a cancelled run at a
// Bind/Map reduction point. It never reaches the run's own callback:
// once cancellation is observed, the loop stops and delivers nothing
// further to the caller.
var errCancelled = errors.New("aeon: run cancelled")

// advance is the run-loop: it dispatches cur, and every node after it,
// without growing the native call stack. Sequencing combinators (Bind,
// Map, Handle, ExecOn, WithOptions, WithModel, DoOnCancel, SetLocal)
// push a contFrame describing what to do with the eventual result and
// continue into their source node; terminal nodes (Pure, Fail, and
// whatever Eval/Suspend/Ask reduce to) resolve against that stack
// instead of returning up a call chain. An Async or Memo node suspends
// by registering a callback and returning from this call entirely;
// resumption re-enters advance with the stack it captured, exactly as
// if the suspended node had completed in place.
func advance(ctx *Context, cur node, stack *contFrame, cb internalCallback) {
	for {
		if ctx.options.AutoCancelableBinds && ctx.IsCancelled() {
			ctx.executor.ReportFailure(errCancelled)
			return
		}
		switch t := cur.(type) {
		case *pureNode:
			ctx.tell("Pure")
			nn, ns, val, done := resolveValue(ctx, stack, t.val)
			if done {
				if ctx.IsCancelled() {
					return
				}
				cb.onSuccess(val)
				return
			}
			cur, stack = nn, ns
		case *failNode:
			ctx.tell("Fail")
			nn, ns, err, done := resolveError(ctx, stack, t.err)
			if done {
				if ctx.IsCancelled() {
					ctx.executor.ReportFailure(err)
					return
				}
				cb.onError(err)
				return
			}
			cur, stack = nn, ns
		case *evalNode:
			ctx.tell("Eval")
			v, err := protectedEval(t.thunk)
			if err != nil {
				cur = &failNode{err: err}
			} else {
				cur = &pureNode{val: v}
			}
		case *evalOnceNode:
			ctx.tell("EvalOnce")
			v, err := t.run()
			if err != nil {
				cur = &failNode{err: err}
			} else {
				cur = &pureNode{val: v}
			}
		case *suspendNode:
			ctx.tell("Suspend")
			cur = protectedSuspend(t.thunk)
		case *askNode:
			ctx.tell("Ask")
			v, ok := ask(ctx, t.key)
			if !ok {
				cur = &failNode{err: errLocalValueMissing}
			} else {
				cur = &pureNode{val: v}
			}
		case *bindNode:
			ctx.tell("Bind")
			stack = pushBind(stack, t.k)
			if ctx.tickAndYield(t.src, stack, cb) {
				return
			}
			cur = t.src
		case *mapNode:
			ctx.tell("Map")
			stack = pushMap(stack, t.f)
			if ctx.tickAndYield(t.src, stack, cb) {
				return
			}
			cur = t.src
		case *handleNode:
			ctx.tell("Handle")
			stack = pushHandle(stack, t.h)
			cur = t.src
		case *execOnNode:
			ctx.tell("ExecOn")
			stack = pushRestoreExecutor(stack, ctx.executor)
			ctx.executor = t.exec
			ctx.frame.put(ctx.model.reset())
			if !ctx.options.PropagateLocalContext {
				ctx.env = nil
			}
			src, ns, exec := t.src, stack, t.exec
			exec.ExecuteAsync(func() { advance(ctx, src, ns, cb) })
			return
		case *withOptionsNode:
			ctx.tell("WithOptions")
			stack = pushRestoreOptions(stack, ctx.options)
			ctx.options = t.transform(ctx.options)
			cur = t.src
		case *withModelNode:
			ctx.tell("WithModel")
			stack = pushRestoreModel(stack, ctx.model)
			ctx.model = t.model
			ctx.frame.put(t.model.start())
			cur = t.src
		case *doOnCancelNode:
			ctx.tell("DoOnCancel")
			ctx.PushCancel(t.fin)
			stack = pushPopCancel(stack)
			cur = t.src
		case *withLocalNode:
			ctx.tell("SetLocal")
			stack = pushRestoreEnv(stack, ctx.env)
			ctx.env = WithLocalValue(ctx.env, t.key, t.value)
			cur = t.src
		case *asyncNode:
			ctx.tell("Async")
			if ctx.IsCancelled() {
				ctx.executor.ReportFailure(errCancelled)
				return
			}
			ctx.frame.put(ctx.model.reset())
			rest, exec := stack, ctx.executor
			sc := newSafeCallback(funcCallback{
				success: func(v any) {
					if !ctx.options.PropagateLocalContext {
						ctx.env = nil
					}
					exec.ExecuteAsync(func() { advance(ctx, &pureNode{val: v}, rest, cb) })
				},
				failure: func(err error) {
					if !ctx.options.PropagateLocalContext {
						ctx.env = nil
					}
					exec.ExecuteAsync(func() { advance(ctx, &failNode{err: err}, rest, cb) })
				},
			}, exec.ReportFailure)
			func() {
				defer func() {
					if r := recover(); r != nil {
						if sc.used.Load() != 0 {
							panic(r)
						}
						sc.onError(panicToError(r))
					}
				}()
				t.register(ctx, sc)
			}()
			return
		case *memoNode:
			ctx.tell("Memo")
			ctx.frame.put(ctx.model.reset())
			rest, exec := stack, ctx.executor
			t.cell.subscribe(ctx, func(v any, err error) {
				exec.ExecuteAsync(func() {
					if err != nil {
						advance(ctx, &failNode{err: err}, rest, cb)
					} else {
						advance(ctx, &pureNode{val: v}, rest, cb)
					}
				})
			})
			return
		default:
			cb.onError(errors.New("aeon: unknown node type in run-loop"))
			return
		}
	}
}

// resolveValue pops stack applying it to val: map frames transform it,
// bind frames consume it to produce the next node, handle/structural
// frames pass it through or restore Context state. Returns done=true
// with the final value once the stack is exhausted.
func resolveValue(ctx *Context, stack *contFrame, val any) (nextNode node, nextStack *contFrame, finalVal any, done bool) {
	for stack != nil {
		f := stack
		switch f.kind {
		case contMap:
			nv, err := protectedMap(f.fn, val)
			rest := f.next
			releaseContFrame(f)
			if err != nil {
				return resolveError(ctx, rest, err)
			}
			val = nv
			stack = rest
		case contBind:
			nn := protectedBind(f.bind, val)
			rest := f.next
			releaseContFrame(f)
			return nn, rest, nil, false
		case contHandle:
			stack = f.next
			releaseContFrame(f)
		case contRestoreExecutor:
			ctx.executor = f.exec
			stack = f.next
			releaseContFrame(f)
		case contRestoreOptions:
			ctx.options = f.opts
			stack = f.next
			releaseContFrame(f)
		case contRestoreModel:
			ctx.model = f.mdl
			stack = f.next
			releaseContFrame(f)
		case contRestoreEnv:
			ctx.env = f.env
			stack = f.next
			releaseContFrame(f)
		case contPopCancel:
			ctx.PopCancel()
			stack = f.next
			releaseContFrame(f)
		}
	}
	return nil, nil, val, true
}

// resolveError pops stack applying it to err: handle frames may
// recover it into a new node to evaluate, bind/map frames are skipped,
// structural frames still restore Context state on the way past.
// Returns done=true with the final error once the stack is exhausted.
func resolveError(ctx *Context, stack *contFrame, err error) (nextNode node, nextStack *contFrame, finalErr error, done bool) {
	for stack != nil {
		f := stack
		switch f.kind {
		case contHandle:
			nn := protectedHandle(f.h, err)
			rest := f.next
			releaseContFrame(f)
			return nn, rest, nil, false
		case contBind, contMap:
			stack = f.next
			releaseContFrame(f)
		case contRestoreExecutor:
			ctx.executor = f.exec
			stack = f.next
			releaseContFrame(f)
		case contRestoreOptions:
			ctx.options = f.opts
			stack = f.next
			releaseContFrame(f)
		case contRestoreModel:
			ctx.model = f.mdl
			stack = f.next
			releaseContFrame(f)
		case contRestoreEnv:
			ctx.env = f.env
			stack = f.next
			releaseContFrame(f)
		case contPopCancel:
			ctx.PopCancel()
			stack = f.next
			releaseContFrame(f)
		}
	}
	return nil, nil, err, true
}
