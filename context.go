// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Options bundles the run-loop's locally-overridable behaviour.
type Options struct {
	// AutoCancelableBinds, when true, makes every Bind reduction check
	// the cancel stack; when false, cancellation is honoured only at
	// Async suspension boundaries.
	AutoCancelableBinds bool
	// PropagateLocalContext, when true, carries the local environment
	// across real asynchronous hops.
	PropagateLocalContext bool
	// TraceCapacity, when > 0, attaches a trace buffer of this size to
	// every run started with these Options. Zero disables tracing.
	TraceCapacity int
}

var defaultOptionsOnce = sync.OnceValue(computeDefaultOptions)

// DefaultOptions derives Options from the process environment the first
// time it is called and returns that same immutable value on every
// subsequent call. It never mutates a package-level Options value in
// place: sync.OnceValue memoizes the computation, but the returned
// struct is a plain immutable copy, not a shared mutable singleton.
func DefaultOptions() Options {
	return defaultOptionsOnce()
}

func computeDefaultOptions() Options {
	// Best effort: a missing .env is not an error, it simply means the
	// process environment is used as-is.
	_ = godotenv.Load()
	return Options{
		AutoCancelableBinds:   envTruthy("AUTO_CANCELABLE_BINDS"),
		PropagateLocalContext: envTruthy("LOCAL_CONTEXT_PROPAGATION"),
	}
}

func envTruthy(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	switch v {
	case "yes", "on":
		return true
	default:
		return false
	}
}

// Context is the per-run bundle the run-loop threads through dispatch:
// executor, cancellation stack, frame counter, options, plus the
// local-environment and trace extensions. An Effect never owns one; a
// fresh Context is built for each call to
// RunToCallback/RunToFuture/RunSyncMaybe.
type Context struct {
	executor Executor
	cancel   *CancelStack
	frame    *frameCell
	model    ExecutionModel
	options  Options
	env      *localEnv
	trace    *traceBuffer
	runID    uuid.UUID
}

func newContext(exec Executor, opts Options) *Context {
	model := exec.ExecutionModel()
	c := &Context{
		executor: exec,
		cancel:   NewCancelStack(),
		frame:    newFrameCell(model.start()),
		model:    model,
		options:  opts,
		runID:    uuid.New(),
	}
	if opts.TraceCapacity > 0 {
		c.trace = newTraceBuffer(opts.TraceCapacity)
	}
	return c
}

// RunID identifies this run for log correlation.
func (c *Context) RunID() uuid.UUID { return c.runID }

// Executor returns the executor currently in effect (may change across
// ExecOn nodes).
func (c *Context) Executor() Executor { return c.executor }

// Options returns the options currently in effect (may change across
// WithOptions nodes).
func (c *Context) Options() Options { return c.options }

// Value reads the local environment installed by SetLocal/WithLocalValue.
func (c *Context) Value(key any) (any, bool) { return ask(c, key) }

// PushCancel registers a cancel action tied to the currently active
// asynchronous operation. Async registrations call this instead of
// leaking the raw CancelStack.
func (c *Context) PushCancel(action func()) { c.cancel.push(action) }

// PopCancel removes the most recently pushed cancel action, used once
// an asynchronous operation has completed normally.
func (c *Context) PopCancel() { c.cancel.pop() }

// IsCancelled reports whether the run's CancelHandle has been cancelled.
func (c *Context) IsCancelled() bool { return c.cancel.isCancelled() }

// TraceEvents returns a snapshot of accumulated trace events, or nil if
// tracing was not enabled for this run.
func (c *Context) TraceEvents() []TraceEvent {
	if c.trace == nil {
		return nil
	}
	return c.trace.Events()
}

func (c *Context) tell(node string) {
	if c.trace != nil {
		c.trace.tell(node, c.frame.get())
	}
}

// handle returns the CancelHandle backed by this Context's stack.
func (c *Context) handle() CancelHandle { return CancelHandle{stack: c.cancel} }
