// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// trampolineQueue runs trampolined work iteratively instead of letting it
// recurse through the calling goroutine's native stack. The first call to
// run on an idle queue drains it in a for loop on the calling goroutine;
// any call that arrives while a drain is already in progress (including
// one made from inside a queued func itself) just appends and returns,
// trusting the in-progress drain to reach it.
type trampolineQueue struct {
	mu       sync.Mutex
	pending  []func()
	draining bool
}

func (q *trampolineQueue) run(f func()) {
	q.mu.Lock()
	q.pending = append(q.pending, f)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()
		next()
	}
}

// Executor is the user-supplied scheduler the run-loop drives every
// Effect on.
type Executor interface {
	// ExecuteAsync schedules f to run later, possibly on another
	// goroutine. The run-loop treats this as a "real" hop: it resets
	// the frame counter.
	ExecuteAsync(f func())
	// ExecuteTrampolined schedules f on a single-threaded trampoline
	// when the executor has one; otherwise it is equivalent to
	// ExecuteAsync. The run-loop treats this as a cheap "light" hop
	// that does not reset the frame counter.
	ExecuteTrampolined(f func())
	// ReportFailure receives errors that cannot be delivered to any
	// callback.
	ReportFailure(err error)
	// ExecutionModel returns this executor's batching model.
	ExecutionModel() ExecutionModel
}

// GoroutineExecutor is the simplest Executor: every async hop is a new
// goroutine, every trampolined hop goes through a trampolineQueue, which
// the goroutine that finds it idle drains inline.
type GoroutineExecutor struct {
	model    ExecutionModel
	reporter FailureReporter
	trampo   trampolineQueue
}

// NewGoroutineExecutor returns a GoroutineExecutor with the given
// batching model. If reporter is nil, failures go to a zerolog console
// writer.
func NewGoroutineExecutor(model ExecutionModel, reporter FailureReporter) *GoroutineExecutor {
	if reporter == nil {
		reporter = defaultReporter()
	}
	return &GoroutineExecutor{model: model, reporter: reporter}
}

func (e *GoroutineExecutor) ExecuteAsync(f func())          { go f() }
func (e *GoroutineExecutor) ExecuteTrampolined(f func())    { e.trampo.run(f) }
func (e *GoroutineExecutor) ReportFailure(err error)        { e.reporter.ReportFailure(err) }
func (e *GoroutineExecutor) ExecutionModel() ExecutionModel { return e.model }

// PoolExecutor bounds concurrency with a weighted semaphore.
// ExecuteAsync never blocks the submitting goroutine: each submitted f
// gets its own goroutine, which waits for a semaphore slot before
// running f, so a saturated pool never wedges the run-loop goroutine
// that called it from inside a Bind.
type PoolExecutor struct {
	sem      *semaphore.Weighted
	model    ExecutionModel
	reporter FailureReporter
	trampo   trampolineQueue
}

// NewPoolExecutor returns a PoolExecutor that runs at most maxConcurrent
// callbacks at once, batching synchronous binds per model.
func NewPoolExecutor(maxConcurrent int64, model ExecutionModel, reporter FailureReporter) *PoolExecutor {
	if reporter == nil {
		reporter = defaultReporter()
	}
	return &PoolExecutor{sem: semaphore.NewWeighted(maxConcurrent), model: model, reporter: reporter}
}

func (e *PoolExecutor) ExecuteAsync(f func()) {
	go func() {
		_ = e.sem.Acquire(context.Background(), 1)
		defer e.sem.Release(1)
		f()
	}()
}

func (e *PoolExecutor) ExecuteTrampolined(f func())    { e.trampo.run(f) }
func (e *PoolExecutor) ReportFailure(err error)        { e.reporter.ReportFailure(err) }
func (e *PoolExecutor) ExecutionModel() ExecutionModel { return e.model }

// NewLoggingReporter returns a FailureReporter that writes each error
// as a structured zerolog event.
func NewLoggingReporter(logger zerolog.Logger) FailureReporter {
	return FailureReporterFunc(func(err error) {
		logger.Error().Err(err).Msg("aeon: unreported failure")
	})
}

var defaultReporterLogger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

func defaultReporter() FailureReporter {
	return NewLoggingReporter(defaultReporterLogger)
}
