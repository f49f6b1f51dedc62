// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aeon provides a lazy, cancellable, asynchronous effect
// system for Go.
//
// The core type [Effect] describes a computation that eventually
// produces a value or fails with an error. Building an Effect never
// runs anything; nothing happens until it reaches RunToCallback,
// RunToFuture, or RunSyncMaybe.
//
// # Core Operations
//
//   - [Pure]: Lift an already-known value
//   - [Fail]: Lift an already-known error
//   - [Eval]: Wrap a side-effecting function, run once per reach
//   - [EvalOnce]: Like Eval, but the thunk itself runs at most once
//   - [Suspend]: Defer building an Effect tree until it is reached
//   - [FlatMap]: Sequence two effects, threading the first result
//   - [Map]: Transform a successful result, fused across a chain
//   - [Then]: Sequence, discarding the first result
//   - [Handle]: Recover from a failure
//   - [Async]: Suspend on a user-supplied Callback registration
//   - [Ask], [SetLocal]: Read and install local environment values
//
// # Execution Model
//
// [ExecutionModel] paces how often the run-loop yields back through
// the active [Executor]:
//
//   - [AlwaysAsync]: yield before every Bind/Map reduction
//   - [Synchronous]: never yield on its own
//   - [Batched]: yield every N reductions, N a power of two
//
// # Running an Effect
//
//   - [RunToCallback]: fire-and-forget, delivering the outcome to a [Callback]
//   - [RunToFuture]: returns a [Future] for the eventual outcome
//   - [RunSyncMaybe]: distinguishes synchronous completion from a pending run
//   - [RunBuilder]: composes an [Executor] and [Options] across several runs
//
// Every run entry point also returns a [CancelHandle] for requesting
// cancellation, which unwinds whatever finalizers [DoOnCancel] pushed.
//
// # Concurrency
//
//   - [Race]: first of two effects to complete wins, the other is cancelled
//   - [ParallelPair]: run two effects concurrently, combine both results with f
//   - [Memo]: share a single run of an effect across every place it is used
//
// # Executors
//
//   - [GoroutineExecutor]: every asynchronous hop is a new goroutine
//   - [PoolExecutor]: bounds concurrency with a weighted semaphore
//   - [FailureReporter]: sink for errors that cannot reach any callback
//
// # Resource Safety
//
//   - [Bracket]: acquire-release-use with guaranteed cleanup
//   - [OnError]: run cleanup only on failure, then re-raise
//
// # Interop
//
//   - [Lift]: wrap a foreign (value, error) callback API as an Effect
//   - [Unlift]: turn an Effect into a callback API a foreign caller can invoke
//
// # Either
//
// [Either] represents one of two cases, Left or Right:
//
//   - [LeftOf], [RightOf]: constructors
//   - [Either.IsLeft], [Either.IsRight]: predicates
//   - [Either.Left], [Either.Right]: accessors
//   - [MatchEither]: pattern matching
package aeon
