// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// localEnv is an immutable, Reader-shaped environment chain: reading a
// key walks the parent links until a match or the root. It backs
// Options.PropagateLocalContext: a value installed with SetLocal is
// visible to the nodes evaluated inside that SetLocal's source, and is
// carried across an ExecOn/Async hop only when the option is set.
type localEnv struct {
	key    any
	value  any
	parent *localEnv
}

// WithLocalValue returns a new environment extending env with key/value.
// A nil env is treated as the empty environment.
func WithLocalValue(env *localEnv, key, value any) *localEnv {
	return &localEnv{key: key, value: value, parent: env}
}

// LocalValue walks the chain for key, returning (nil, false) if absent.
func LocalValue(env *localEnv, key any) (any, bool) {
	for e := env; e != nil; e = e.parent {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// ask performs a read of the current Context's local environment. It is
// a pure function of the ambient environment rather than an effect
// operation in its own right; Ask wraps it into an askNode.
func ask(ctx *Context, key any) (any, bool) {
	return LocalValue(ctx.env, key)
}
