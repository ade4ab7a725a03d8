// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package elementwise

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/go-highway/ewise/hwy"
)

// Op identifies an elementwise operation, e.g. "leaky_relu".
type Op string

// GrainFunc picks the grain size for an invocation of n elements on a pool of
// the given size. Returning 0 keeps the engine's grain size.
type GrainFunc func(n, workers int) int

type kernelKey struct {
	op    Op
	dtype hwy.DType
}

// Registry is the dispatch table from (operation, element type) to Formula.
// It is populated once at startup and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	kernels map[kernelKey]Formula
	grains  map[Op]GrainFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kernels: make(map[kernelKey]Formula),
		grains:  make(map[Op]GrainFunc),
	}
}

// Register adds the formula for (op, dt). Registering a pair twice is a
// configuration error and returns ErrDuplicateKernel.
func (r *Registry) Register(op Op, dt hwy.DType, f Formula) error {
	if !dt.Valid() {
		return errors.Wrapf(ErrUnsupportedType, "register %s: invalid element type %s", op, dt)
	}
	if f == nil {
		return errors.Errorf("register %s/%s: nil formula", op, dt)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := kernelKey{op, dt}
	if _, ok := r.kernels[key]; ok {
		return errors.Wrapf(ErrDuplicateKernel, "%s/%s", op, dt)
	}
	r.kernels[key] = f
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// registration code running at init time.
func (r *Registry) MustRegister(op Op, dt hwy.DType, f Formula) {
	if err := r.Register(op, dt, f); err != nil {
		panic(err)
	}
}

// Lookup returns the formula for (op, dt), or ErrUnsupportedType.
func (r *Registry) Lookup(op Op, dt hwy.DType) (Formula, error) {
	r.mu.RLock()
	f, ok := r.kernels[kernelKey{op, dt}]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedType, "no %s kernel for %s", op, dt)
	}
	return f, nil
}

// SetGrain overrides the grain size of every invocation of op.
func (r *Registry) SetGrain(op Op, fn GrainFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grains[op] = fn
}

// Grain returns the grain override for op, if any.
func (r *Registry) Grain(op Op) (GrainFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.grains[op]
	return fn, ok
}

// Ops returns the registered operations in sorted order.
func (r *Registry) Ops() []Op {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[Op]bool)
	var ops []Op
	for key := range r.kernels {
		if !seen[key.op] {
			seen[key.op] = true
			ops = append(ops, key.op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// DTypes returns the element types registered for op, in tag order.
func (r *Registry) DTypes(op Op) []hwy.DType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var dts []hwy.DType
	for _, dt := range hwy.AllDTypes() {
		if _, ok := r.kernels[kernelKey{op, dt}]; ok {
			dts = append(dts, dt)
		}
	}
	return dts
}
