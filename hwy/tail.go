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

package hwy

// TailMask creates a mask with the first count lanes active. It drives the
// partial load and store of the remainder block of an array whose length is
// not a multiple of the vector width.
//
// Example:
//
//	maxLanes := hwy.MaxLanes[float32]()
//	remaining := len(data) % maxLanes
//	if remaining > 0 {
//	    mask := hwy.TailMask[float32](remaining)
//	    v := hwy.MaskLoad(mask, data[len(data)-remaining:])
//	    // ... process tail
//	    hwy.MaskStore(mask, result, output[len(output)-remaining:])
//	}
func TailMask[T Lanes](count int) Mask[T] {
	maxLanes := MaxLanes[T]()
	count = max(0, min(count, maxLanes))

	bits := make([]bool, maxLanes)
	for i := range count {
		bits[i] = true
	}
	return Mask[T]{bits: bits}
}

// MaskLoad loads the lanes where mask is set and zeroes the others. Inactive
// lanes are never read, so src only needs to cover the active ones.
func MaskLoad[T Lanes](mask Mask[T], src []T) Vec[T] {
	result := make([]T, len(mask.bits))
	for i, on := range mask.bits {
		if on {
			result[i] = src[i]
		}
	}
	return Vec[T]{data: result}
}

// MaskStore writes the lanes where mask is set. Inactive lanes of dst are
// neither read nor written.
func MaskStore[T Lanes](mask Mask[T], v Vec[T], dst []T) {
	for i, on := range mask.bits {
		if on {
			dst[i] = v.data[i]
		}
	}
}

// ProcessWithTail walks size elements in vector strides. It calls fullFn for
// every full vector and tailFn once for the remainder, if any. When size is
// below one vector only tailFn runs.
//
// Example:
//
//	hwy.ProcessWithTail[float32](len(data),
//	    func(offset int) {
//	        v := hwy.Load(data[offset:])
//	        hwy.Store(hwy.Add(v, v), output[offset:])
//	    },
//	    func(offset, count int) {
//	        mask := hwy.TailMask[float32](count)
//	        v := hwy.MaskLoad(mask, data[offset:])
//	        hwy.MaskStore(mask, hwy.Add(v, v), output[offset:])
//	    },
//	)
func ProcessWithTail[T Lanes](size int, fullFn func(offset int), tailFn func(offset, count int)) {
	maxLanes := MaxLanes[T]()

	offset := 0
	for ; offset+maxLanes <= size; offset += maxLanes {
		fullFn(offset)
	}

	if remaining := size - offset; remaining > 0 {
		tailFn(offset, remaining)
	}
}
