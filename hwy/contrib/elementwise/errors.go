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

import "github.com/pkg/errors"

// Dispatch-time errors. They are reported before any element is written and
// are wrapped with the offending operation, type or operand; match them with
// errors.Is.
var (
	// ErrUnsupportedType means no kernel is registered for the requested
	// (operation, element type) pair. There is no fallback to another type.
	ErrUnsupportedType = errors.New("unsupported element type")

	// ErrShapeMismatch means the operands do not fit the kernel: wrong count,
	// an element type other than the requested one, or unequal lengths.
	ErrShapeMismatch = errors.New("operand shape mismatch")

	// ErrDuplicateKernel means a kernel was registered twice for the same
	// (operation, element type) pair.
	ErrDuplicateKernel = errors.New("kernel already registered")

	// ErrInvalidParam means a scalar parameter cannot be represented in the
	// kernel's compute type or is outside the operation's domain.
	ErrInvalidParam = errors.New("invalid parameter")
)
