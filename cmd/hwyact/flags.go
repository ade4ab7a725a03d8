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

package main

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/go-highway/ewise/hwy"
	"github.com/go-highway/ewise/hwy/contrib/algo"
	"github.com/go-highway/ewise/hwy/contrib/elementwise"
)

// parseParams converts --param name=value flags into kernel parameters.
func parseParams(raw map[string]string) (elementwise.Params, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(elementwise.Params, len(raw))
	for name, val := range raw {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %q", name)
		}
		params[name] = f
	}
	return params, nil
}

// parseDTypes parses element type names, returning fallback when names is
// empty.
func parseDTypes(names []string, fallback []hwy.DType) ([]hwy.DType, error) {
	if len(names) == 0 {
		return fallback, nil
	}
	dts := make([]hwy.DType, 0, len(names))
	for _, name := range names {
		dt, err := hwy.ParseDType(name)
		if err != nil {
			return nil, err
		}
		dts = append(dts, dt)
	}
	return dts, nil
}

var modes = []algo.Mode{algo.MaskedTail, algo.ScalarTail, algo.ScalarOnly}

// parseMode maps a name as printed by algo.Mode.String back to the mode.
func parseMode(name string) (algo.Mode, error) {
	for _, m := range modes {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown mode %q", name)
}
