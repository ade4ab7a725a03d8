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

import "fmt"

// DefaultGrainSize is the library-wide minimum number of elements per chunk.
// Runs no longer than this are evaluated inline on the caller.
const DefaultGrainSize = 32768

// Chunk is the half-open element range [Begin, End) handled by one task.
type Chunk struct {
	Begin, End int
}

// Len returns the number of elements in the chunk.
func (c Chunk) Len() int { return c.End - c.Begin }

func (c Chunk) String() string { return fmt.Sprintf("[%d, %d)", c.Begin, c.End) }

// Partition splits [0, n) into contiguous, disjoint chunks whose union is the
// whole range. A grain <= 0 selects DefaultGrainSize.
//
// Every chunk holds at least grain elements: the range is cut into
// min(workers, n/grain) chunks, at least one, whose lengths differ by at most
// one, longer chunks first. n == 0 yields no chunks.
func Partition(n, grain, workers int) []Chunk {
	if n <= 0 {
		return nil
	}
	if grain <= 0 {
		grain = DefaultGrainSize
	}
	tasks := max(1, min(workers, n/grain))
	size, extra := n/tasks, n%tasks
	chunks := make([]Chunk, tasks)
	begin := 0
	for i := range chunks {
		end := begin + size
		if i < extra {
			end++
		}
		chunks[i] = Chunk{begin, end}
		begin = end
	}
	return chunks
}
