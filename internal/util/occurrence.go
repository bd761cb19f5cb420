package util

import (
	"sort"

	"exusiai.dev/gazeseq/internal/model"
)

// CountOccurrences counts the start positions in trace from which pattern matches
// under the bounded-gap rule:
//
//   - the first pattern symbol must sit exactly at the start position;
//   - having matched at index cur, the next symbol is looked for in
//     [cur+1, cur+1+maxGap] and the earliest hit is taken;
//   - a start whose continuation fails is not retried with a later pick.
//
// Overlapping matches each count. The greedy pick can miss matches that a later
// pick would have completed; this is kept on purpose so counts stay comparable with
// earlier results.
func CountOccurrences(pattern []model.Symbol, trace []model.Symbol, maxGap int) int {
	m, n := len(pattern), len(trace)
	if m == 0 || n < m {
		return 0
	}
	if maxGap < 0 {
		maxGap = 0
	}

	count := 0
	for i := 0; i <= n-m; i++ {
		if trace[i] != pattern[0] {
			continue
		}
		cur := i
		matched := true
		for j := 1; j < m; j++ {
			next := -1
			limit := cur + 1 + maxGap
			if limit > n-1 {
				limit = n - 1
			}
			for k := cur + 1; k <= limit; k++ {
				if trace[k] == pattern[j] {
					next = k
					break
				}
			}
			if next < 0 {
				matched = false
				break
			}
			cur = next
		}
		if matched {
			count++
		}
	}
	return count
}

// PositionIndex lists, per symbol, the ascending trace indices holding that symbol,
// so that each gap probe is a binary search instead of a window scan.
type PositionIndex struct {
	n         int
	positions map[model.Symbol][]int
}

func NewPositionIndex(trace []model.Symbol) *PositionIndex {
	idx := &PositionIndex{
		n:         len(trace),
		positions: make(map[model.Symbol][]int),
	}
	for i, s := range trace {
		idx.positions[s] = append(idx.positions[s], i)
	}
	return idx
}

// Count gives the same result as CountOccurrences on the indexed trace.
func (idx *PositionIndex) Count(pattern []model.Symbol, maxGap int) int {
	m := len(pattern)
	if m == 0 || idx.n < m {
		return 0
	}
	if maxGap < 0 {
		maxGap = 0
	}

	starts := idx.positions[pattern[0]]
	if m == 1 {
		return len(starts)
	}

	lists := make([][]int, m)
	for j, s := range pattern {
		lists[j] = idx.positions[s]
		if len(lists[j]) == 0 {
			return 0
		}
	}

	count := 0
	for _, start := range starts {
		if start > idx.n-m {
			break
		}
		cur := start
		matched := true
		for j := 1; j < m; j++ {
			list := lists[j]
			// earliest position strictly after cur
			k := sort.SearchInts(list, cur+1)
			if k == len(list) || list[k] > cur+1+maxGap {
				matched = false
				break
			}
			cur = list[k]
		}
		if matched {
			count++
		}
	}
	return count
}
