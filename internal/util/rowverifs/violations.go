package rowverifs

import "sort"

// Violations maps the index of a rejected row to the first rejection it received.
type Violations map[int]*Violation

func (v Violations) Rejected(index int) bool {
	_, ok := v[index]
	return ok
}

// Indexes returns the rejected row indexes in ascending order.
func (v Violations) Indexes() []int {
	indexes := make([]int, 0, len(v))
	for i := range v {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

type Violation struct {
	Rejection
	Name string `json:"name"`
}

type Rejection struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}
