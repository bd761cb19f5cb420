package model

// CountTable is the pattern × participant grid of occurrence counts. It is filled
// once by the occurrence counter and only read afterwards.
type CountTable struct {
	participants []int
	index        map[int]int
	rows         map[string][]int
}

// NewCountTable allocates a zeroed row for every pattern over the given participants.
func NewCountTable(patterns []*Pattern, participants []int) *CountTable {
	t := &CountTable{
		participants: append([]int(nil), participants...),
		index:        make(map[int]int, len(participants)),
		rows:         make(map[string][]int, len(patterns)),
	}
	for i, id := range participants {
		t.index[id] = i
	}
	for _, p := range patterns {
		t.rows[p.Key()] = make([]int, len(participants))
	}
	return t
}

// Cell returns the address of a single cell. Distinct (pattern, participant) pairs
// never share a cell, so concurrent writers to different cells do not race.
func (t *CountTable) Cell(patternKey string, participantID int) *int {
	row, ok := t.rows[patternKey]
	if !ok {
		return nil
	}
	i, ok := t.index[participantID]
	if !ok {
		return nil
	}
	return &row[i]
}

// Count returns the count for a known pattern and participant. Unknown pairs report ok=false.
func (t *CountTable) Count(patternKey string, participantID int) (count int, ok bool) {
	c := t.Cell(patternKey, participantID)
	if c == nil {
		return 0, false
	}
	return *c, true
}

// Row returns a copy of a pattern's counts keyed by participant.
func (t *CountTable) Row(patternKey string) map[int]int {
	row, ok := t.rows[patternKey]
	if !ok {
		return nil
	}
	m := make(map[int]int, len(row))
	for i, id := range t.participants {
		m[id] = row[i]
	}
	return m
}

func (t *CountTable) Participants() []int {
	return append([]int(nil), t.participants...)
}
