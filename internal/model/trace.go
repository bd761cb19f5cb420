package model

import (
	"sort"

	"github.com/samber/lo"
)

// Symbol identifies an AOI. Equality is exact and case-sensitive.
type Symbol string

type Event struct {
	ParticipantID int    `json:"participantId"`
	Position      int    `json:"position"`
	Symbol        Symbol `json:"symbol"`
}

// Trace is the ordered sequence of one participant's events. Positions start at 1
// and increase by one.
type Trace struct {
	ParticipantID int     `json:"participantId"`
	Events        []Event `json:"events"`
}

func (t *Trace) Len() int {
	return len(t.Events)
}

func (t *Trace) Symbols() []Symbol {
	return lo.Map(t.Events, func(e Event, _ int) Symbol {
		return e.Symbol
	})
}

// TraceSet holds exactly one trace per known participant. A participant with an
// empty trace is still a member of the set.
type TraceSet struct {
	traces map[int]*Trace
}

func NewTraceSet(traces []*Trace) *TraceSet {
	return &TraceSet{
		traces: lo.SliceToMap(traces, func(t *Trace) (int, *Trace) {
			return t.ParticipantID, t
		}),
	}
}

func (s *TraceSet) Get(participantID int) (*Trace, bool) {
	t, ok := s.traces[participantID]
	return t, ok
}

func (s *TraceSet) Len() int {
	return len(s.traces)
}

// ParticipantIDs returns all participants in ascending order.
func (s *TraceSet) ParticipantIDs() []int {
	ids := lo.Keys(s.traces)
	sort.Ints(ids)
	return ids
}

// Traces returns all traces ordered by participant.
func (s *TraceSet) Traces() []*Trace {
	return lo.Map(s.ParticipantIDs(), func(id int, _ int) *Trace {
		return s.traces[id]
	})
}
