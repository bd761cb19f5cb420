package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// PatternRecord joins a pattern with everything derived from its occurrence counts.
type PatternRecord struct {
	Pattern           *Pattern    `json:"-"`
	Length            int         `json:"length"`
	UniqueSymbolCount int         `json:"uniqueSymbolCount"`
	Counts            map[int]int `json:"counts"`

	// AvgCount is the mean count over participants with a trace, zeros included.
	// NaN when there are no participants.
	AvgCount float64 `json:"-"`
	// TrueSupport is the fraction of participants with at least one match.
	// NaN when there are no participants.
	TrueSupport float64 `json:"-"`
	CountStdDev float64 `json:"-"`
}

type SummaryRecord struct {
	NumberOfSequences     int        `json:"numberOfSequences"`
	TotalAverageCounts    null.Float `json:"totalAverageCounts"`
	AverageSequenceLength null.Float `json:"averageSequenceLength"`
	AverageUniqueAOIs     null.Float `json:"averageUniqueAois"`
}

// MiningConfig parameterizes a pattern source. MaxGap here only affects mining;
// occurrence counting takes its own gap.
type MiningConfig struct {
	MinSupport     float64 `json:"minSupport" validate:"gt=0,lte=1"`
	MaxGap         int     `json:"maxGap" validate:"gte=0"`
	MaxLength      int     `json:"maxLength" validate:"gte=1"`
	MaxPatternSize int     `json:"maxPatternSize" validate:"gte=1"`
}

type Report struct {
	RunID          string           `json:"runId"`
	Dataset        string           `json:"dataset"`
	GeneratedAt    time.Time        `json:"generatedAt"`
	Summary        *SummaryRecord   `json:"summary"`
	Records        []*PatternRecord `json:"records"`
	ParticipantIDs []int            `json:"participantIds"`
	SkippedRows    int              `json:"skippedRows"`
	EmptyTraces    []int            `json:"emptyTraces"`
	Mining         MiningConfig     `json:"mining"`
	CountMaxGap    int              `json:"countMaxGap"`
}
