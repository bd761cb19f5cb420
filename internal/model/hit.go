package model

import "gopkg.in/guregu/null.v3"

// HitRow is a single AOI hit as read from an input table, before verification.
type HitRow struct {
	// Line is the 1-based line number in the source, used in diagnostics only.
	Line int `json:"line"`
	// Source is the file the row was read from.
	Source string `json:"source,omitempty"`

	ParticipantID null.Int    `json:"participantId" swaggertype:"integer"`
	ChartName     string      `json:"chartName"`
	Symbol        null.String `json:"symbol" swaggertype:"string"`

	// Ordinal is an optional explicit per-participant ordering supplied by the input.
	Ordinal null.Int `json:"ordinal,omitempty" swaggertype:"integer"`
}
