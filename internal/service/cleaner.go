package service

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/constant"
	"exusiai.dev/gazeseq/internal/model"
)

// Cleaner prepares raw hit tables for analysis.
type Cleaner struct {
	IgnoredSymbols appconfig.SymbolSet
}

func NewCleaner(conf *appconfig.Config) *Cleaner {
	return &Cleaner{IgnoredSymbols: conf.IgnoredSymbols}
}

// CleanSequences drops rows without a participant or symbol and rows with an
// ignored symbol, orders rows by participant then chart (keeping arrival order
// within each), and collapses consecutive repeats of a symbol per participant.
func (s *Cleaner) CleanSequences(rows []*model.HitRow) []*model.HitRow {
	kept := lo.Filter(rows, func(r *model.HitRow, _ int) bool {
		return r.ParticipantID.Valid && r.Symbol.Valid &&
			!s.IgnoredSymbols.Contains(model.Symbol(r.Symbol.String))
	})

	sorted := append([]*model.HitRow(nil), kept...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ParticipantID.Int64 != sorted[j].ParticipantID.Int64 {
			return sorted[i].ParticipantID.Int64 < sorted[j].ParticipantID.Int64
		}
		return sorted[i].ChartName < sorted[j].ChartName
	})

	cleaned := make([]*model.HitRow, 0, len(sorted))
	for i, r := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if prev.ParticipantID.Int64 == r.ParticipantID.Int64 && prev.Symbol.String == r.Symbol.String {
				continue
			}
		}
		cleaned = append(cleaned, r)
	}

	log.Info().
		Str("evt.name", "cleaner.clean_sequences").
		Int("input", len(rows)).
		Int("filtered", len(rows)-len(kept)).
		Int("collapsed", len(kept)-len(cleaned)).
		Int("output", len(cleaned)).
		Msg("sequences cleaned")

	return cleaned
}

type LegendEntry struct {
	AOI          string
	Abbreviation string
}

// Abbreviate maps every distinct symbol, in first-seen order, to one character of
// constant.AbbreviationChars. Symbols beyond the available characters are left
// without abbreviation and their rows get an empty symbol.
func (s *Cleaner) Abbreviate(rows []*model.HitRow) ([]*model.HitRow, []LegendEntry) {
	unique := lo.Uniq(lo.FilterMap(rows, func(r *model.HitRow, _ int) (string, bool) {
		return r.Symbol.String, r.Symbol.Valid
	}))

	chars := []rune(constant.AbbreviationChars)
	if len(unique) > len(chars) {
		log.Warn().
			Str("evt.name", "cleaner.abbreviations_exhausted").
			Int("aois", len(unique)).
			Int("available", len(chars)).
			Msg("more AOIs than available abbreviations")
	}

	legend := make([]LegendEntry, 0, len(unique))
	mapping := make(map[string]string, len(unique))
	for i, aoi := range unique {
		if i >= len(chars) {
			break
		}
		abbr := string(chars[i])
		mapping[aoi] = abbr
		legend = append(legend, LegendEntry{AOI: aoi, Abbreviation: abbr})
	}

	abbreviated := lo.Map(rows, func(r *model.HitRow, _ int) *model.HitRow {
		c := *r
		if abbr, ok := mapping[r.Symbol.String]; ok && r.Symbol.Valid {
			c.Symbol = null.StringFrom(abbr)
		} else {
			c.Symbol = null.String{}
		}
		return &c
	})

	return abbreviated, legend
}

// WriteHits writes rows as a ParticipantID,ChartName,AOIHit table.
func (s *Cleaner) WriteHits(w io.Writer, rows []*model.HitRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ParticipantID", "ChartName", "AOIHit"}); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, r := range rows {
		participant := ""
		if r.ParticipantID.Valid {
			participant = strconv.FormatInt(r.ParticipantID.Int64, 10)
		}
		if err := cw.Write([]string{participant, r.ChartName, r.Symbol.String}); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Cleaner) WriteLegend(w io.Writer, legend []LegendEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{constant.LegendColumnAOI, constant.LegendColumnAbbreviation}); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, e := range legend {
		if err := cw.Write([]string{e.AOI, e.Abbreviation}); err != nil {
			return errors.Wrap(err, "failed to write legend entry")
		}
	}
	cw.Flush()
	return cw.Error()
}
