package service

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/constant"
	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/util"
)

var ErrUnknownReportFormat = errors.New("unknown report format")

type ReportWriter struct{}

func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Render encodes the report in the given format ("csv" when empty).
func (s *ReportWriter) Render(report *model.Report, format string) ([]byte, error) {
	switch format {
	case "", constant.ReportFormatCSV:
		return s.renderCSV(report)
	case constant.ReportFormatJSON:
		return s.renderJSON(report)
	default:
		return nil, errors.Wrap(ErrUnknownReportFormat, format)
	}
}

// WriteFile renders the report to path and returns the rendered bytes.
func (s *ReportWriter) WriteFile(path string, report *model.Report, format string) ([]byte, error) {
	b, err := s.Render(report, format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create report directory")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write report")
	}
	return b, nil
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return constant.UndefinedValue
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatNullFloat(f null.Float) string {
	if !f.Valid {
		return constant.UndefinedValue
	}
	return formatFloat(f.Float64)
}

func (s *ReportWriter) renderCSV(report *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	summary := report.Summary
	rows := [][]string{
		{constant.SummaryHeaderMetric, constant.SummaryHeaderValue},
		{constant.SummaryNumberOfSequences, strconv.Itoa(summary.NumberOfSequences)},
		{constant.SummaryTotalAverageCounts, formatNullFloat(summary.TotalAverageCounts)},
		{constant.SummaryAverageSequenceLength, formatNullFloat(summary.AverageSequenceLength)},
		{constant.SummaryAverageUniqueAOIs, formatNullFloat(summary.AverageUniqueAOIs)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, errors.Wrap(err, "failed to write summary block")
	}
	// csv.Writer renders an empty record as an empty quoted field, so the
	// separating blank line goes straight to the buffer
	buf.WriteString("\n")

	header := []string{
		constant.ReportColumnSequence,
		constant.ReportColumnSequenceLength,
		constant.ReportColumnUniqueAOIs,
		constant.ReportColumnSupport,
		constant.ReportColumnTrueSupport,
		constant.ReportColumnAvgCounts,
	}
	header = append(header, lo.Map(report.ParticipantIDs, func(id int, _ int) string {
		return constant.ReportParticipantColumnPrefix + strconv.Itoa(id)
	})...)
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "failed to write header")
	}

	for _, r := range report.Records {
		record := []string{
			r.Pattern.String(),
			strconv.Itoa(r.Length),
			strconv.Itoa(r.UniqueSymbolCount),
			formatFloat(r.Pattern.GlobalSupport),
			formatFloat(r.TrueSupport),
			formatFloat(r.AvgCount),
		}
		for _, id := range report.ParticipantIDs {
			record = append(record, strconv.Itoa(r.Counts[id]))
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write record")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush report")
	}
	return buf.Bytes(), nil
}

type jsonRecord struct {
	Sequence          []model.Symbol `json:"sequence"`
	SequenceText      string         `json:"sequenceText"`
	Length            int            `json:"length"`
	UniqueSymbolCount int            `json:"uniqueAois"`
	Support           float64        `json:"support"`
	TrueSupport       null.Float     `json:"trueSupport"`
	AvgCount          null.Float     `json:"avgCounts"`
	CountStdDev       null.Float     `json:"countStdDev"`
	Counts            map[string]int `json:"counts"`
}

type jsonReport struct {
	*model.Report
	Records []*jsonRecord `json:"records"`
}

func (s *ReportWriter) renderJSON(report *model.Report) ([]byte, error) {
	out := jsonReport{
		Report: report,
		Records: lo.Map(report.Records, func(r *model.PatternRecord, _ int) *jsonRecord {
			return &jsonRecord{
				Sequence:          r.Pattern.Symbols,
				SequenceText:      r.Pattern.String(),
				Length:            r.Length,
				UniqueSymbolCount: r.UniqueSymbolCount,
				Support:           r.Pattern.GlobalSupport,
				TrueSupport:       util.NullableFloat(r.TrueSupport),
				AvgCount:          util.NullableFloat(r.AvgCount),
				CountStdDev:       util.NullableFloat(r.CountStdDev),
				Counts: lo.MapKeys(r.Counts, func(_ int, id int) string {
					return constant.ReportParticipantColumnPrefix + strconv.Itoa(id)
				}),
			}
		}),
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal report")
	}
	return b, nil
}
