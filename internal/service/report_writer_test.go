package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/model"
)

func sampleReport() *model.Report {
	ab := model.NewPattern(0.5, symbols("A", "B")...)
	return &model.Report{
		RunID:          "01HQ8Z6C3VJ7S2K9X4N5M6P7R8",
		Dataset:        "bar",
		GeneratedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ParticipantIDs: []int{1, 2},
		Records: []*model.PatternRecord{{
			Pattern:           ab,
			Length:            2,
			UniqueSymbolCount: 2,
			Counts:            map[int]int{1: 1, 2: 0},
			AvgCount:          0.5,
			TrueSupport:       0.5,
			CountStdDev:       0.5,
		}},
		Summary: &model.SummaryRecord{
			NumberOfSequences:     1,
			TotalAverageCounts:    null.FloatFrom(0.5),
			AverageSequenceLength: null.FloatFrom(2),
			AverageUniqueAOIs:     null.FloatFrom(2),
		},
	}
}

func TestRenderCSV(t *testing.T) {
	b, err := NewReportWriter().Render(sampleReport(), "")
	require.NoError(t, err)

	assert.Equal(t, "Metric,Value\n"+
		"Number of Sequences,1\n"+
		"Total Average Counts,0.5\n"+
		"Average Sequence Length,2\n"+
		"Average Unique AOIs,2\n"+
		"\n"+
		"Sequence,Sequence_Length,Unique_AOIs,Support,True_Support,Avg_Counts,Participant_1,Participant_2\n"+
		"\"[A, B]\",2,2,0.5,0.5,0.5,1,0\n", string(b))
}

func TestRenderCSVUndefinedSummary(t *testing.T) {
	report := &model.Report{
		ParticipantIDs: []int{3},
		Summary:        &model.SummaryRecord{},
	}

	b, err := NewReportWriter().Render(report, "csv")
	require.NoError(t, err)

	assert.Equal(t, "Metric,Value\n"+
		"Number of Sequences,0\n"+
		"Total Average Counts,NaN\n"+
		"Average Sequence Length,NaN\n"+
		"Average Unique AOIs,NaN\n"+
		"\n"+
		"Sequence,Sequence_Length,Unique_AOIs,Support,True_Support,Avg_Counts,Participant_3\n", string(b))
}

func TestRenderJSON(t *testing.T) {
	b, err := NewReportWriter().Render(sampleReport(), "json")
	require.NoError(t, err)

	doc := gjson.ParseBytes(b)
	assert.Equal(t, "bar", doc.Get("dataset").String())
	assert.Equal(t, int64(1), doc.Get("summary.numberOfSequences").Int())
	assert.Equal(t, "[A, B]", doc.Get("records.0.sequenceText").String())
	assert.Len(t, doc.Get("records.0.sequence").Array(), 2)
	assert.Equal(t, int64(1), doc.Get("records.0.counts.Participant_1").Int())
	assert.Equal(t, int64(0), doc.Get("records.0.counts.Participant_2").Int())
	assert.Equal(t, 0.5, doc.Get("records.0.trueSupport").Float())

	empty := &model.Report{Summary: &model.SummaryRecord{}}
	b, err = NewReportWriter().Render(empty, "json")
	require.NoError(t, err)
	assert.Equal(t, gjson.Null, gjson.GetBytes(b, "summary.totalAverageCounts").Type)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := NewReportWriter().Render(sampleReport(), "xlsx")
	assert.ErrorIs(t, err, ErrUnknownReportFormat)
}

func TestWriteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bar_results.csv")

	b, err := NewReportWriter().WriteFile(path, sampleReport(), "csv")
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, b, written)
}
