package repo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/pkg/async"
)

const HitLoadConcurrency = 4

var (
	ErrMissingSymbolColumn = errors.New("input has no aoi symbol column")
	ErrEmptyInput          = errors.New("input has no header row")
)

var (
	ParticipantColumns = []string{"ParticipantID", "Part ID", "participant_id"}
	ChartColumns       = []string{"ChartName", "Chart Type", "chart_name"}
	SymbolColumns      = []string{"AOIHit", "Abbreviated AOI", "aoi_symbol", "AOI"}
	OrdinalColumns     = []string{"Position", "position"}
)

var participantFilePrefix = regexp.MustCompile(`^[Pp](\d+)_`)

type Hit struct{}

func NewHit() *Hit {
	return &Hit{}
}

// LoadFiles reads every file concurrently and returns their rows concatenated in
// the order the paths were given.
func (r *Hit) LoadFiles(ctx context.Context, paths []string) ([]*model.HitRow, error) {
	files, err := async.Map(paths, HitLoadConcurrency, func(path string) ([]*model.HitRow, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return r.LoadFile(path)
	})
	if err != nil {
		return nil, err
	}

	rows := lo.Flatten(files)

	log.Debug().
		Str("evt.name", "repo.hit.loaded").
		Int("files", len(paths)).
		Int("rows", len(rows)).
		Msg("loaded hit rows")

	return rows, nil
}

func (r *Hit) LoadFile(path string) ([]*model.HitRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	rows, err := r.Read(f, path)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to read %s", path))
	}
	return rows, nil
}

type hitColumns struct {
	participant int
	chart       int
	symbol      int
	ordinal     int
}

func resolveColumns(header []string) hitColumns {
	find := func(aliases []string) int {
		for _, alias := range aliases {
			if i := lo.IndexOf(header, alias); i >= 0 {
				return i
			}
		}
		return -1
	}
	return hitColumns{
		participant: find(ParticipantColumns),
		chart:       find(ChartColumns),
		symbol:      find(SymbolColumns),
		ordinal:     find(OrdinalColumns),
	}
}

// Read parses a hit table. source names the input in diagnostics; when the table
// has no participant column, a P<n>_ prefix of its base name supplies the participant.
// Blank chart cells inherit the chart of the previous row.
func (r *Hit) Read(in io.Reader, source string) ([]*model.HitRow, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	header = lo.Map(header, func(h string, _ int) string {
		return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	})

	cols := resolveColumns(header)
	if cols.symbol < 0 {
		return nil, ErrMissingSymbolColumn
	}

	fileParticipant := null.Int{}
	if cols.participant < 0 {
		fileParticipant = ParticipantFromFileName(source)
		if !fileParticipant.Valid {
			log.Warn().
				Str("evt.name", "repo.hit.no_participant").
				Str("source", source).
				Msg("input has neither a participant column nor a P<n>_ file name prefix")
		}
	}

	var rows []*model.HitRow
	lastChart := ""
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}
		line, _ := reader.FieldPos(0)

		row := &model.HitRow{
			Line:          line,
			Source:        source,
			ParticipantID: fileParticipant,
		}
		if cols.participant >= 0 {
			row.ParticipantID = ParseParticipantID(cell(record, cols.participant))
		}
		if cols.chart >= 0 {
			if chart := cell(record, cols.chart); chart != "" {
				lastChart = chart
			}
			row.ChartName = lastChart
		}
		if s := cell(record, cols.symbol); s != "" {
			row.Symbol = null.StringFrom(s)
		}
		if cols.ordinal >= 0 {
			if n, err := strconv.Atoi(cell(record, cols.ordinal)); err == nil {
				row.Ordinal = null.IntFrom(int64(n))
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseParticipantID accepts plain integers and P-prefixed ids ("P5" is 5).
func ParseParticipantID(s string) null.Int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "P"), "p")
	n, err := strconv.Atoi(s)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(int64(n))
}

// ParticipantFromFileName extracts n from a base name like "P12_Processed_Data.csv".
func ParticipantFromFileName(path string) null.Int {
	m := participantFilePrefix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return null.Int{}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(int64(n))
}
