package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"exusiai.dev/gazeseq/internal/constant"
	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
)

var (
	ErrUnsupportedPatternFile = errors.New("unsupported pattern file extension")
	ErrMissingPatternColumn   = errors.New("pattern file lacks a sequence or support column")
)

// FilePatternSource reads patterns produced by an external miner. CSV files carry
// Sequence and Support columns with bracketed sequence text; JSON files hold an
// array of {"sequence": ..., "support": ...} where sequence is bracketed text or an
// array of symbols. Text is parsed into patterns here and nowhere else.
type FilePatternSource struct {
	Path string
}

var _ PatternSource = (*FilePatternSource)(nil)

func NewFilePatternSource(path string) *FilePatternSource {
	return &FilePatternSource{Path: path}
}

func (s *FilePatternSource) Name() string {
	return constant.PatternSourceFile
}

func (s *FilePatternSource) Mine(ctx context.Context, traces *model.TraceSet, conf model.MiningConfig) ([]*model.Pattern, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, pkgerrors.ErrPatternSourceUnavailable.
			WithMessage("failed to read pattern file %s", s.Path).
			WithCause(err)
	}

	var patterns []*model.Pattern
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv":
		patterns, err = ParsePatternCSV(bytes.NewReader(b))
	case ".json":
		patterns, err = ParsePatternJSON(b)
	default:
		err = errors.Wrap(ErrUnsupportedPatternFile, s.Path)
	}
	if err != nil {
		return nil, pkgerrors.ErrPatternSourceUnavailable.
			WithMessage("failed to parse pattern file %s", s.Path).
			WithCause(err)
	}

	kept := lo.Filter(patterns, func(p *model.Pattern, _ int) bool {
		return p.GlobalSupport >= conf.MinSupport &&
			p.Len() <= conf.MaxLength &&
			p.UniqueSymbolCount() <= conf.MaxPatternSize
	})
	if dropped := len(patterns) - len(kept); dropped > 0 {
		log.Warn().
			Str("evt.name", "pattern_source.file.out_of_bounds").
			Str("path", s.Path).
			Int("dropped", dropped).
			Msg("patterns outside the mining configuration were dropped")
	}

	return kept, nil
}

func ParsePatternCSV(in io.Reader) ([]*model.Pattern, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []*model.Pattern{}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	header = lo.Map(header, func(h string, _ int) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
	seqCol := lo.IndexOf(header, "sequence")
	supportCol := lo.IndexOf(header, "support")
	if seqCol < 0 || supportCol < 0 {
		return nil, ErrMissingPatternColumn
	}

	patterns := []*model.Pattern{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}
		if seqCol >= len(record) || supportCol >= len(record) {
			return nil, errors.Wrap(ErrMissingPatternColumn, "short record")
		}
		support, err := strconv.ParseFloat(strings.TrimSpace(record[supportCol]), 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid support")
		}
		p, err := model.ParsePattern(record[seqCol], support)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func ParsePatternJSON(b []byte) ([]*model.Pattern, error) {
	if !gjson.ValidBytes(b) {
		return nil, errors.New("invalid json")
	}
	root := gjson.ParseBytes(b)
	if !root.IsArray() {
		return nil, errors.New("pattern json must be an array")
	}

	patterns := []*model.Pattern{}
	var parseErr error
	root.ForEach(func(_, item gjson.Result) bool {
		seq := item.Get("sequence")
		support := item.Get("support")
		if !seq.Exists() || support.Type != gjson.Number {
			parseErr = ErrMissingPatternColumn
			return false
		}

		var p *model.Pattern
		if seq.IsArray() {
			symbols := lo.Map(seq.Array(), func(r gjson.Result, _ int) model.Symbol {
				return model.Symbol(r.String())
			})
			if len(symbols) == 0 || lo.Contains(symbols, "") {
				parseErr = errors.Wrap(model.ErrInvalidPatternText, seq.Raw)
				return false
			}
			p = model.NewPattern(support.Float(), symbols...)
		} else {
			var err error
			p, err = model.ParsePattern(seq.String(), support.Float())
			if err != nil {
				parseErr = err
				return false
			}
		}
		patterns = append(patterns, p)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return patterns, nil
}
