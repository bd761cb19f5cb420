package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/gazeseq/internal/constant"
	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
)

// PrefixSpanSource mines frequent patterns in-process by prefix growth. A trace
// contains a pattern when some embedding of it has at most MaxGap events between
// each pair of consecutive symbols; support is the fraction of traces that contain it.
type PrefixSpanSource struct{}

var _ PatternSource = (*PrefixSpanSource)(nil)

func NewPrefixSpanSource() *PrefixSpanSource {
	return &PrefixSpanSource{}
}

func (s *PrefixSpanSource) Name() string {
	return constant.PatternSourcePrefixSpan
}

// projection holds, for every trace that still contains the prefix, all indexes
// at which an embedding of the prefix can end.
type projection map[int][]int

type prefixSpanRun struct {
	ctx      context.Context
	conf     model.MiningConfig
	seqs     [][]model.Symbol
	symbols  []model.Symbol
	total    int
	patterns []*model.Pattern
}

func (s *PrefixSpanSource) Mine(ctx context.Context, traces *model.TraceSet, conf model.MiningConfig) ([]*model.Pattern, error) {
	if err := validate.Struct(conf); err != nil {
		return nil, pkgerrors.ErrInvalidConfig.WithMessage("invalid mining configuration: %s", err.Error())
	}
	if traces.Len() == 0 {
		return []*model.Pattern{}, nil
	}

	run := &prefixSpanRun{
		ctx:  ctx,
		conf: conf,
		seqs: lo.Map(traces.Traces(), func(t *model.Trace, _ int) []model.Symbol {
			return t.Symbols()
		}),
		total: traces.Len(),
	}
	run.symbols = lo.Uniq(lo.Flatten(run.seqs))
	sort.Slice(run.symbols, func(i, j int) bool {
		return run.symbols[i] < run.symbols[j]
	})

	for _, symbol := range run.symbols {
		proj := projection{}
		for i, seq := range run.seqs {
			for k, v := range seq {
				if v == symbol {
					proj[i] = append(proj[i], k)
				}
			}
		}
		if err := run.grow([]model.Symbol{symbol}, proj); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(run.patterns, func(i, j int) bool {
		return run.patterns[i].Less(run.patterns[j])
	})

	log.Debug().
		Str("evt.name", "pattern_source.prefixspan.mined").
		Int("traces", run.total).
		Int("symbols", len(run.symbols)).
		Int("patterns", len(run.patterns)).
		Msg("prefixspan mining finished")

	return run.patterns, nil
}

func (r *prefixSpanRun) support(proj projection) float64 {
	return float64(len(proj)) / float64(r.total)
}

func (r *prefixSpanRun) grow(prefix []model.Symbol, proj projection) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}

	support := r.support(proj)
	if support < r.conf.MinSupport {
		return nil
	}
	distinct := len(lo.Uniq(prefix))
	if distinct > r.conf.MaxPatternSize {
		return nil
	}

	r.patterns = append(r.patterns, model.NewPattern(support, prefix...))

	if len(prefix) >= r.conf.MaxLength {
		return nil
	}

	for _, symbol := range r.symbols {
		next := r.extend(proj, symbol)
		if len(next) == 0 {
			continue
		}
		// support is anti-monotone, so an infrequent extension prunes its subtree
		if r.support(next) < r.conf.MinSupport {
			continue
		}
		extended := append(append([]model.Symbol(nil), prefix...), symbol)
		if err := r.grow(extended, next); err != nil {
			return err
		}
	}
	return nil
}

func (r *prefixSpanRun) extend(proj projection, symbol model.Symbol) projection {
	next := projection{}
	for i, ends := range proj {
		seq := r.seqs[i]
		seen := make(map[int]struct{})
		for _, end := range ends {
			limit := end + 1 + r.conf.MaxGap
			if limit > len(seq)-1 {
				limit = len(seq) - 1
			}
			for k := end + 1; k <= limit; k++ {
				if seq[k] != symbol {
					continue
				}
				if _, ok := seen[k]; ok {
					continue
				}
				seen[k] = struct{}{}
				next[i] = append(next[i], k)
			}
		}
		if len(next[i]) > 0 {
			sort.Ints(next[i])
		}
	}
	return next
}
