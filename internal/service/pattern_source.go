package service

import (
	"context"

	"github.com/pkg/errors"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/constant"
	"exusiai.dev/gazeseq/internal/model"
)

// PatternSource discovers frequent patterns. Every returned pattern must have
// GlobalSupport >= MinSupport, at most MaxLength symbols and at most MaxPatternSize
// distinct symbols. Repeated symbols are kept in place.
type PatternSource interface {
	Name() string
	Mine(ctx context.Context, traces *model.TraceSet, conf model.MiningConfig) ([]*model.Pattern, error)
}

var ErrUnknownPatternSource = errors.New("unknown pattern source")

// NewPatternSource selects the configured implementation.
func NewPatternSource(conf *appconfig.Config) (PatternSource, error) {
	switch conf.PatternSource {
	case constant.PatternSourcePrefixSpan:
		return NewPrefixSpanSource(), nil
	case constant.PatternSourceFile:
		return NewFilePatternSource(conf.PatternSourceFile), nil
	default:
		return nil, errors.Wrap(ErrUnknownPatternSource, conf.PatternSource)
	}
}
