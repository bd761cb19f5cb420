package rowverifs

import (
	"context"
	"fmt"
	"time"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/repo"
)

var ErrExprMatched = errors.New("reject expr matched")

type compiledRule struct {
	rule    *model.RejectRule
	program *vm.Program
}

type RejectRuleVerifier struct {
	rules []compiledRule
}

// ensure RejectRuleVerifier conforms to Verifier
var _ Verifier = (*RejectRuleVerifier)(nil)

func NewRejectRuleVerifier(rejectRuleRepo *repo.RejectRule) (*RejectRuleVerifier, error) {
	rejectRules, err := rejectRuleRepo.GetAllActiveRejectRules(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load reject rules")
	}

	v := &RejectRuleVerifier{}
	for _, rejectRule := range rejectRules {
		program, err := expr.Compile(rejectRule.Expr, expr.Env(RowContext{}), expr.AsBool())
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to compile reject rule %d", rejectRule.RuleID))
		}
		v.rules = append(v.rules, compiledRule{rule: rejectRule, program: program})
	}
	return v, nil
}

func (d *RejectRuleVerifier) Name() string {
	return "reject_rule"
}

// RowContext is the environment reject rule expressions are evaluated against,
// e.g. `Symbol == "D"` or `Participant in [3, 7] && Chart == "Bar"`.
type RowContext struct {
	Line        int
	Source      string
	Participant int
	Chart       string
	Symbol      string
}

func newRowContext(row *model.HitRow) RowContext {
	return RowContext{
		Line:        row.Line,
		Source:      row.Source,
		Participant: int(row.ParticipantID.Int64),
		Chart:       row.ChartName,
		Symbol:      row.Symbol.String,
	}
}

func (d *RejectRuleVerifier) Verify(ctx context.Context, row *model.HitRow) *Rejection {
	if len(d.rules) == 0 {
		return nil
	}

	rowContext := newRowContext(row)

	start := time.Now()
	defer func() {
		if l := log.Trace(); l.Enabled() {
			l.Dur("duration", time.Since(start)).
				Msg("reject rule(s) evaluated")
		}
	}()

	for _, compiled := range d.rules {
		result, err := expr.Run(compiled.program, rowContext)
		if err != nil {
			log.Error().
				Str("evt.name", "verifier.reject_rule.expr_eval_error").
				Interface("context", rowContext).
				Int("ruleId", compiled.rule.RuleID).
				Err(err).
				Msgf("failed to evaluate reject rule %d", compiled.rule.RuleID)
			continue
		}

		if d.resultHandler(result) {
			log.Debug().
				Str("evt.name", "verifier.reject_rule.rejected").
				Interface("context", rowContext).
				Int("reject_rule.rule_id", compiled.rule.RuleID).
				Msg("reject rule matched, excluding row")

			return &Rejection{
				Message: errors.Wrap(ErrExprMatched, fmt.Sprintf("reject rule %d", compiled.rule.RuleID)).Error(),
			}
		}
	}

	return nil
}

func (d *RejectRuleVerifier) resultHandler(result any) bool {
	switch r := result.(type) {
	case bool:
		return r
	default:
		log.Error().Msgf("reject rule expr result type %T is not supported", result)
		return false
	}
}
