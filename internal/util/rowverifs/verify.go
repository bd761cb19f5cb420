package rowverifs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"exusiai.dev/gazeseq/internal/model"
	"exusiai.dev/gazeseq/internal/pkg/observability"
)

var tracer = otel.Tracer("rowverifs")

type Verifier interface {
	Name() string
	Verify(ctx context.Context, row *model.HitRow) *Rejection
}

type RowVerifiers []Verifier

func NewRowVerifier(participantVerifier *ParticipantVerifier, symbolVerifier *SymbolVerifier, rejectRuleVerifier *RejectRuleVerifier) *RowVerifiers {
	return &RowVerifiers{
		participantVerifier,
		symbolVerifier,
		rejectRuleVerifier,
	}
}

// Verify runs every row through the verifiers in order. The first rejection of a
// row wins and the remaining verifiers are skipped for it.
func (verifiers RowVerifiers) Verify(ctx context.Context, rows []*model.HitRow) (violations Violations) {
	violations = map[int]*Violation{}

	ctx, span := tracer.Start(ctx, "rowverifs.verify")
	defer span.End()

	for rowIndex, row := range rows {
		for _, pipe := range verifiers {
			start := time.Now()

			name := pipe.Name()

			rejection := pipe.Verify(ctx, row)

			observability.RowVerifyDuration.
				WithLabelValues(name).
				Observe(time.Since(start).Seconds())

			if rejection != nil {
				rejection.Line = row.Line
				violations[rowIndex] = &Violation{
					Name:      name,
					Rejection: *rejection,
				}
				observability.RowsRejected.WithLabelValues(name).Inc()

				break
			}
		}
	}

	return violations
}
