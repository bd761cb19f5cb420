package rowverifs

import (
	"context"

	"github.com/pkg/errors"

	"exusiai.dev/gazeseq/internal/model"
)

var (
	ErrParticipantEmpty   = errors.New("participant id is empty")
	ErrParticipantInvalid = errors.New("participant id must be positive")
)

type ParticipantVerifier struct{}

// ensure ParticipantVerifier conforms to Verifier
var _ Verifier = (*ParticipantVerifier)(nil)

func NewParticipantVerifier() *ParticipantVerifier {
	return &ParticipantVerifier{}
}

func (p *ParticipantVerifier) Name() string {
	return "participant"
}

func (p *ParticipantVerifier) Verify(ctx context.Context, row *model.HitRow) *Rejection {
	if !row.ParticipantID.Valid {
		return &Rejection{
			Message: ErrParticipantEmpty.Error(),
		}
	}
	if row.ParticipantID.Int64 <= 0 {
		return &Rejection{
			Message: ErrParticipantInvalid.Error(),
		}
	}
	return nil
}
