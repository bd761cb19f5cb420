package rowverifs

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"exusiai.dev/gazeseq/internal/model"
)

var ErrSymbolEmpty = errors.New("aoi symbol is empty")

type SymbolVerifier struct{}

// ensure SymbolVerifier conforms to Verifier
var _ Verifier = (*SymbolVerifier)(nil)

func NewSymbolVerifier() *SymbolVerifier {
	return &SymbolVerifier{}
}

func (s *SymbolVerifier) Name() string {
	return "symbol"
}

func (s *SymbolVerifier) Verify(ctx context.Context, row *model.HitRow) *Rejection {
	if !row.Symbol.Valid || strings.TrimSpace(row.Symbol.String) == "" {
		return &Rejection{
			Message: ErrSymbolEmpty.Error(),
		}
	}
	return nil
}
