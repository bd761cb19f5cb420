package rowverifs

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("rowverifs", fx.Provide(
		NewParticipantVerifier,
		NewSymbolVerifier,
		NewRejectRuleVerifier,
		NewRowVerifier,
	))
}
