package appconfig

import (
	"fmt"
	"strings"

	"exusiai.dev/gazeseq/internal/model"
)

// SymbolSet decodes a comma separated list of AOI symbols.
type SymbolSet map[model.Symbol]struct{}

func (m *SymbolSet) Decode(value string) error {
	*m = SymbolSet{}
	if strings.TrimSpace(value) == "" {
		return nil
	}
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("invalid symbol set: empty element in %q", value)
		}
		(*m)[model.Symbol(s)] = struct{}{}
	}
	return nil
}

func (m SymbolSet) Contains(s model.Symbol) bool {
	_, ok := m[s]
	return ok
}
