package model

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInvalidPatternText = errors.New("invalid pattern text")

// keySeparator never appears in AOI symbols produced by ParsePattern, so joining
// on it gives a collision-free map key.
const keySeparator = "\x1f"

// Pattern is an ordered symbol sequence together with the support its source
// computed for it. Patterns are never modified after creation.
type Pattern struct {
	Symbols       []Symbol `json:"symbols"`
	GlobalSupport float64  `json:"support"`
}

func NewPattern(support float64, symbols ...Symbol) *Pattern {
	return &Pattern{
		Symbols:       append([]Symbol(nil), symbols...),
		GlobalSupport: support,
	}
}

func (p *Pattern) Len() int {
	return len(p.Symbols)
}

func (p *Pattern) UniqueSymbolCount() int {
	return len(lo.Uniq(p.Symbols))
}

// Key is a canonical identity for the symbol sequence. Two patterns share a key
// iff their symbol sequences are equal.
func (p *Pattern) Key() string {
	return strings.Join(lo.Map(p.Symbols, func(s Symbol, _ int) string {
		return string(s)
	}), keySeparator)
}

func (p *Pattern) Equal(other *Pattern) bool {
	if other == nil || len(p.Symbols) != len(other.Symbols) {
		return false
	}
	for i := range p.Symbols {
		if p.Symbols[i] != other.Symbols[i] {
			return false
		}
	}
	return true
}

// String renders the pattern in its bracketed form, e.g. "[A, B, C]".
func (p *Pattern) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range p.Symbols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(s))
	}
	b.WriteByte(']')
	return b.String()
}

// Less orders patterns by their symbol sequences, element-wise.
func (p *Pattern) Less(other *Pattern) bool {
	for i := 0; i < len(p.Symbols) && i < len(other.Symbols); i++ {
		if p.Symbols[i] != other.Symbols[i] {
			return p.Symbols[i] < other.Symbols[i]
		}
	}
	return len(p.Symbols) < len(other.Symbols)
}

// ParsePattern parses the textual forms external miners emit:
//
//	[A, B, C]    ['A', 'B', 'C']    <{A},{B},{C}>    A -> B -> C
//
// It is meant to be called once, where patterns enter the program.
func ParsePattern(text string, support float64) (*Pattern, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidPatternText, "empty pattern")
	}

	var parts []string
	switch {
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		parts = strings.Split(s[1:len(s)-1], ",")
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		parts = strings.Split(s[1:len(s)-1], ",")
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
				return nil, errors.Wrapf(ErrInvalidPatternText, "element %q is not an itemset", part)
			}
			parts[i] = part[1 : len(part)-1]
		}
	case strings.Contains(s, "->"):
		parts = strings.Split(s, "->")
	default:
		parts = []string{s}
	}

	symbols := make([]Symbol, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part == "" {
			return nil, errors.Wrapf(ErrInvalidPatternText, "empty symbol in %q", text)
		}
		if strings.Contains(part, keySeparator) {
			return nil, errors.Wrapf(ErrInvalidPatternText, "symbol %q contains a control character", part)
		}
		symbols = append(symbols, Symbol(part))
	}

	return &Pattern{Symbols: symbols, GlobalSupport: support}, nil
}
