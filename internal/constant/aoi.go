package constant

// AbbreviationChars are handed out in order to distinct AOI names by the
// abbreviate_aois script.
const AbbreviationChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	LegendColumnAbbreviation = "Abbreviation"
	LegendColumnAOI          = "AOI"
)
