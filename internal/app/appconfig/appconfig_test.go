package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/gazeseq/internal/app/appcontext"
	"exusiai.dev/gazeseq/internal/model"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse(appcontext.Declare(appcontext.EnvTest))
	require.NoError(t, err)

	assert.Equal(t, model.MiningConfig{MinSupport: 0.5, MaxGap: 1, MaxLength: 50, MaxPatternSize: 5}, conf.MiningConfig())
	assert.Equal(t, 1, conf.CountMaxGap)
	assert.Equal(t, "prefixspan", conf.PatternSource)
	assert.True(t, conf.IgnoredSymbols.Contains("D"))
}

func TestParseFromEnvironment(t *testing.T) {
	t.Setenv("GAZESEQ_MINING_MAX_GAP", "3")
	t.Setenv("GAZESEQ_COUNT_MAX_GAP", "0")
	t.Setenv("GAZESEQ_IGNORED_SYMBOLS", "D, Blank")

	conf, err := Parse(appcontext.Declare(appcontext.EnvTest))
	require.NoError(t, err)

	assert.Equal(t, 3, conf.MiningMaxGap)
	assert.Equal(t, 0, conf.CountMaxGap)
	assert.True(t, conf.IgnoredSymbols.Contains("Blank"))
}

func TestParseRejectsInvalidMining(t *testing.T) {
	t.Setenv("GAZESEQ_MINING_MIN_SUPPORT", "1.5")

	_, err := Parse(appcontext.Declare(appcontext.EnvTest))
	assert.Error(t, err)
}

func TestParseRequiresFileForFileSource(t *testing.T) {
	t.Setenv("GAZESEQ_PATTERN_SOURCE", "file")

	_, err := Parse(appcontext.Declare(appcontext.EnvTest))
	assert.Error(t, err)
}

func TestSymbolSetDecode(t *testing.T) {
	var s SymbolSet
	require.NoError(t, s.Decode("A,B"))
	assert.Len(t, s, 2)

	assert.Error(t, s.Decode("A,,B"))

	require.NoError(t, s.Decode(""))
	assert.Empty(t, s)
}
