package scoring

import (
	"math"
	"testing"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	levels := []domain.SeverityLevel{lvl("Severe", 20, 27), lvl("Minimal", 0, 4), lvl("Mild", 5, 9), lvl("Moderate", 10, 19)}

	tests := []struct {
		score int
		want  string
	}{
		{0, "Minimal"},
		{4, "Minimal"},
		{5, "Mild"},
		{19, "Moderate"},
		{27, "Severe"},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.score, levels)
		require.True(t, ok, "score %d", tt.score)
		assert.Equal(t, tt.want, got.Name, "score %d", tt.score)
	}

	_, ok := Classify(28, levels)
	assert.False(t, ok)
	_, ok = Classify(-1, levels)
	assert.False(t, ok)
}

func TestClassify_OverlapPrefersLowerBand(t *testing.T) {
	got, ok := Classify(4, []domain.SeverityLevel{lvl("Upper", 3, 8), lvl("Lower", 0, 5)})
	require.True(t, ok)
	assert.Equal(t, "Lower", got.Name)
}

func TestSuggestLevels_AlwaysValid(t *testing.T) {
	names := []string{"Minimal", "Mild", "Moderate", "Severe"}
	for maxScore := 3; maxScore <= 40; maxScore++ {
		levels := SuggestLevels(maxScore, names)
		require.Len(t, levels, len(names))
		res := Validate(maxScore, levels)
		assert.True(t, res.Valid, "max %d: %s", maxScore, res.Message)
	}
}

func TestSuggestLevels_RemainderGoesToHighestBands(t *testing.T) {
	levels := SuggestLevels(9, []string{"Low", "Mid", "High"})
	require.Len(t, levels, 3)
	assert.Equal(t, domain.ScoreRange{Min: 0, Max: 2}, levels[0].Range)
	assert.Equal(t, domain.ScoreRange{Min: 3, Max: 5}, levels[1].Range)
	assert.Equal(t, domain.ScoreRange{Min: 6, Max: 9}, levels[2].Range)
}

func TestSuggestLevels_Impossible(t *testing.T) {
	assert.Nil(t, SuggestLevels(10, nil))
	assert.Nil(t, SuggestLevels(1, []string{"a", "b", "c"}))
	assert.Nil(t, SuggestLevels(-1, []string{"a"}))
	assert.Len(t, SuggestLevels(0, []string{"only"}), 1)
}

func TestSuggestLevels_MaxIntRange(t *testing.T) {
	levels := SuggestLevels(math.MaxInt, []string{"Low", "High"})
	require.Len(t, levels, 2)
	assert.Equal(t, 0, levels[0].Range.Min)
	assert.Equal(t, levels[0].Range.Max+1, levels[1].Range.Min)
	assert.Equal(t, math.MaxInt, levels[1].Range.Max)
	assert.True(t, Validate(math.MaxInt, levels).Valid)
}
