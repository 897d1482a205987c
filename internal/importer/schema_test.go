package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTemplateFile_YAMLSample(t *testing.T) {
	ti, err := LoadTemplateFile(filepath.Join("testdata", "phq9.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "PHQ09", ti.ShortID)
	assert.Len(t, ti.Questions, 10)
	assert.Nil(t, ti.Scoring.MaxScore)
	require.Len(t, ti.Scoring.SeverityLevels, 5)
	assert.Equal(t, RangeImport{Min: 20, Max: 27}, ti.Scoring.SeverityLevels[4].Range)
	assert.Empty(t, ValidateTemplateImport(ti))
}

func TestLoadTemplateFile_JSONSample(t *testing.T) {
	ti, errs := ValidateFile(filepath.Join("testdata", "gad7.json"))
	require.Empty(t, errs)

	assert.Equal(t, "GAD07", ti.ShortID)
	assert.Equal(t, "published", ti.Status)
	require.NotNil(t, ti.Scoring.MaxScore)
	assert.Equal(t, Score(21), *ti.Scoring.MaxScore)
}

func TestLoadTemplateFile_TypeMismatchIsInvalidArgument(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json fractional", "t.json", `{"scoring": {"severity_levels": [{"name": "A", "range": {"min": 2.5, "max": 3}}]}}`},
		{"json string", "t.json", `{"scoring": {"severity_levels": [{"name": "A", "range": {"min": "a", "max": 3}}]}}`},
		{"yaml fractional", "t.yaml", "scoring:\n  severity_levels:\n    - name: A\n      range: {min: 2.5, max: 3}\n"},
		{"yaml fractional max", "t.yaml", "scoring:\n  severity_levels:\n    - name: A\n      range: {min: 0, max: 2.9}\n"},
		{"yaml quoted number", "t.yml", "scoring:\n  severity_levels:\n    - name: A\n      range: {min: \"0\", max: 3}\n"},
		{"yaml fractional option", "t.yaml", "questions:\n  - text: Q\n    type: scale\n    options:\n      - {label: A, value: 1.5}\n"},
		{"yaml fractional max_score", "t.yaml", "scoring:\n  max_score: 9.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplateFile(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
		})
	}
}

func TestLoadTemplateFile_YAMLFractionNotTruncated(t *testing.T) {
	content := "scoring:\n  max_score: 3\n  severity_levels:\n    - name: A\n      range: {min: 0, max: 2.9}\n    - name: B\n      range: {min: 3.0, max: 3}\n"
	ti, err := LoadTemplateFile(writeFile(t, "t.yaml", content))
	require.ErrorIs(t, err, scoring.ErrInvalidArgument)
	assert.Nil(t, ti)
	assert.Contains(t, err.Error(), "line 5")
	assert.Contains(t, err.Error(), "`2.9`")
	assert.Contains(t, err.Error(), "line 7")
}

func TestLoadTemplateFile_UnknownFieldRejected(t *testing.T) {
	for _, tc := range []struct{ file, content string }{
		{"t.json", `{"short_id": "ABC01", "colour": "red"}`},
		{"t.yml", "short_id: ABC01\ncolour: red\n"},
	} {
		_, err := LoadTemplateFile(writeFile(t, tc.file, tc.content))
		require.Error(t, err, tc.file)
		assert.NotErrorIs(t, err, scoring.ErrInvalidArgument, tc.file)
		assert.True(t, strings.Contains(err.Error(), "colour"), err.Error())
	}
}

func TestLoadTemplateFile_Errors(t *testing.T) {
	_, err := LoadTemplateFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadTemplateFile(writeFile(t, "empty.yaml", ""))
	assert.ErrorContains(t, err, "empty document")

	_, errs := ValidateFile(writeFile(t, "broken.json", "{"))
	assert.Len(t, errs, 1)
}

func TestDecodeScoring(t *testing.T) {
	s, err := DecodeScoring(strings.NewReader(`{"max_score": 4, "severity_levels": [{"name": "All", "range": {"min": 0, "max": 4}}]}`))
	require.NoError(t, err)
	require.NotNil(t, s.MaxScore)
	assert.Equal(t, Score(4), *s.MaxScore)
	assert.Len(t, s.SeverityLevels, 1)

	_, err = DecodeScoring(strings.NewReader(`{"max_score": "four"}`))
	assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
}
