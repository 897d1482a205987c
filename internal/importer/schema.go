package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/mindwell/internal/scoring"
	"gopkg.in/yaml.v3"
)

// TemplateImport is the authored form of an assessment template, read from
// JSON or YAML.
type TemplateImport struct {
	ShortID     string           `json:"short_id" yaml:"short_id"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string           `json:"category,omitempty" yaml:"category,omitempty"`
	Status      string           `json:"status,omitempty" yaml:"status,omitempty"`
	Questions   []QuestionImport `json:"questions" yaml:"questions"`
	Scoring     ScoringImport    `json:"scoring" yaml:"scoring"`
}

type QuestionImport struct {
	Text     string         `json:"text" yaml:"text"`
	Type     string         `json:"type" yaml:"type"`
	Required *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Options  []OptionImport `json:"options,omitempty" yaml:"options,omitempty"`
}

type OptionImport struct {
	Label string `json:"label" yaml:"label"`
	Value Score  `json:"value" yaml:"value"`
}

// ScoringImport holds the severity bands. MaxScore is derived from the
// questions when omitted.
type ScoringImport struct {
	MaxScore       *Score        `json:"max_score,omitempty" yaml:"max_score,omitempty"`
	SeverityLevels []LevelImport `json:"severity_levels" yaml:"severity_levels"`
}

type LevelImport struct {
	Name            string      `json:"name" yaml:"name"`
	Range           RangeImport `json:"range" yaml:"range"`
	Color           string      `json:"color,omitempty" yaml:"color,omitempty"`
	Recommendations []string    `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

type RangeImport struct {
	Min Score `json:"min" yaml:"min"`
	Max Score `json:"max" yaml:"max"`
}

// Score is a point value in an authored template. In YAML only integer
// literals are accepted; 2.9 or "3" is a type error rather than a truncation.
type Score int

func (s *Score) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s `%s` into an integer score", node.Line, node.ShortTag(), node.Value),
		}}
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return err
	}
	*s = Score(n)
	return nil
}

func (s *Score) intPtr() *int {
	if s == nil {
		return nil
	}
	n := int(*s)
	return &n
}

// LoadTemplateFile reads a template from disk. Files ending in .yaml or .yml
// are parsed as YAML; everything else as JSON.
func LoadTemplateFile(path string) (*TemplateImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t TemplateImport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &t)
	default:
		err = decodeJSON(bytes.NewReader(data), &t)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &t, nil
}

// DecodeScoring reads a bare scoring section ({max_score, severity_levels})
// from JSON.
func DecodeScoring(r io.Reader) (*ScoringImport, error) {
	var s ScoringImport
	if err := decodeJSON(r, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: field %q expects %s, got %s", scoring.ErrInvalidArgument, typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return err
	}
	return nil
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && !isUnknownFieldOnly(typeErr) {
			return fmt.Errorf("%w: %s", scoring.ErrInvalidArgument, strings.Join(typeErr.Errors, "; "))
		}
		return err
	}
	return nil
}

// isUnknownFieldOnly reports whether every yaml type error is a stray key
// rather than a wrongly typed value.
func isUnknownFieldOnly(err *yaml.TypeError) bool {
	for _, msg := range err.Errors {
		if !strings.Contains(msg, "not found in type") {
			return false
		}
	}
	return true
}
