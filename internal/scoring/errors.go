package scoring

import "errors"

// ErrorKind classifies why a scoring rule set was rejected.
type ErrorKind string

const (
	InvalidArgument    ErrorKind = "InvalidArgument"
	NoLevelsDefined    ErrorKind = "NoLevelsDefined"
	MalformedRange     ErrorKind = "MalformedRange"
	DoesNotStartAtZero ErrorKind = "DoesNotStartAtZero"
	DoesNotEndAtMax    ErrorKind = "DoesNotEndAtMax"
	GapOrOverlap       ErrorKind = "GapOrOverlap"
)

var (
	// ErrInvalidScoring is wrapped by every *ValidationError.
	ErrInvalidScoring = errors.New("invalid scoring rules")

	// ErrInvalidArgument marks input whose shape could not be read as a
	// rule set at all (wrong JSON types, fractional scores).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidColor indicates a color that is not #RGB or #RRGGBB hex.
	ErrInvalidColor = errors.New("invalid hex color")

	ErrUnknownQuestion    = errors.New("answer references unknown question")
	ErrUnansweredQuestion = errors.New("required question not answered")
	ErrUnknownOption      = errors.New("answer is not one of the question's options")
	ErrAnswerKind         = errors.New("answer kind does not match question type")
)

// ValidationError is the error form of an invalid Result.
type ValidationError struct {
	Kind    ErrorKind
	Message string
	Level   string
	Index   int
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidScoring
}
