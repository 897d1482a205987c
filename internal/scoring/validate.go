// Package scoring checks and applies the severity bands that turn an
// assessment's total score into a named outcome.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/mindwell/internal/domain"
)

// Result is the verdict of Validate. The zero value is not meaningful;
// use Valid to tell outcomes apart.
type Result struct {
	Valid   bool
	Reason  ErrorKind
	Message string

	// Level and Index identify the offending severity level in the
	// caller's input. Index is -1 when no single level is at fault.
	Level string
	Index int

	// Expected and Actual carry the boundary values behind the failure.
	Expected int
	Actual   int
}

// Err returns nil for a valid result, otherwise a *ValidationError.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Kind: r.Reason, Message: r.Message, Level: r.Level, Index: r.Index}
}

type indexedLevel struct {
	index int
	level domain.SeverityLevel
}

// Validate reports whether levels partition [0, maxScore] into contiguous,
// non-overlapping integer ranges. Checks run in a fixed order and the first
// failure is returned. A non-positive maxScore always passes.
// The input slice is not modified.
func Validate(maxScore int, levels []domain.SeverityLevel) Result {
	if maxScore <= 0 {
		return valid()
	}
	if len(levels) == 0 {
		return Result{
			Reason:  NoLevelsDefined,
			Message: "At least one severity level is required.",
			Index:   -1,
		}
	}

	for i, l := range levels {
		if l.Range.Min < 0 || l.Range.Max < 0 {
			return Result{
				Reason: MalformedRange,
				Message: fmt.Sprintf("Severity level %q has a negative score range (%d-%d). Scores must be 0 or greater.",
					levelName(l, i), l.Range.Min, l.Range.Max),
				Level:    levelName(l, i),
				Index:    i,
				Expected: 0,
				Actual:   min(l.Range.Min, l.Range.Max),
			}
		}
		if l.Range.Min > l.Range.Max {
			return Result{
				Reason: MalformedRange,
				Message: fmt.Sprintf("Severity level %q has a minimum score (%d) greater than its maximum score (%d).",
					levelName(l, i), l.Range.Min, l.Range.Max),
				Level:    levelName(l, i),
				Index:    i,
				Expected: l.Range.Max,
				Actual:   l.Range.Min,
			}
		}
	}

	sorted := sortedByMin(levels)

	first := sorted[0]
	if first.level.Range.Min != 0 {
		name := levelName(first.level, first.index)
		return Result{
			Reason: DoesNotStartAtZero,
			Message: fmt.Sprintf("Severity levels must start at 0. The first level's minimum score should be 0. Currently, %q starts at %d.",
				name, first.level.Range.Min),
			Level:    name,
			Index:    first.index,
			Expected: 0,
			Actual:   first.level.Range.Min,
		}
	}

	last := sorted[len(sorted)-1]
	if last.level.Range.Max != maxScore {
		return Result{
			Reason: DoesNotEndAtMax,
			Message: fmt.Sprintf("Severity levels must end at %d. The last level's maximum score should be %d. Currently, the last level ends at %d.",
				maxScore, maxScore, last.level.Range.Max),
			Level:    levelName(last.level, last.index),
			Index:    last.index,
			Expected: maxScore,
			Actual:   last.level.Range.Max,
		}
	}

	// Minimums are non-negative here, so Min-1 cannot overflow where Max+1 could.
	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		curMax, nextMin := cur.level.Range.Max, next.level.Range.Min
		if nextMin-1 == curMax {
			continue
		}
		label := "Gap"
		if nextMin <= curMax {
			label = "Overlap"
		}
		curName, nextName := levelName(cur.level, cur.index), levelName(next.level, next.index)
		msg := fmt.Sprintf("%s between severity levels: %q ends at %d but %q starts at %d.",
			label, curName, curMax, nextName, nextMin)
		want := curMax
		if curMax < math.MaxInt {
			want = curMax + 1
			msg += fmt.Sprintf(" %q should start at %d.", nextName, want)
		}
		return Result{
			Reason:   GapOrOverlap,
			Message:  msg,
			Level:    nextName,
			Index:    next.index,
			Expected: want,
			Actual:   nextMin,
		}
	}

	return valid()
}

// ValidateRuleSet is Validate applied to a stored rule set.
func ValidateRuleSet(rs domain.ScoringRuleSet) Result {
	return Validate(rs.MaxScore, rs.SeverityLevels)
}

// Normalize returns a copy of levels ordered by ascending minimum score.
// Levels sharing a minimum keep their input order.
func Normalize(levels []domain.SeverityLevel) []domain.SeverityLevel {
	sorted := sortedByMin(levels)
	out := make([]domain.SeverityLevel, len(sorted))
	for i, s := range sorted {
		out[i] = s.level
	}
	return out
}

func sortedByMin(levels []domain.SeverityLevel) []indexedLevel {
	sorted := make([]indexedLevel, len(levels))
	for i, l := range levels {
		sorted[i] = indexedLevel{index: i, level: l}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].level.Range.Min < sorted[j].level.Range.Min
	})
	return sorted
}

func levelName(l domain.SeverityLevel, index int) string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Level %d", index+1)
}

func valid() Result {
	return Result{Valid: true, Index: -1}
}
