package scoring

import "github.com/alexanderramin/mindwell/internal/domain"

// Classify returns the severity level whose range contains score. Levels
// are searched in ascending order of their minimum, so with overlapping
// input the lower band wins.
func Classify(score int, levels []domain.SeverityLevel) (domain.SeverityLevel, bool) {
	for _, l := range Normalize(levels) {
		if l.Range.Contains(score) {
			return l, true
		}
	}
	return domain.SeverityLevel{}, false
}

// SuggestLevels divides [0, maxScore] into len(names) contiguous bands of
// near-equal width. Any remainder widens the highest bands. Returns nil if
// there are no names or more names than scores.
func SuggestLevels(maxScore int, names []string) []domain.SeverityLevel {
	n := len(names)
	if n == 0 || maxScore < 0 || maxScore < n-1 {
		return nil
	}

	// maxScore+1 scores split into n bands, without computing maxScore+1.
	base, rem := maxScore/n, maxScore%n+1
	if rem == n {
		base, rem = base+1, 0
	}
	levels := make([]domain.SeverityLevel, 0, n)
	lo := 0
	for i, name := range names {
		width := base
		if i >= n-rem {
			width++
		}
		hi := lo + (width - 1)
		levels = append(levels, domain.SeverityLevel{
			Name:  name,
			Range: domain.ScoreRange{Min: lo, Max: hi},
		})
		if hi < maxScore {
			lo = hi + 1
		}
	}
	return levels
}
