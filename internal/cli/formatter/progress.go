package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindwell/internal/domain"
)

const (
	filledBlock  = "█"
	emptyBlock   = "░"
	gapBlock     = "·"
	overlapBlock = "▒"
)

// RenderScoreBar renders a total against the maximum, e.g.
// [██████░░░░] 14/27, filled in the severity level's color.
func RenderScoreBar(total, maxScore int, hex string, width int) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if maxScore > 0 {
		filled = min(max(total*width/maxScore, 0), width)
	}
	bar := strings.Repeat(filledBlock, filled)
	style := StyleFg.Foreground(LevelColor(hex))
	return fmt.Sprintf("[%s%s] %d/%d", style.Render(bar), StyleDim.Render(strings.Repeat(emptyBlock, width-filled)), total, maxScore)
}

// RenderCoverage draws how the levels cover [0, maxScore]. Each cell is one
// score (or a sampled score when the range is wider than width): a block in
// the covering level's color, a red dot where no level applies, and a red
// shaded block where levels overlap.
func RenderCoverage(maxScore int, levels []domain.SeverityLevel, width int) string {
	if maxScore <= 0 {
		return Dim("(no scored questions)")
	}
	cells := maxScore + 1
	if width <= 0 || cells < width {
		width = cells
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		score := i * cells / width
		var hits []domain.SeverityLevel
		for _, l := range levels {
			if l.Range.Contains(score) {
				hits = append(hits, l)
			}
		}
		switch len(hits) {
		case 0:
			b.WriteString(StyleRed.Render(gapBlock))
		case 1:
			b.WriteString(StyleFg.Foreground(LevelColor(hits[0].Color)).Render(filledBlock))
		default:
			b.WriteString(StyleRed.Render(overlapBlock))
		}
	}
	return fmt.Sprintf("0 %s %d", b.String(), maxScore)
}
