package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorBg     = lipgloss.Color("#282828")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// LevelColor returns the level's own color, or a dim fallback when it has
// none or the hex is unusable.
func LevelColor(hex string) lipgloss.Color {
	if hex == "" || !scoring.ValidHexColor(hex) {
		return ColorDim
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return lipgloss.Color(hex)
}

// SeverityBadge renders a level name on its own color, e.g. " Moderate ".
func SeverityBadge(name, hex string) string {
	if name == "" {
		return Dim("unclassified")
	}
	return lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(LevelColor(hex)).
		Bold(true).
		Padding(0, 1).
		Render(name)
}

// StatusIndicator returns a colored status marker such as "● PUBLISHED".
func StatusIndicator(status domain.TemplateStatus) string {
	switch status {
	case domain.TemplatePublished:
		return StyleGreen.Render("● PUBLISHED")
	case domain.TemplateDraft:
		return StyleYellow.Render("● DRAFT")
	case domain.TemplateArchived:
		return StyleDim.Render("● ARCHIVED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// OK and Fail prefix a line with a green check or a red cross.
func OK(text string) string {
	return StyleGreen.Render("✔") + " " + text
}

func Fail(text string) string {
	return StyleRed.Render("✘") + " " + text
}
