package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	colName = iota
	colMin
	colMax
	colColor
	numCols
)

var colWidths = [numCols]int{22, 5, 5, 9}

var defaultLevelNames = []string{"Minimal", "Mild", "Moderate", "Severe"}

type levelsKeyMap struct {
	Up, Down, Left, Right key.Binding
	Edit, Done            key.Binding
	Add, Remove, Split    key.Binding
	Save, Quit, ForceQuit key.Binding
}

func defaultLevelsKeyMap() levelsKeyMap {
	return levelsKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev field")),
		Right:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next field")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Done:      key.NewBinding(key.WithKeys("enter", "esc", "tab"), key.WithHelp("enter", "done")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Split:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split evenly")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s", "w"), key.WithHelp("w", "save")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k levelsKeyMap) ShortHelp(editing bool) []key.Binding {
	if editing {
		return []key.Binding{k.Done}
	}
	return []key.Binding{k.Edit, k.Add, k.Remove, k.Split, k.Save, k.Quit}
}

type levelRow struct {
	inputs          [numCols]textinput.Model
	recommendations []string
}

func newLevelRow(l domain.SeverityLevel) levelRow {
	var r levelRow
	values := [numCols]string{l.Name, strconv.Itoa(l.Range.Min), strconv.Itoa(l.Range.Max), l.Color}
	for c := range r.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = colWidths[c]
		ti.SetValue(values[c])
		r.inputs[c] = ti
	}
	r.inputs[colColor].Placeholder = "#rrggbb"
	r.inputs[colColor].CharLimit = 7
	r.recommendations = append([]string(nil), l.Recommendations...)
	return r
}

// levelsSavedMsg carries the outcome of persisting the edited levels.
type levelsSavedMsg struct {
	template *domain.AssessmentTemplate
	err      error
}

// levelsEditor edits a template's severity levels in place and re-checks
// coverage of [0, max] after every keystroke.
type levelsEditor struct {
	template *domain.AssessmentTemplate
	maxScore int
	save     func(domain.ScoringRuleSet) (*domain.AssessmentTemplate, error)
	keys     levelsKeyMap

	rows     []levelRow
	row, col int
	editing  bool

	result   scoring.Result
	inputErr error

	dirty       bool
	confirmQuit bool
	saved       bool
	quitting    bool
	status      string
}

func newLevelsEditor(t *domain.AssessmentTemplate, save func(domain.ScoringRuleSet) (*domain.AssessmentTemplate, error)) *levelsEditor {
	m := &levelsEditor{
		template: t,
		maxScore: t.Scoring.MaxScore,
		save:     save,
		keys:     defaultLevelsKeyMap(),
	}
	for _, l := range scoring.Normalize(t.Scoring.SeverityLevels) {
		m.rows = append(m.rows, newLevelRow(l))
	}
	m.revalidate()
	return m
}

func (m *levelsEditor) Init() tea.Cmd {
	return nil
}

func (m *levelsEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case levelsSavedMsg:
		if msg.err != nil {
			m.status = formatter.Fail("save failed: " + msg.err.Error())
			return m, nil
		}
		m.template = msg.template
		m.saved = true
		m.dirty = false
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNavigating(msg)
	}
	return m, nil
}

func (m *levelsEditor) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.editing = false
		m.rows[m.row].inputs[m.col].Blur()
		if msg.Type == tea.KeyTab {
			m.col = (m.col + 1) % numCols
		}
		return m, nil
	}

	before := m.rows[m.row].inputs[m.col].Value()
	var cmd tea.Cmd
	m.rows[m.row].inputs[m.col], cmd = m.rows[m.row].inputs[m.col].Update(msg)
	if m.rows[m.row].inputs[m.col].Value() != before {
		m.touch()
	}
	return m, cmd
}

func (m *levelsEditor) updateNavigating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.status = formatter.StyleYellow.Render("unsaved changes; press q again to discard")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.rows)-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Left):
		m.col = (m.col + numCols - 1) % numCols
	case key.Matches(msg, m.keys.Right):
		m.col = (m.col + 1) % numCols

	case key.Matches(msg, m.keys.Edit):
		if len(m.rows) == 0 {
			return m, nil
		}
		m.editing = true
		m.status = ""
		in := &m.rows[m.row].inputs[m.col]
		in.CursorEnd()
		return m, in.Focus()

	case key.Matches(msg, m.keys.Add):
		m.addRow()
	case key.Matches(msg, m.keys.Remove):
		m.removeRow()
	case key.Matches(msg, m.keys.Split):
		m.splitEvenly()

	case key.Matches(msg, m.keys.Save):
		if err := m.verdictErr(); err != nil {
			m.status = formatter.Fail("cannot save: " + err.Error())
			return m, nil
		}
		rs := domain.ScoringRuleSet{MaxScore: m.maxScore, SeverityLevels: m.levels()}
		return m, func() tea.Msg {
			t, err := m.save(rs)
			return levelsSavedMsg{template: t, err: err}
		}
	}
	return m, nil
}

func (m *levelsEditor) addRow() {
	lo := 0
	if len(m.rows) > 0 {
		if v, err := strconv.Atoi(strings.TrimSpace(m.rows[m.row].inputs[colMax].Value())); err == nil {
			lo = v + 1
		}
	}
	row := newLevelRow(domain.SeverityLevel{
		Name:  fmt.Sprintf("Level %d", len(m.rows)+1),
		Range: domain.ScoreRange{Min: lo, Max: m.maxScore},
	})

	at := 0
	if len(m.rows) > 0 {
		at = m.row + 1
	}
	m.rows = append(m.rows[:at], append([]levelRow{row}, m.rows[at:]...)...)
	m.row = at
	m.col = colName
	m.touch()
}

func (m *levelsEditor) removeRow() {
	if len(m.rows) == 0 {
		return
	}
	m.rows = append(m.rows[:m.row], m.rows[m.row+1:]...)
	if m.row >= len(m.rows) && m.row > 0 {
		m.row--
	}
	m.touch()
}

// splitEvenly keeps the current names, colors and recommendations but
// reassigns ranges so the bands partition [0, max] with near-equal widths.
func (m *levelsEditor) splitEvenly() {
	names := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		name := strings.TrimSpace(r.inputs[colName].Value())
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		names = defaultLevelNames
	}

	suggested := scoring.SuggestLevels(m.maxScore, names)
	if suggested == nil {
		m.status = formatter.Fail(fmt.Sprintf("cannot split %d levels across %d scores", len(names), m.maxScore+1))
		return
	}

	rows := make([]levelRow, len(suggested))
	for i, l := range suggested {
		if i < len(m.rows) {
			l.Color = m.rows[i].inputs[colColor].Value()
			l.Recommendations = m.rows[i].recommendations
		}
		rows[i] = newLevelRow(l)
	}
	m.rows = rows
	m.row = min(m.row, len(m.rows)-1)
	m.touch()
}

func (m *levelsEditor) touch() {
	m.dirty = true
	m.revalidate()
}

// revalidate parses every row and re-runs the coverage check.
func (m *levelsEditor) revalidate() {
	m.inputErr = nil
	levels := make([]domain.SeverityLevel, 0, len(m.rows))
	for i, r := range m.rows {
		l, err := parseLevelRow(r, i)
		if err != nil && m.inputErr == nil {
			m.inputErr = err
		}
		levels = append(levels, l)
	}
	m.result = scoring.Validate(m.maxScore, levels)
}

func parseLevelRow(r levelRow, index int) (domain.SeverityLevel, error) {
	name := strings.TrimSpace(r.inputs[colName].Value())
	label := name
	if label == "" {
		label = fmt.Sprintf("level %d", index+1)
	}
	l := domain.SeverityLevel{
		Name:            name,
		Color:           strings.TrimSpace(r.inputs[colColor].Value()),
		Recommendations: r.recommendations,
	}

	var err error
	if l.Range.Min, err = strconv.Atoi(strings.TrimSpace(r.inputs[colMin].Value())); err != nil {
		return l, fmt.Errorf("%s: min %q is not a whole number", label, r.inputs[colMin].Value())
	}
	if l.Range.Max, err = strconv.Atoi(strings.TrimSpace(r.inputs[colMax].Value())); err != nil {
		return l, fmt.Errorf("%s: max %q is not a whole number", label, r.inputs[colMax].Value())
	}
	if name == "" {
		return l, fmt.Errorf("%s: name is required", label)
	}
	if l.Color != "" && !scoring.ValidHexColor(l.Color) {
		return l, fmt.Errorf("%s: color %q is not a #RGB or #RRGGBB hex color", label, l.Color)
	}
	return l, nil
}

func (m *levelsEditor) levels() []domain.SeverityLevel {
	out := make([]domain.SeverityLevel, 0, len(m.rows))
	for i, r := range m.rows {
		l, _ := parseLevelRow(r, i)
		out = append(out, l)
	}
	return out
}

// verdictErr is nil only when the levels may be saved.
func (m *levelsEditor) verdictErr() error {
	if m.inputErr != nil {
		return m.inputErr
	}
	return m.result.Err()
}

func (m *levelsEditor) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		formatter.Bold(m.template.DisplayID()),
		m.template.Title,
		formatter.Dim(fmt.Sprintf("scores 0-%d", m.maxScore)))

	header := []string{"Name", "Min", "Max", "Color"}
	b.WriteString("   ")
	for c, h := range header {
		b.WriteString(formatter.StyleHeader.Render(pad(h, colWidths[c])) + "  ")
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(formatter.Dim("   no levels; press a to add or s to split evenly") + "\n")
	}
	for i, r := range m.rows {
		cursor := "   "
		if i == m.row {
			cursor = formatter.StyleHeader.Render(" ▸ ")
		}
		b.WriteString(cursor)
		for c := range r.inputs {
			b.WriteString(m.renderCell(i, c) + "  ")
		}
		color := r.inputs[colColor].Value()
		if scoring.ValidHexColor(color) {
			b.WriteString(lipgloss.NewStyle().Foreground(formatter.LevelColor(color)).Render("■"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(formatter.RenderCoverage(m.maxScore, m.levels(), 40) + "\n")
	if m.inputErr != nil {
		b.WriteString(formatter.Fail(m.inputErr.Error()) + "\n")
	} else {
		b.WriteString(formatter.FormatVerdict(m.result) + "\n")
	}

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString("\n" + renderKeyHelp(m.keys.ShortHelp(m.editing)))
	return b.String()
}

func (m *levelsEditor) renderCell(row, col int) string {
	in := m.rows[row].inputs[col]
	if m.editing && row == m.row && col == m.col {
		return pad(in.View(), colWidths[col])
	}
	text := pad(in.Value(), colWidths[col])
	if row == m.row && col == m.col {
		return lipgloss.NewStyle().Underline(true).Foreground(formatter.ColorHeader).Render(text)
	}
	return text
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func renderKeyHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" • "))
}
