// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed back
// in before the next input, so a test sees the model exactly as it stands
// after each key. Cmds that block (cursor blink timers) are abandoned after
// a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up Cmds one input may trigger.
const MaxDrainDepth = 100

// cmdTimeout separates instant Cmds (save callbacks, message factories)
// from timer-backed ones such as cursor blinks (~530ms).
const cmdTimeout = 10 * time.Millisecond

// Driver feeds input to a tea.Model and records what came back.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool

	// Msgs lists every non-key message delivered to the model, in order.
	Msgs []tea.Msg
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.drain(d.Model.Init(), 0)
	return d
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before Init runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// Send delivers msg and drains every Cmd it produces.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+a":    tea.KeyCtrlA,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+u":    tea.KeyCtrlU,
}

// Press sends each key in turn. Names such as "enter", "tab" or "ctrl+s"
// map to special keys; anything else is sent as typed runes.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		if kt, ok := namedKeys[k]; ok {
			d.Send(tea.KeyMsg{Type: kt})
			continue
		}
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// Type sends s one rune at a time, as a user typing would.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Backspace deletes n characters.
func (d *Driver) Backspace(n int) {
	d.T.Helper()
	for i := 0; i < n; i++ {
		d.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	}
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// AssertView fails the test unless every substring appears in the view.
func (d *Driver) AssertView(substrs ...string) {
	d.T.Helper()
	view := d.View()
	for _, s := range substrs {
		if !strings.Contains(view, s) {
			d.T.Errorf("view does not contain %q:\n%s", s, view)
		}
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}

	d.Msgs = append(d.Msgs, msg)
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
