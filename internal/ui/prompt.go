// Package ui renders pipu's terminal surfaces: the outdated-package table,
// the confirmation prompt, live upgrade progress, and the run summary.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Abeautifulsnow/pipu/internal/messages"
	"github.com/Abeautifulsnow/pipu/internal/terminal"
)

// Prompter asks whether to proceed with the upgrade.
type Prompter interface {
	ConfirmUpgrade() (bool, error)
}

// HuhPrompter implements Prompter with a huh confirm form rendered on stderr,
// keeping stdout clean for the table and summary.
type HuhPrompter struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhPrompter returns a Prompter using the default terminal check.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{isTerminal: terminal.IsInteractive}
}

// confirmKeyMap maps both Esc and Ctrl+C to form abort. With a single yes/no
// prompt there is nothing to navigate back to, so an abort declines.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	return km
}

// formFilter converts InterruptMsg (huh's CancelCmd, or an external SIGINT)
// to QuitMsg so bubbletea takes the graceful shutdown path and the renderer
// clears the form output.
func formFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

// newConfirmForm builds the yes/no form bound to value.
func newConfirmForm(value *bool) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(messages.ConfirmUpgradeTitle).
				Affirmative(messages.ConfirmAffirmative).
				Negative(messages.ConfirmNegative).
				Value(value),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	return form
}

// ConfirmUpgrade renders the prompt and reports the choice. Aborting with
// Esc or Ctrl+C declines without error.
func (p *HuhPrompter) ConfirmUpgrade() (bool, error) {
	checker := p.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return false, fmt.Errorf(messages.ConfirmRequiresTerminal)
	}

	confirmed := false
	form := newConfirmForm(&confirmed)
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(formFilter),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
