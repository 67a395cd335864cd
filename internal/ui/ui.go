// Package ui implements terminal presentation for appforge commands:
// the shared color theme, spinner and progress reporting during
// generation, and confirmation prompts before destructive actions.
// Every component degrades to plain text when stdin has no TTY or
// color is disabled.
package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrCancelled reports a prompt the user aborted.
var ErrCancelled = errors.New("ui: cancelled")

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// ProgressBar is a determinate step counter.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Progress creates spinners and progress bars appropriate for the
// current terminal.
type Progress interface {
	Start(title string, total int) ProgressBar
	Spinner(title string) Spinner
}

// UI bundles the presentation components commands share.
type UI struct {
	Theme    *Theme
	Headless *HeadlessManager
	Progress Progress
}

// New builds a UI writing to stdout.
func New(theme *Theme, hm *HeadlessManager) *UI {
	return &UI{
		Theme:    theme,
		Headless: hm,
		Progress: NewProgress(theme, hm),
	}
}

// Confirm asks a yes/no question before a destructive action. Headless
// runs skip the prompt and answer with the default.
func (u *UI) Confirm(title, description string, defaultYes bool) (bool, error) {
	if u.Headless.IsHeadless() {
		return defaultYes, nil
	}

	confirmed := defaultYes
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	)).WithTheme(u.Theme.huhTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return confirmed, nil
}
