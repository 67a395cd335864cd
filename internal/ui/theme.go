package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Colors is the brand palette as dark-terminal hex values. Styles pair
// each with a light-terminal variant through lipgloss.AdaptiveColor.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
	Border    string
}

// ThemeConfig configures theme construction.
type ThemeConfig struct {
	// NoColor disables all styling, honoring the NO_COLOR convention.
	NoColor bool
}

// Theme carries the palette and the derived lipgloss styles shared by
// all UI components and command output.
type Theme struct {
	NoColor bool
	Colors  Colors

	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Primary lipgloss.Style
	Bold    lipgloss.Style
}

// NewTheme builds a Theme. With NoColor set every style renders plain
// text.
func NewTheme(cfg ThemeConfig) *Theme {
	t := &Theme{
		NoColor: cfg.NoColor,
		Colors: Colors{
			Primary:   "#E8590C",
			Secondary: "#3B82F6",
			Success:   "#10B981",
			Warning:   "#F59E0B",
			Error:     "#EF4444",
			Muted:     "#6B7280",
			Border:    "#4B5563",
		},
	}
	if cfg.NoColor {
		plain := lipgloss.NewStyle()
		t.Success = plain
		t.Warn = plain
		t.Error = plain
		t.Muted = plain
		t.Primary = plain
		t.Bold = plain
		return t
	}

	t.Success = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: t.Colors.Success})
	t.Warn = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: t.Colors.Warning})
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: t.Colors.Error})
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: t.Colors.Muted})
	t.Primary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C2410C", Dark: t.Colors.Primary})
	t.Bold = lipgloss.NewStyle().Bold(true)
	return t
}

// huhTheme maps the palette onto a huh form theme for confirmation
// prompts.
func (t *Theme) huhTheme() *huh.Theme {
	ht := huh.ThemeBase()
	if t.NoColor {
		return ht
	}

	primary := lipgloss.AdaptiveColor{Light: "#C2410C", Dark: t.Colors.Primary}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: t.Colors.Muted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: t.Colors.Border}

	ht.Focused.Base = ht.Focused.Base.BorderForeground(border)
	ht.Focused.Title = ht.Focused.Title.Foreground(primary).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(muted)
	ht.Focused.FocusedButton = ht.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	ht.Focused.BlurredButton = ht.Focused.BlurredButton.
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})
	ht.Blurred = ht.Focused
	ht.Blurred.Base = ht.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	return ht
}
