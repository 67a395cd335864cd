package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/appforge-dev/appforge/internal/ui"
)

// Output symbols, styled through the active theme.
func symSuccess(t *ui.Theme) string { return t.Success.Render("✓") }
func symWarn(t *ui.Theme) string    { return t.Warn.Render("!") }

// successCard renders the bordered summary box printed after a
// generation. Without color it degrades to the bare content.
func successCard(theme *ui.Theme, title string, lines []string) string {
	content := theme.Primary.Render(title)
	if len(lines) > 0 {
		content += "\n\n" + strings.Join(lines, "\n")
	}
	if theme.NoColor {
		return content
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: theme.Colors.Border}).
		Padding(0, 2).
		MarginLeft(2)
	return box.Render(content)
}

// renderMarkdown renders markdown for the terminal via glamour. On any
// renderer failure, or when styling is off, the raw markdown comes
// back unchanged.
func renderMarkdown(theme *ui.Theme, headless bool, markdown string) string {
	if headless || theme.NoColor {
		return markdown
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
