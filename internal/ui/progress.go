package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressImpl implements Progress.
type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress writing to os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager) Progress {
	return &progressImpl{theme: theme, headless: hm, writer: os.Stdout}
}

// newProgressImpl creates a progressImpl with a custom writer for tests.
func newProgressImpl(theme *Theme, hm *HeadlessManager, w io.Writer) *progressImpl {
	return &progressImpl{theme: theme, headless: hm, writer: w}
}

// Start creates a determinate step counter, e.g. one step per composed
// service. Headless or colorless runs get plain log lines instead of an
// animated bar.
func (p *progressImpl) Start(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newPlainBar(title, total, p.writer)
	}
	return newAnimatedBar(p.theme, title, total)
}

// Spinner creates an indeterminate activity indicator, e.g. for a
// template cache sync whose duration is unknown.
func (p *progressImpl) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newPlainSpinner(title, p.writer)
	}
	return newAnimatedSpinner(p.theme, title)
}

// --- animated spinner ---

type spinnerTitleMsg string
type spinnerStopMsg struct{}

// spinnerModel is the bubbletea model behind the animated spinner.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// animatedSpinner drives a spinnerModel in its own tea.Program.
type animatedSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newAnimatedSpinner(theme *Theme, title string) *animatedSpinner {
	p := tea.NewProgram(newSpinnerModel(theme, title))
	s := &animatedSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

// SetTitle updates the spinner line.
func (s *animatedSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the animation. Safe to call more than once.
func (s *animatedSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// --- animated progress bar ---

type barAdvanceMsg int
type barTitleMsg string
type barDoneMsg struct{}

// barModel is the bubbletea model behind the animated progress bar.
type barModel struct {
	bar     progress.Model
	title   string
	current int
	total   int
	done    bool
}

func newBarModel(theme *Theme, title string, total int) barModel {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	if !theme.NoColor {
		bar = progress.New(
			progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
			progress.WithWidth(40),
		)
	}
	return barModel{bar: bar, title: title, total: total}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barAdvanceMsg:
		m.current = min(m.current+int(msg), m.total)
		return m, nil
	case barTitleMsg:
		m.title = string(msg)
		return m, nil
	case barDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m barModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return m.bar.ViewAs(pct) + fmt.Sprintf(" [%d/%d] %s\n", m.current, m.total, m.title)
}

// animatedBar drives a barModel in its own tea.Program.
type animatedBar struct {
	program *tea.Program
	once    sync.Once
}

func newAnimatedBar(theme *Theme, title string, total int) *animatedBar {
	p := tea.NewProgram(newBarModel(theme, title, total))
	b := &animatedBar{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return b
}

// Increment advances the bar by n steps.
func (b *animatedBar) Increment(n int) {
	b.program.Send(barAdvanceMsg(n))
}

// SetTitle updates the bar label.
func (b *animatedBar) SetTitle(title string) {
	b.program.Send(barTitleMsg(title))
}

// Done completes the bar. Safe to call more than once.
func (b *animatedBar) Done() {
	b.once.Do(func() {
		b.program.Send(barDoneMsg{})
		b.program.Wait()
	})
}

// --- plain fallbacks ---

// plainBar logs one line per advance instead of animating.
type plainBar struct {
	title   string
	total   int
	current int
	writer  io.Writer
}

func newPlainBar(title string, total int, w io.Writer) *plainBar {
	return &plainBar{title: title, total: total, writer: w}
}

func (b *plainBar) Increment(n int) {
	b.current = min(b.current+n, b.total)
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

func (b *plainBar) SetTitle(title string) {
	b.title = title
}

func (b *plainBar) Done() {
	b.current = b.total
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

// plainSpinner prints the title whenever it changes.
type plainSpinner struct {
	title  string
	writer io.Writer
}

func newPlainSpinner(title string, w io.Writer) *plainSpinner {
	s := &plainSpinner{title: title, writer: w}
	_, _ = fmt.Fprintf(w, "%s\n", title)
	return s
}

func (s *plainSpinner) SetTitle(title string) {
	s.title = title
	_, _ = fmt.Fprintf(s.writer, "%s\n", title)
}

func (s *plainSpinner) Stop() {}
