package ui

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func testTheme() *Theme {
	return NewTheme(ThemeConfig{NoColor: true})
}

// newTestProgram creates a tea.Program that needs no TTY: empty input,
// discarded output, renderer disabled.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

// startTestProgram starts a tea.Program in a goroutine and returns a
// done channel.
func startTestProgram(p *tea.Program) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	// Allow the program goroutine to initialize before sending messages.
	time.Sleep(10 * time.Millisecond)
	return done
}

func waitForProgram(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 seconds")
	}
}

func TestHeadlessManagerForce(t *testing.T) {
	hm := NewHeadlessManager()
	auto := hm.IsHeadless()

	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("IsHeadless() = false after ForceHeadless(true)")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("IsHeadless() = true after ForceHeadless(false)")
	}
	hm.ClearForce()
	if hm.IsHeadless() != auto {
		t.Errorf("IsHeadless() after ClearForce = %v, want automatic value %v", hm.IsHeadless(), auto)
	}
}

func TestProgressFallsBackWhenHeadless(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	var buf strings.Builder
	p := newProgressImpl(NewTheme(ThemeConfig{}), hm, &buf)

	if _, ok := p.Start("composing", 3).(*plainBar); !ok {
		t.Error("Start() did not return the plain bar in headless mode")
	}
	if _, ok := p.Spinner("syncing").(*plainSpinner); !ok {
		t.Error("Spinner() did not return the plain spinner in headless mode")
	}
}

func TestProgressFallsBackWhenNoColor(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)
	var buf strings.Builder
	p := newProgressImpl(testTheme(), hm, &buf)

	if _, ok := p.Start("composing", 3).(*plainBar); !ok {
		t.Error("Start() did not return the plain bar with NoColor")
	}
	if _, ok := p.Spinner("syncing").(*plainSpinner); !ok {
		t.Error("Spinner() did not return the plain spinner with NoColor")
	}
}

func TestPlainBarOutput(t *testing.T) {
	var buf strings.Builder
	bar := newPlainBar("services", 5, &buf)

	bar.Increment(2)
	bar.SetTitle("backend")
	bar.Increment(10) // clamps at total
	bar.Done()

	out := buf.String()
	for _, want := range []string{"[2/5] services\n", "[5/5] backend\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPlainSpinnerOutput(t *testing.T) {
	var buf strings.Builder
	s := newPlainSpinner("syncing template cache", &buf)
	s.SetTitle("checkout main")
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "syncing template cache\n") || !strings.Contains(out, "checkout main\n") {
		t.Errorf("output %q missing spinner titles", out)
	}
}

func TestAnimatedSpinnerStopIdempotent(t *testing.T) {
	p := newTestProgram(newSpinnerModel(testTheme(), "working"))
	s := &animatedSpinner{program: p, once: sync.Once{}}
	done := startTestProgram(p)

	s.SetTitle("still working")
	s.Stop()
	s.Stop()

	waitForProgram(t, done)
}

func TestAnimatedBarDoneIdempotent(t *testing.T) {
	p := newTestProgram(newBarModel(testTheme(), "services", 4))
	b := &animatedBar{program: p, once: sync.Once{}}
	done := startTestProgram(p)

	b.Increment(1)
	b.SetTitle("webapp")
	b.Increment(1)
	b.Done()
	b.Done()

	waitForProgram(t, done)
}

func TestSpinnerModelTick(t *testing.T) {
	m := newSpinnerModel(NewTheme(ThemeConfig{}), "ticking")
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil tick command")
	}
	msg := cmd()
	if _, ok := msg.(spinner.TickMsg); !ok {
		t.Skipf("tick command returned %T, not spinner.TickMsg", msg)
	}
	updated, _ := m.Update(msg)
	if updated.(spinnerModel).done {
		t.Error("a tick must not stop the spinner")
	}
}

func TestBarModelClampsAtTotal(t *testing.T) {
	m := newBarModel(testTheme(), "services", 5)
	updated, _ := m.Update(barAdvanceMsg(10))
	bm := updated.(barModel)
	if bm.current != 5 {
		t.Errorf("current = %d, want 5", bm.current)
	}
	if !strings.Contains(bm.View(), "[5/5] services") {
		t.Errorf("View() = %q, want [5/5] counter", bm.View())
	}
}

func TestConfirmHeadlessReturnsDefault(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	u := New(testTheme(), hm)

	for _, def := range []bool{true, false} {
		got, err := u.Confirm("Delete the cache?", "", def)
		if err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		if got != def {
			t.Errorf("Confirm() headless = %v, want default %v", got, def)
		}
	}
}

func TestNewThemeNoColor(t *testing.T) {
	theme := NewTheme(ThemeConfig{NoColor: true})
	if !theme.NoColor {
		t.Fatal("NoColor = false")
	}
	if got := theme.Success.Render("ok"); got != "ok" {
		t.Errorf("Success.Render(ok) = %q, want unstyled text", got)
	}
	if got := theme.Error.Render("boom"); got != "boom" {
		t.Errorf("Error.Render(boom) = %q, want unstyled text", got)
	}
}
