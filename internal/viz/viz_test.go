package viz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/forces"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
	"github.com/san-kum/fizx/internal/world"
)

func projectile() (*world.World, error) {
	w := world.New()
	p := particle.New()
	p.SetVelocity(linalg.V3(5, 5, 0))
	h := w.AddParticle("ball", p)
	if err := w.Connect(h, forces.NewGravity(forces.StandardGravity)); err != nil {
		return nil, err
	}
	return w, nil
}

func runProjectile(t *testing.T) *world.Result {
	t.Helper()
	w, err := projectile()
	if err != nil {
		t.Fatal(err)
	}
	cfg := dynamo.DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 1
	result, err := w.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 0)

	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBlank|0x80 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Clear()
	if strings.Trim(c.String(), "\u2800\n") != "" {
		t.Error("expected blank canvas after clear")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != brailleBlank|0x1|0x8 {
			t.Errorf("col %d: expected top row set, got %U", col, c.Grid[0][col])
		}
	}
}

func TestViewportProject(t *testing.T) {
	c := NewCanvas(10, 5)
	var v Viewport
	v.Fit(linalg.V3(0, 0, 0))
	v.Fit(linalg.V3(10, 10, 0))

	x, y := v.Project(c, linalg.V3(-1, -1, 0))
	if x != 0 || y != 19 {
		t.Errorf("expected bottom-left (0,19), got (%d,%d)", x, y)
	}
	x, y = v.Project(c, linalg.V3(10, 10, 0))
	if x != 19 || y != 0 {
		t.Errorf("expected top-right (19,0), got (%d,%d)", x, y)
	}
}

func TestParseAxis(t *testing.T) {
	for i, name := range []string{"x", "y", "z"} {
		got, err := ParseAxis(name)
		if err != nil || got != i {
			t.Errorf("ParseAxis(%q): expected %d, got %d (%v)", name, i, got, err)
		}
	}
	if _, err := ParseAxis("w"); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := AxisName(3); !errors.Is(err, dynamo.ErrIndex) {
		t.Errorf("expected ErrIndex, got %v", err)
	}
}

func TestPlotAxis(t *testing.T) {
	result := runProjectile(t)

	out, err := PlotAxis(result, 0, 1, "ball", 40, 8)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(out, "ball.y") {
		t.Errorf("expected caption, got:\n%s", out)
	}

	if _, err := PlotAxis(result, 1, 1, "ghost", 40, 8); !errors.Is(err, dynamo.ErrIndex) {
		t.Errorf("expected ErrIndex, got %v", err)
	}
	if _, err := PlotAll(result, 2, 40, 8); err != nil {
		t.Errorf("plot all failed: %v", err)
	}
}

func TestSummary(t *testing.T) {
	result := runProjectile(t)
	result.Metrics["max_speed"] = 12.5

	out := Summary("projectile", []string{"ball"}, result, 3*time.Millisecond)
	for _, want := range []string{"PROJECTILE", "steps", "100", "max_speed", "ball", "steps/s"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRate(t *testing.T) {
	if got := Rate(2_000_000, time.Second, "steps/s"); got != "2 Msteps/s" {
		t.Errorf("expected '2 Msteps/s', got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		fraction     float64
		filled, free int
	}{
		{0, 0, 10},
		{0.5, 5, 5},
		{1, 10, 0},
		{2, 10, 0},
		{-1, 0, 10},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.fraction, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("fraction %g: expected %d filled cells, got %d", tt.fraction, tt.filled, got)
		}
		if got := strings.Count(bar, "░"); got != tt.free {
			t.Errorf("fraction %g: expected %d empty cells, got %d", tt.fraction, tt.free, got)
		}
	}
}

func TestLiveModelKeys(t *testing.T) {
	m, err := NewLiveModel("projectile", projectile, 0.01, 5, 30)
	if err != nil {
		t.Fatal(err)
	}

	m.Update(TickMsg(time.Now()))
	if m.Steps() != 5 {
		t.Errorf("expected 5 steps after one tick, got %d", m.Steps())
	}
	if view := m.View(); !strings.Contains(view, "of peak") || !strings.Contains(view, "█") {
		t.Error("expected energy bar in view")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.Running() {
		t.Error("expected paused after space")
	}
	m.Update(TickMsg(time.Now()))
	if m.Steps() != 5 {
		t.Errorf("paused model should not step, got %d", m.Steps())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.Steps() != 10 {
		t.Errorf("expected single frame advance to 10, got %d", m.Steps())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.Steps() != 0 || m.World().Time() != 0 {
		t.Error("expected reset world")
	}

	if view := m.View(); !strings.Contains(view, "PROJECTILE") {
		t.Error("expected title in view")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLiveModelBuildError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewLiveModel("bad", func() (*world.World, error) { return nil, boom }, 0.01, 1, 30)
	if !errors.Is(err, boom) {
		t.Errorf("expected build error, got %v", err)
	}
}
