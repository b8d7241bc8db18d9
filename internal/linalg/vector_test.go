package linalg

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fizx/internal/dynamo"
)

func TestNewVectorArity(t *testing.T) {
	v, err := NewVector[D2](1.4, 2.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Equal(V2(1.4, 2.4)) {
		t.Errorf("expected (1.4, 2.4), got %v", v)
	}

	if _, err := NewVector[D3](1, 2); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := NewVector[D2](1, 2, 3); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestZeroValueIsZeroVector(t *testing.T) {
	var c Vec2
	if x, _ := c.At(0); x != 0 {
		t.Errorf("expected zero component, got %f", x)
	}
	if y, _ := c.At(1); y != 0 {
		t.Errorf("expected zero component, got %f", y)
	}
	if c.Len() != 2 {
		t.Errorf("expected len 2, got %d", c.Len())
	}
}

func TestVectorIndexBounds(t *testing.T) {
	v := V3(1, 2, 3)

	for _, i := range []int{-1, 3, 4} {
		if _, err := v.At(i); !errors.Is(err, dynamo.ErrIndex) {
			t.Errorf("At(%d): expected ErrIndex, got %v", i, err)
		}
		if err := v.Set(i, 1); !errors.Is(err, dynamo.ErrIndex) {
			t.Errorf("Set(%d): expected ErrIndex, got %v", i, err)
		}
	}

	if err := v.Set(2, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z, _ := v.At(2); z != 9 {
		t.Errorf("expected 9, got %f", z)
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := V2(1.4, 2.4)
	b := V2(-2.1, 4.9)

	c := a.Add(b)
	if !c.Equal(V2(-0.7, 7.3)) {
		t.Errorf("expected (-0.7, 7.3), got %v", c)
	}
	if !c.NotEqual(V2(0.123, -456)) {
		t.Error("expected vectors to differ")
	}

	if !a.Sub(b).Equal(V2(3.5, -2.5)) {
		t.Errorf("expected (3.5, -2.5), got %v", a.Sub(b))
	}

	if !a.Equal(V2(1.4, 2.4)) {
		t.Error("Add must not modify its receiver")
	}
}

func TestVectorScaling(t *testing.T) {
	x := V3(0.00001, 0.00001, 0.00001)
	y := x.Scale(3)
	z := ScaleVector(3, x)

	if !y.Equal(z) {
		t.Error("scalar multiplication should commute")
	}
	if !y.Equal(V3(0.00003, 0.00003, 0.00003)) {
		t.Errorf("expected 3e-5 components, got %v", y)
	}

	x.HadamardInPlace(V3(10, 100, 1000))
	if !x.Equal(V3(0.0001, 0.001, 0.01)) {
		t.Errorf("expected elementwise scaling, got %v", x)
	}
}

func TestVectorAddScaled(t *testing.T) {
	u := V4(0.3, 0.3, 0.3, 0.3)
	v := V4(5, 5, 5, 5)
	w := Vec4{}

	u.AddScaled(v, 0.2)
	w.AddScaled(Filled[D4](7.4), 0.5)
	v.SubInPlace(u)

	if !w.Equal(Filled[D4](3.7)) {
		t.Errorf("expected 3.7 components, got %v", w)
	}
	if !v.Equal(w) {
		t.Errorf("expected %v, got %v", w, v)
	}

	x, y, z, ww := XYZW(u)
	if !V4(x, y, z, ww).Equal(u) {
		t.Error("XYZW should round-trip components")
	}
}

func TestVectorDot(t *testing.T) {
	u := V4(1, 2, -3, -2)
	v := V4(-1, 2, 4, 0.5)
	if u.Dot(v) != -10 {
		t.Errorf("expected -10, got %f", u.Dot(v))
	}
}

func TestVectorCopySemantics(t *testing.T) {
	orig := V2(2, 3)
	cp := orig
	if err := cp.Set(0, 0); err != nil {
		t.Fatal(err)
	}
	if x, _ := orig.At(0); x != 2 {
		t.Errorf("copy aliased original: got %f", x)
	}

	comps := orig.Components()
	comps[0] = 42
	if x, _ := orig.At(0); x != 2 {
		t.Errorf("Components aliased original: got %f", x)
	}
}

func TestVectorNegation(t *testing.T) {
	vs := []Vec3{V3(1, 2, 3), V3(-4.5, 0, 1e6), V3(1e-9, -1e-9, 0)}
	for _, v := range vs {
		sum := v.Add(v.Scale(-1))
		if !sum.Equal(Vec3{}) {
			t.Errorf("expected zero vector for %v, got %v", v, sum)
		}
		if !v.Neg().Equal(v.Scale(-1)) {
			t.Errorf("Neg mismatch for %v", v)
		}
	}
}

func TestVectorMagnitudeAndNormalize(t *testing.T) {
	v := V3(3, 4, 0)
	if v.Magnitude() != 5 {
		t.Errorf("expected magnitude 5, got %f", v.Magnitude())
	}
	if v.SquareMagnitude() != 25 {
		t.Errorf("expected square magnitude 25, got %f", v.SquareMagnitude())
	}

	vs := []Vec3{V3(3, 4, 0), V3(-1, -1, -1), V3(1e-3, 0, 2e-3), V3(1e5, 3, -7)}
	for _, v := range vs {
		n := v.Normalize()
		if math.Abs(n.Magnitude()-1) > 1e-12 {
			t.Errorf("expected unit magnitude for %v, got %f", v, n.Magnitude())
		}
	}

	zero := Vec3{}
	n := zero.Normalize()
	if !n.IsZero() || !n.IsFinite() {
		t.Errorf("expected zero vector to stay zero, got %v", n)
	}
}

func TestVectorEqualWithin(t *testing.T) {
	a := V2(1, 1)
	b := V2(1.0005, 1)

	if a.Equal(b) {
		t.Error("default tolerance should reject 5e-4 difference")
	}
	if !a.EqualWithin(b, 1e-3) {
		t.Error("1e-3 tolerance should accept 5e-4 difference")
	}
}

func TestVectorIsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Error("expected finite vector")
	}
	if V3(math.NaN(), 0, 0).IsFinite() {
		t.Error("expected NaN to be reported")
	}
	if V3(0, math.Inf(1), 0).IsFinite() {
		t.Error("expected Inf to be reported")
	}
}

func TestVectorString(t *testing.T) {
	got := V2(1, -2.5).String()
	want := "(1.000000, -2.500000)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
