package linalg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/fizx/internal/dynamo"
)

// Vector is an N-component tuple whose dimension is part of its type.
// The zero value is the zero vector. Vectors are plain values: assigning
// one copies its components.
type Vector[N Dim] struct {
	c [MaxDim]float64
}

type (
	Vec1 = Vector[D1]
	Vec2 = Vector[D2]
	Vec3 = Vector[D3]
	Vec4 = Vector[D4]
)

// NewVector builds a vector from exactly N scalars.
func NewVector[N Dim](vals ...float64) (Vector[N], error) {
	var v Vector[N]
	if len(vals) != v.Len() {
		return v, fmt.Errorf("%w: vector of %d components built from %d values", dynamo.ErrDimensionMismatch, v.Len(), len(vals))
	}
	copy(v.c[:], vals)
	return v, nil
}

func V2(x, y float64) Vec2       { return Vec2{c: [MaxDim]float64{x, y}} }
func V3(x, y, z float64) Vec3    { return Vec3{c: [MaxDim]float64{x, y, z}} }
func V4(x, y, z, w float64) Vec4 { return Vec4{c: [MaxDim]float64{x, y, z, w}} }

func Zero[N Dim]() Vector[N] {
	return Vector[N]{}
}

// Filled returns a vector with every component set to val.
func Filled[N Dim](val float64) Vector[N] {
	var v Vector[N]
	for i := 0; i < v.Len(); i++ {
		v.c[i] = val
	}
	return v
}

func (v Vector[N]) Len() int { return size[N]() }

func (v Vector[N]) checkIndex(i int) error {
	if i < 0 || i >= v.Len() {
		return fmt.Errorf("%w: component %d outside [0,%d)", dynamo.ErrIndex, i, v.Len())
	}
	return nil
}

func (v Vector[N]) At(i int) (float64, error) {
	if err := v.checkIndex(i); err != nil {
		return 0, err
	}
	return v.c[i], nil
}

func (v *Vector[N]) Set(i int, x float64) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	v.c[i] = x
	return nil
}

// Components returns a copy of the components as a slice of length N.
func (v Vector[N]) Components() []float64 {
	out := make([]float64, v.Len())
	copy(out, v.c[:])
	return out
}

func (v Vector[N]) Add(o Vector[N]) Vector[N] {
	v.AddInPlace(o)
	return v
}

func (v Vector[N]) Sub(o Vector[N]) Vector[N] {
	v.SubInPlace(o)
	return v
}

func (v Vector[N]) Scale(s float64) Vector[N] {
	v.ScaleInPlace(s)
	return v
}

func (v Vector[N]) Neg() Vector[N] {
	v.Invert()
	return v
}

// Hadamard returns the componentwise product.
func (v Vector[N]) Hadamard(o Vector[N]) Vector[N] {
	v.HadamardInPlace(o)
	return v
}

func (v *Vector[N]) AddInPlace(o Vector[N]) {
	for i := 0; i < v.Len(); i++ {
		v.c[i] += o.c[i]
	}
}

func (v *Vector[N]) SubInPlace(o Vector[N]) {
	for i := 0; i < v.Len(); i++ {
		v.c[i] -= o.c[i]
	}
}

func (v *Vector[N]) ScaleInPlace(s float64) {
	for i := 0; i < v.Len(); i++ {
		v.c[i] *= s
	}
}

func (v *Vector[N]) HadamardInPlace(o Vector[N]) {
	for i := 0; i < v.Len(); i++ {
		v.c[i] *= o.c[i]
	}
}

// AddScaled adds o*s to v.
func (v *Vector[N]) AddScaled(o Vector[N], s float64) {
	for i := 0; i < v.Len(); i++ {
		v.c[i] += o.c[i] * s
	}
}

// Invert flips the sign of every component.
func (v *Vector[N]) Invert() {
	for i := 0; i < v.Len(); i++ {
		v.c[i] = -v.c[i]
	}
}

func (v Vector[N]) Dot(o Vector[N]) float64 {
	sum := 0.0
	for i := 0; i < v.Len(); i++ {
		sum += v.c[i] * o.c[i]
	}
	return sum
}

func (v Vector[N]) SquareMagnitude() float64 {
	return v.Dot(v)
}

func (v Vector[N]) Magnitude() float64 {
	return math.Sqrt(v.SquareMagnitude())
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector[N]) Normalize() Vector[N] {
	v.NormalizeInPlace()
	return v
}

func (v *Vector[N]) NormalizeInPlace() {
	l := v.Magnitude()
	if l > 0 {
		v.ScaleInPlace(1 / l)
	}
}

func (v Vector[N]) IsZero() bool {
	return v.c == [MaxDim]float64{}
}

// IsFinite reports whether no component is NaN or Inf.
func (v Vector[N]) IsFinite() bool {
	for i := 0; i < v.Len(); i++ {
		if math.IsNaN(v.c[i]) || math.IsInf(v.c[i], 0) {
			return false
		}
	}
	return true
}

// EqualWithin compares componentwise with an absolute tolerance.
func (v Vector[N]) EqualWithin(o Vector[N], tol dynamo.Tolerance) bool {
	for i := 0; i < v.Len(); i++ {
		if !tol.Equal(v.c[i], o.c[i]) {
			return false
		}
	}
	return true
}

func (v Vector[N]) Equal(o Vector[N]) bool {
	return v.EqualWithin(o, dynamo.DefaultTolerance)
}

func (v Vector[N]) NotEqual(o Vector[N]) bool {
	return !v.Equal(o)
}

func (v Vector[N]) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v.c[i], 'f', 6, 64))
	}
	b.WriteByte(')')
	return b.String()
}

// ScaleVector is the scalar-first form of [Vector.Scale].
func ScaleVector[N Dim](s float64, v Vector[N]) Vector[N] {
	return v.Scale(s)
}
