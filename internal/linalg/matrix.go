package linalg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/fizx/internal/dynamo"
)

// Matrix holds M row vectors of dimension N in row-major order.
// The zero value is the zero matrix.
type Matrix[M, N Dim] struct {
	rows [MaxDim]Vector[N]
}

type (
	Mat2   = Matrix[D2, D2]
	Mat3   = Matrix[D3, D3]
	Mat4   = Matrix[D4, D4]
	Mat2x3 = Matrix[D2, D3]
	Mat3x2 = Matrix[D3, D2]
	Mat2x4 = Matrix[D2, D4]
	Mat4x2 = Matrix[D4, D2]
	Mat3x4 = Matrix[D3, D4]
	Mat4x3 = Matrix[D4, D3]
)

// NewMatrix builds a matrix from exactly M*N scalars in row-major order.
func NewMatrix[M, N Dim](vals ...float64) (Matrix[M, N], error) {
	var m Matrix[M, N]
	rows, cols := m.Rows(), m.Cols()
	if len(vals) != rows*cols {
		return m, fmt.Errorf("%w: %dx%d matrix built from %d values", dynamo.ErrDimensionMismatch, rows, cols, len(vals))
	}
	for i := 0; i < rows; i++ {
		copy(m.rows[i].c[:cols], vals[i*cols:(i+1)*cols])
	}
	return m, nil
}

// MatrixFromRows builds a matrix from exactly M row vectors.
func MatrixFromRows[M, N Dim](rows ...Vector[N]) (Matrix[M, N], error) {
	var m Matrix[M, N]
	if len(rows) != m.Rows() {
		return m, fmt.Errorf("%w: matrix of %d rows built from %d vectors", dynamo.ErrDimensionMismatch, m.Rows(), len(rows))
	}
	copy(m.rows[:], rows)
	return m, nil
}

// Diagonal returns a matrix with val along the leading diagonal up to min(M, N).
func Diagonal[M, N Dim](val float64) Matrix[M, N] {
	var m Matrix[M, N]
	for i := 0; i < m.Rows() && i < m.Cols(); i++ {
		m.rows[i].c[i] = val
	}
	return m
}

func Identity[N Dim]() Matrix[N, N] {
	return Diagonal[N, N](1)
}

func (m Matrix[M, N]) Rows() int { return size[M]() }
func (m Matrix[M, N]) Cols() int { return size[N]() }

func (m Matrix[M, N]) checkRow(i int) error {
	if i < 0 || i >= m.Rows() {
		return fmt.Errorf("%w: row %d outside [0,%d)", dynamo.ErrIndex, i, m.Rows())
	}
	return nil
}

func (m Matrix[M, N]) checkCol(j int) error {
	if j < 0 || j >= m.Cols() {
		return fmt.Errorf("%w: column %d outside [0,%d)", dynamo.ErrIndex, j, m.Cols())
	}
	return nil
}

// Row returns a copy of row i.
func (m Matrix[M, N]) Row(i int) (Vector[N], error) {
	if err := m.checkRow(i); err != nil {
		return Vector[N]{}, err
	}
	return m.rows[i], nil
}

func (m *Matrix[M, N]) SetRow(i int, v Vector[N]) error {
	if err := m.checkRow(i); err != nil {
		return err
	}
	m.rows[i] = v
	return nil
}

// Col gathers column j into a fresh vector.
func (m Matrix[M, N]) Col(j int) (Vector[M], error) {
	if err := m.checkCol(j); err != nil {
		return Vector[M]{}, err
	}
	return m.col(j), nil
}

func (m Matrix[M, N]) col(j int) Vector[M] {
	var v Vector[M]
	for i := 0; i < m.Rows(); i++ {
		v.c[i] = m.rows[i].c[j]
	}
	return v
}

func (m Matrix[M, N]) At(i, j int) (float64, error) {
	if err := m.checkRow(i); err != nil {
		return 0, err
	}
	if err := m.checkCol(j); err != nil {
		return 0, err
	}
	return m.rows[i].c[j], nil
}

func (m *Matrix[M, N]) Set(i, j int, x float64) error {
	if err := m.checkRow(i); err != nil {
		return err
	}
	if err := m.checkCol(j); err != nil {
		return err
	}
	m.rows[i].c[j] = x
	return nil
}

func (m Matrix[M, N]) Scale(s float64) Matrix[M, N] {
	m.ScaleInPlace(s)
	return m
}

func (m *Matrix[M, N]) ScaleInPlace(s float64) {
	for i := 0; i < m.Rows(); i++ {
		m.rows[i].ScaleInPlace(s)
	}
}

// AddScalar adds s to every element.
func (m Matrix[M, N]) AddScalar(s float64) Matrix[M, N] {
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			m.rows[i].c[j] += s
		}
	}
	return m
}

func (m Matrix[M, N]) Add(o Matrix[M, N]) Matrix[M, N] {
	m.AddInPlace(o)
	return m
}

func (m *Matrix[M, N]) AddInPlace(o Matrix[M, N]) {
	for i := 0; i < m.Rows(); i++ {
		m.rows[i].AddInPlace(o.rows[i])
	}
}

func (m Matrix[M, N]) Sub(o Matrix[M, N]) Matrix[M, N] {
	for i := 0; i < m.Rows(); i++ {
		m.rows[i].SubInPlace(o.rows[i])
	}
	return m
}

// MulVec multiplies m by the column vector v, one row dot product per output component.
func (m Matrix[M, N]) MulVec(v Vector[N]) Vector[M] {
	var out Vector[M]
	for i := 0; i < m.Rows(); i++ {
		out.c[i] = m.rows[i].Dot(v)
	}
	return out
}

// Transpose returns the N×M matrix whose rows are m's columns.
func (m Matrix[M, N]) Transpose() Matrix[N, M] {
	var t Matrix[N, M]
	for j := 0; j < m.Cols(); j++ {
		t.rows[j] = m.col(j)
	}
	return t
}

// TransposeInPlace transposes a square matrix without allocating a copy.
func TransposeInPlace[N Dim](m *Matrix[N, N]) {
	n := m.Rows()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.rows[i].c[j], m.rows[j].c[i] = m.rows[j].c[i], m.rows[i].c[j]
		}
	}
}

func (m Matrix[M, N]) EqualWithin(o Matrix[M, N], tol dynamo.Tolerance) bool {
	for i := 0; i < m.Rows(); i++ {
		if !m.rows[i].EqualWithin(o.rows[i], tol) {
			return false
		}
	}
	return true
}

func (m Matrix[M, N]) Equal(o Matrix[M, N]) bool {
	return m.EqualWithin(o, dynamo.DefaultTolerance)
}

func (m Matrix[M, N]) NotEqual(o Matrix[M, N]) bool {
	return !m.Equal(o)
}

// String renders one row per line.
func (m Matrix[M, N]) String() string {
	var b strings.Builder
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(m.rows[i].c[j], 'f', 6, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Mul returns the M×L product of an M×N and an N×L matrix. Mismatched inner
// dimensions do not type-check. Cost is O(M·N·L).
func Mul[M, N, L Dim](a Matrix[M, N], b Matrix[N, L]) Matrix[M, L] {
	var out Matrix[M, L]
	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	for i := 0; i < rows; i++ {
		for l := 0; l < cols; l++ {
			sum := 0.0
			for n := 0; n < inner; n++ {
				sum += a.rows[i].c[n] * b.rows[n].c[l]
			}
			out.rows[i].c[l] = sum
		}
	}
	return out
}

// ScaleMatrix is the scalar-first form of [Matrix.Scale].
func ScaleMatrix[M, N Dim](s float64, m Matrix[M, N]) Matrix[M, N] {
	return m.Scale(s)
}
