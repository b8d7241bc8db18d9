package linalg

import (
	"fmt"

	"github.com/san-kum/fizx/internal/dynamo"
)

// Cross returns a × b using the right-hand rule.
func Cross(a, b Vec3) Vec3 {
	ax, ay, az := a.c[0], a.c[1], a.c[2]
	bx, by, bz := b.c[0], b.c[1], b.c[2]
	return V3(
		ay*bz-az*by,
		az*bx-ax*bz,
		ax*by-ay*bx,
	)
}

// OrthonormalBasis builds a right-handed orthonormal triple from a and b
// using [dynamo.DefaultTolerance] to detect parallel inputs.
func OrthonormalBasis(a, b Vec3) (Vec3, Vec3, Vec3, error) {
	return OrthonormalBasisWithin(a, b, dynamo.DefaultTolerance)
}

// OrthonormalBasisWithin normalises a, takes c = a × b, and recomputes
// b = c × a so the three are mutually orthogonal. Inputs whose cross product
// is shorter than tol relative to |b| are treated as parallel.
func OrthonormalBasisWithin(a, b Vec3, tol dynamo.Tolerance) (Vec3, Vec3, Vec3, error) {
	a.NormalizeInPlace()
	c := Cross(a, b)

	limit := float64(tol) * b.Magnitude()
	if a.IsZero() || c.Magnitude() <= limit {
		return a, b, c, fmt.Errorf("%w: basis vectors %v and %v are parallel", dynamo.ErrDomain, a, b)
	}

	c.NormalizeInPlace()
	b = Cross(c, a)
	return a, b, c, nil
}

func XY(v Vec2) (x, y float64) {
	return v.c[0], v.c[1]
}

func XYZ(v Vec3) (x, y, z float64) {
	return v.c[0], v.c[1], v.c[2]
}

func XYZW(v Vec4) (x, y, z, w float64) {
	return v.c[0], v.c[1], v.c[2], v.c[3]
}
