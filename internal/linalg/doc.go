// Package linalg implements fixed-size vectors and matrices whose dimensions
// are part of their types.
//
// [Vector] and [Matrix] are parameterised by dimension markers ([D1] to [D4]),
// so a Vec2 can never be added to a Vec3 and [Mul] only accepts an M×N and an
// N×L operand. Runtime constructors that receive a variable number of values
// ([NewVector], [NewMatrix], [MatrixFromRows]) report
// [dynamo.ErrDimensionMismatch]; indexed access reports [dynamo.ErrIndex].
//
// Equality is componentwise with an absolute [dynamo.Tolerance]. Use
// EqualWithin to pick the tolerance at the call site; Equal uses
// [dynamo.DefaultTolerance].
//
//	x, _ := linalg.NewMatrix[linalg.D3, linalg.D3](3, 2, 1, 4, 5, 6, 0, 1, 2)
//	y := linalg.Identity[linalg.D3]()
//	z := linalg.Mul(x, y) // Mat3
package linalg
