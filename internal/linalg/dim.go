package linalg

// MaxDim is the largest supported dimension. Storage for every vector is a
// fixed array of this length; components past the vector's own size stay zero.
const MaxDim = 4

// Dimension markers. They carry no data; the type alone fixes the size.
type (
	D1 struct{}
	D2 struct{}
	D3 struct{}
	D4 struct{}
)

func (D1) Size() int { return 1 }
func (D2) Size() int { return 2 }
func (D3) Size() int { return 3 }
func (D4) Size() int { return 4 }

// Dim is the closed set of dimension markers accepted by [Vector] and [Matrix].
type Dim interface {
	D1 | D2 | D3 | D4
	Size() int
}

func size[N Dim]() int {
	var n N
	return n.Size()
}
