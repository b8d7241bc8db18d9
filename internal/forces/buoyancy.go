package forces

import (
	"fmt"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

// DensityWater in kg/m³.
const DensityWater = 1000.0

// Buoyancy pushes a particle up along +Y in proportion to how far below
// waterHeight it is. The particle is treated as a body spanning
// ±maxDepth around its position.
type Buoyancy struct {
	maxDepth      float64
	volume        float64
	waterHeight   float64
	liquidDensity float64
}

func NewBuoyancy(maxDepth, volume, waterHeight, liquidDensity float64) (*Buoyancy, error) {
	if !(maxDepth > 0) {
		return nil, fmt.Errorf("%w: buoyancy max depth must be positive, got %g", dynamo.ErrInvalidArgument, maxDepth)
	}
	if volume < 0 || liquidDensity < 0 {
		return nil, fmt.Errorf("%w: buoyancy volume and density must be >= 0", dynamo.ErrInvalidArgument)
	}
	return &Buoyancy{
		maxDepth:      maxDepth,
		volume:        volume,
		waterHeight:   waterHeight,
		liquidDensity: liquidDensity,
	}, nil
}

func (b *Buoyancy) UpdateForce(p *particle.Particle, dt float64) {
	_, y, _ := linalg.XYZ(p.Position())

	if y >= b.waterHeight+b.maxDepth {
		return
	}

	full := b.liquidDensity * b.volume
	if y <= b.waterHeight-b.maxDepth {
		p.AddForce(linalg.V3(0, full, 0))
		return
	}

	submerged := (b.waterHeight + b.maxDepth - y) / (2 * b.maxDepth)
	p.AddForce(linalg.V3(0, full*submerged, 0))
}
