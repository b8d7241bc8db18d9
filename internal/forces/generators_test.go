package forces_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/forces"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

func at(x, y, z float64) *particle.Particle {
	p := particle.New()
	p.SetPosition(linalg.V3(x, y, z))
	return p
}

var _ = Describe("Gravity", func() {
	It("scales by mass", func() {
		p := particle.New()
		Expect(p.SetMass(3)).To(Succeed())

		forces.NewGravity(linalg.V3(0, -10, 0)).UpdateForce(p, 0.1)
		Expect(p.Accumulator().Equal(linalg.V3(0, -30, 0))).To(BeTrue())
	})

	It("yields the same acceleration for any mass", func() {
		g := forces.NewGravity(forces.StandardGravity)
		for _, m := range []float64{0.5, 1, 70} {
			p := particle.New()
			Expect(p.SetMass(m)).To(Succeed())
			g.UpdateForce(p, 0.01)
			acc := p.Accumulator().Scale(p.InverseMass())
			Expect(acc.Equal(g.Acceleration())).To(BeTrue())
		}
	})

	It("ignores immovable particles", func() {
		p := particle.New()
		Expect(p.SetMass(-1)).To(Succeed())
		forces.NewGravity(forces.StandardGravity).UpdateForce(p, 0.1)
		Expect(p.Accumulator().IsZero()).To(BeTrue())
	})
})

var _ = Describe("Drag", func() {
	It("is zero at rest", func() {
		p := particle.New()
		forces.NewDrag(1, 1).UpdateForce(p, 0.1)
		Expect(p.Accumulator().IsZero()).To(BeTrue())
		Expect(p.Accumulator().IsFinite()).To(BeTrue())
	})

	It("opposes velocity with k1|v| + k2|v|^2", func() {
		p := particle.New()
		p.SetVelocity(linalg.V3(3, 4, 0))
		forces.NewDrag(0.5, 0.1).UpdateForce(p, 0.1)

		// |v| = 5, magnitude = 2.5 + 2.5
		Expect(p.Accumulator().Equal(linalg.V3(-3, -4, 0))).To(BeTrue())
	})
})

var _ = Describe("Springs", func() {
	It("pulls a stretched spring together", func() {
		a, b := at(3, 0, 0), at(0, 0, 0)
		s, err := forces.NewSpring(b, 2, 1)
		Expect(err).NotTo(HaveOccurred())

		s.UpdateForce(a, 0.1)
		Expect(a.Accumulator().Equal(linalg.V3(-4, 0, 0))).To(BeTrue())
	})

	It("pushes a compressed spring apart", func() {
		a, b := at(0.5, 0, 0), at(0, 0, 0)
		s, _ := forces.NewSpring(b, 2, 1)
		s.UpdateForce(a, 0.1)
		Expect(a.Accumulator().Equal(linalg.V3(1, 0, 0))).To(BeTrue())
	})

	It("anchors to a fixed point", func() {
		a := at(0, -3, 0)
		s, err := forces.NewAnchoredSpring(linalg.V3(0, 0, 0), 5, 1)
		Expect(err).NotTo(HaveOccurred())
		s.UpdateForce(a, 0.1)
		Expect(a.Accumulator().Equal(linalg.V3(0, 10, 0))).To(BeTrue())

		s.SetAnchor(linalg.V3(0, -3, 0))
		Expect(s.Anchor().Equal(linalg.V3(0, -3, 0))).To(BeTrue())
	})

	It("leaves a slack bungee alone", func() {
		a, b := at(0.5, 0, 0), at(0, 0, 0)
		bg, err := forces.NewBungee(b, 2, 1)
		Expect(err).NotTo(HaveOccurred())

		bg.UpdateForce(a, 0.1)
		Expect(a.Accumulator().IsZero()).To(BeTrue())

		a.SetPosition(linalg.V3(0, 4, 0))
		bg.UpdateForce(a, 0.1)
		Expect(a.Accumulator().Equal(linalg.V3(0, -6, 0))).To(BeTrue())
	})

	It("rejects bad parameters", func() {
		_, err := forces.NewSpring(nil, 1, 1)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		_, err = forces.NewAnchoredSpring(linalg.Vec3{}, -1, 1)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		_, err = forces.NewBungee(particle.New(), 1, -2)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})
})

var _ = Describe("Buoyancy", func() {
	var b *forces.Buoyancy

	BeforeEach(func() {
		var err error
		b, err = forces.NewBuoyancy(0.5, 0.1, 0, forces.DensityWater)
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("force by height",
		func(y, want float64) {
			p := at(0, y, 0)
			b.UpdateForce(p, 0.1)
			Expect(p.Accumulator().Equal(linalg.V3(0, want, 0))).To(BeTrue(), "got %v", p.Accumulator())
		},
		Entry("out of water", 1.0, 0.0),
		Entry("at the surface limit", 0.5, 0.0),
		Entry("half submerged", 0.0, 50.0),
		Entry("fully submerged", -2.0, 100.0),
	)

	It("rejects a non-positive depth", func() {
		_, err := forces.NewBuoyancy(0, 1, 0, 1)
		Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
	})
})

var _ = Describe("Noise fields", func() {
	It("wind is deterministic for a seed", func() {
		w1 := forces.NewWind(7, 2, 0.3, 1)
		w2 := forces.NewWind(7, 2, 0.3, 1)

		for i := 0; i < 20; i++ {
			a, b := at(float64(i), 1, -2), at(float64(i), 1, -2)
			w1.UpdateForce(a, 0.1)
			w2.UpdateForce(b, 0.1)
			Expect(a.Accumulator().Equal(b.Accumulator())).To(BeTrue())

			Expect(a.Accumulator().IsFinite()).To(BeTrue())
			w1.Advance(0.1)
			w2.Advance(0.1)
		}
		Expect(w1.Elapsed()).To(BeNumerically("~", 2.0, 1e-9))
	})

	It("turbulence applies the same gust to every particle", func() {
		tb := forces.NewTurbulence(3, 5, 0.7)
		tb.Advance(1.3)

		a, b := at(0, 0, 0), at(100, -4, 9)
		tb.UpdateForce(a, 0.1)
		tb.UpdateForce(b, 0.1)
		Expect(a.Accumulator().Equal(b.Accumulator())).To(BeTrue())
		Expect(a.Accumulator().Equal(tb.Gust())).To(BeTrue())
		Expect(tb.Elapsed()).To(BeNumerically("~", 1.3, 1e-12))
	})
})
