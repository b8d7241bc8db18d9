package forces_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fizx/internal/dynamo"
	"github.com/san-kum/fizx/internal/forces"
	"github.com/san-kum/fizx/internal/linalg"
	"github.com/san-kum/fizx/internal/particle"
)

// constant adds a fixed force and counts its calls.
type constant struct {
	mu    sync.Mutex
	force linalg.Vec3
	calls int
}

func (c *constant) UpdateForce(p *particle.Particle, dt float64) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	p.AddForce(c.force)
}

// recorder appends its tag to a shared log.
type recorder struct {
	tag string
	log *[]string
}

func (r *recorder) UpdateForce(p *particle.Particle, dt float64) {
	*r.log = append(*r.log, r.tag)
}

type clock struct {
	advanced float64
	ticks    int
}

func (c *clock) UpdateForce(p *particle.Particle, dt float64) {}
func (c *clock) Advance(dt float64) {
	c.advanced += dt
	c.ticks++
}

type funcGenerator func(p *particle.Particle, dt float64)

func (f funcGenerator) UpdateForce(p *particle.Particle, dt float64) { f(p, dt) }

// boxed has a comparable type but compares by its dynamic field.
type boxed struct {
	v any
}

func (b boxed) UpdateForce(p *particle.Particle, dt float64) {}

var _ = Describe("Registry", func() {
	var (
		reg *forces.Registry
		p   *particle.Particle
		q   *particle.Particle
		g   *constant
	)

	BeforeEach(func() {
		reg = forces.NewRegistry()
		p = particle.New()
		q = particle.New()
		g = &constant{force: linalg.V3(1, 2, 3)}
	})

	It("adds contributions into the accumulator", func() {
		Expect(reg.Add(p, g)).To(Succeed())
		reg.UpdateForces(0.1)
		Expect(p.Accumulator().Equal(linalg.V3(1, 2, 3))).To(BeTrue())
	})

	It("applies a duplicated registration twice", func() {
		Expect(reg.Add(p, g)).To(Succeed())
		reg.UpdateForces(0.1)
		once := p.Accumulator()

		p.ClearAccumulator()
		Expect(reg.Add(p, g)).To(Succeed())
		Expect(reg.Len()).To(Equal(2))
		Expect(reg.Count(p, g)).To(Equal(2))

		reg.UpdateForces(0.1)
		Expect(p.Accumulator().Equal(once.Scale(2))).To(BeTrue())
	})

	It("shares one generator across particles", func() {
		Expect(reg.Add(p, g)).To(Succeed())
		Expect(reg.Add(q, g)).To(Succeed())
		reg.UpdateForces(0.1)

		Expect(g.calls).To(Equal(2))
		Expect(p.Accumulator().Equal(q.Accumulator())).To(BeTrue())
	})

	It("invokes registrations in insertion order", func() {
		var log []string
		a := &recorder{tag: "a", log: &log}
		b := &recorder{tag: "b", log: &log}
		c := &recorder{tag: "c", log: &log}

		Expect(reg.Add(p, b)).To(Succeed())
		Expect(reg.Add(q, a)).To(Succeed())
		Expect(reg.Add(p, c)).To(Succeed())
		reg.UpdateForces(0.1)

		Expect(log).To(Equal([]string{"b", "a", "c"}))
	})

	Describe("Remove", func() {
		It("removes every matching registration and keeps the rest in order", func() {
			var log []string
			other := &recorder{tag: "other", log: &log}

			Expect(reg.Add(p, g)).To(Succeed())
			Expect(reg.Add(p, other)).To(Succeed())
			Expect(reg.Add(p, g)).To(Succeed())
			Expect(reg.Add(q, g)).To(Succeed())

			Expect(reg.Remove(p, g)).To(Equal(2))
			Expect(reg.Len()).To(Equal(2))
			Expect(reg.Count(p, g)).To(Equal(0))
			Expect(reg.Count(q, g)).To(Equal(1))

			reg.UpdateForces(0.1)
			Expect(log).To(Equal([]string{"other"}))
			Expect(p.Accumulator().IsZero()).To(BeTrue())
			Expect(q.Accumulator().Equal(linalg.V3(1, 2, 3))).To(BeTrue())
		})

		It("returns zero for an unknown pair and leaves the particle alone", func() {
			p.SetPosition(linalg.V3(5, 5, 5))
			Expect(reg.Remove(p, g)).To(Equal(0))
			Expect(p.Position().Equal(linalg.V3(5, 5, 5))).To(BeTrue())
		})
	})

	It("clears all registrations without touching particles", func() {
		p.AddForce(linalg.V3(9, 9, 9))
		Expect(reg.Add(p, g)).To(Succeed())
		Expect(reg.Add(q, g)).To(Succeed())

		reg.Clear()
		Expect(reg.Len()).To(Equal(0))
		reg.UpdateForces(0.1)

		Expect(g.calls).To(Equal(0))
		Expect(p.Accumulator().Equal(linalg.V3(9, 9, 9))).To(BeTrue())
	})

	It("rejects nil and non-comparable arguments", func() {
		Expect(reg.Add(nil, g)).To(MatchError(dynamo.ErrInvalidArgument))
		Expect(reg.Add(p, nil)).To(MatchError(dynamo.ErrInvalidArgument))

		fn := funcGenerator(func(p *particle.Particle, dt float64) {})
		Expect(reg.Add(p, fn)).To(MatchError(dynamo.ErrInvalidArgument))

		slice := boxed{v: []int{1}}
		Expect(reg.Add(p, slice)).To(MatchError(dynamo.ErrInvalidArgument))
		Expect(reg.Remove(p, slice)).To(Equal(0))
		Expect(reg.Len()).To(Equal(0))

		Expect(reg.Add(p, boxed{v: 1})).To(Succeed())
		Expect(reg.Count(p, slice)).To(Equal(0))
		Expect(reg.Remove(p, slice)).To(Equal(0))
		Expect(reg.Remove(p, boxed{v: 1})).To(Equal(1))
	})

	It("advances each clocked generator once per pass", func() {
		c := &clock{}
		Expect(reg.Add(p, c)).To(Succeed())
		Expect(reg.Add(q, c)).To(Succeed())
		Expect(reg.Add(p, c)).To(Succeed())

		reg.UpdateForces(0.25)
		reg.UpdateForcesParallel(0.25, 4)

		Expect(c.ticks).To(Equal(2))
		Expect(c.advanced).To(BeNumerically("~", 0.5, 1e-12))
	})

	Describe("UpdateForcesParallel", func() {
		It("matches the serial pass", func() {
			serial := forces.NewRegistry()
			parallel := forces.NewRegistry()
			drag := forces.NewDrag(0.3, 0.05)
			gravity := forces.NewGravity(forces.StandardGravity)

			var sp, pp []*particle.Particle
			for i := 0; i < 64; i++ {
				a, b := particle.New(), particle.New()
				v := linalg.V3(float64(i), float64(-i)/2, 1)
				a.SetVelocity(v)
				b.SetVelocity(v)
				Expect(a.SetMass(float64(i + 1))).To(Succeed())
				Expect(b.SetMass(float64(i + 1))).To(Succeed())
				sp, pp = append(sp, a), append(pp, b)

				Expect(serial.Add(a, gravity)).To(Succeed())
				Expect(serial.Add(a, drag)).To(Succeed())
				Expect(parallel.Add(b, gravity)).To(Succeed())
				Expect(parallel.Add(b, drag)).To(Succeed())
			}

			serial.UpdateForces(0.01)
			parallel.UpdateForcesParallel(0.01, 8)

			for i := range sp {
				Expect(pp[i].Accumulator().Equal(sp[i].Accumulator())).To(BeTrue(), "particle %d", i)
			}
		})

		It("lets concurrent mutation and iteration interleave safely", func() {
			for i := 0; i < 16; i++ {
				Expect(reg.Add(particle.New(), g)).To(Succeed())
			}

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for i := 0; i < 50; i++ {
					reg.UpdateForcesParallel(0.01, 4)
				}
			}()
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for i := 0; i < 50; i++ {
					Expect(reg.Add(particle.New(), g)).To(Succeed())
				}
			}()
			wg.Wait()

			Expect(reg.Len()).To(Equal(66))
		})
	})
})
