package scene_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/welcome/internal/glyph"
	"github.com/san-kum/welcome/internal/scene"
	"github.com/san-kum/welcome/internal/wave"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

var _ = Describe("Scene", func() {
	var cfg scene.Config

	BeforeEach(func() {
		cfg = scene.DefaultConfig()
	})

	Describe("construction", func() {
		It("creates one glyph per rune in message order", func() {
			sc, err := scene.New("héllo", cfg, seeded(1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Len()).To(Equal(5))

			runes := make([]rune, 0, sc.Len())
			for _, g := range sc.Glyphs() {
				runes = append(runes, g.Rune())
			}
			Expect(string(runes)).To(Equal("héllo"))
		})

		It("places the two letters of \"hi\" around the canvas center", func() {
			cfg.StartTime = 0
			sc, err := scene.New("hi", cfg, seeded(7), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Len()).To(Equal(2))

			gs := sc.Glyphs()
			for _, g := range gs {
				lo, hi := g.Horizontal().(*wave.LocalWave).Range()
				Expect(lo).To(Equal(32.0))
				Expect(hi).To(Equal(568.0))
			}

			_, off0 := gs[0].Horizontal().(*wave.LocalWave).Cycle()
			_, off1 := gs[1].Horizontal().(*wave.LocalWave).Cycle()
			Expect(off0).To(BeNumerically("~", math.Asin(-1.0/3), 1e-12))
			Expect(off1).To(BeNumerically("~", math.Asin(1.0/3), 1e-12))

			x0, _ := gs[0].Position()
			x1, _ := gs[1].Position()
			Expect(x0).To(BeNumerically("<", 300))
			Expect(x1).To(BeNumerically(">", 300))
			Expect(x0).To(BeNumerically("~", 32+536.0/3, 1e-9))
			Expect(x1).To(BeNumerically("~", 32+2*536.0/3, 1e-9))
		})

		It("gives later letters a higher vertical frequency", func() {
			sc, err := scene.New("macalester", cfg, seeded(3), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Phasing()).To(BeNumerically(">=", 0))
			Expect(sc.Phasing()).To(BeNumerically("<", scene.DefaultPhaseSpread))

			prev := 0.0
			for i, g := range sc.Glyphs() {
				wl, off := g.Vertical().(*wave.LocalWave).Cycle()
				Expect(off).To(Equal(0.0))
				Expect(wl).To(BeNumerically("~", float64(i)*sc.Phasing()+1, 1e-12))
				Expect(wl).To(BeNumerically(">=", prev))
				prev = wl
			}
		})

		It("is deterministic for a fixed seed", func() {
			a, _ := scene.New("macalester", cfg, seeded(42), nil)
			b, _ := scene.New("macalester", cfg, seeded(42), nil)
			for i := 0; i < 100; i++ {
				Expect(a.Step()).To(Equal(b.Step()))
			}
			for i, g := range a.Glyphs() {
				Expect(g.Hue()).To(Equal(b.Glyphs()[i].Hue()))
			}
		})

		It("primes renderables so the first spread is real", func() {
			sprites := map[rune]*glyph.Sprite{}
			factory := func(r rune) glyph.Renderable {
				s := &glyph.Sprite{Rune: r}
				sprites[r] = s
				return s
			}
			sc, err := scene.New("ab", cfg, seeded(5), factory)
			Expect(err).NotTo(HaveOccurred())
			Expect(sprites).To(HaveLen(2))
			for _, s := range sprites {
				Expect(s.Y).To(BeNumerically(">=", cfg.Margin))
				Expect(s.Y).To(BeNumerically("<=", cfg.Height-cfg.Margin))
			}
			Expect(sc.Time()).To(Equal(scene.DefaultStartTime))
		})

		It("accepts an empty message", func() {
			sc, err := scene.New("", cfg, seeded(1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Spread()).To(Equal(0.0))
			Expect(sc.Step().Dt).To(Equal(scene.DefaultSlowMoSpeed))
		})

		DescribeTable("rejects unusable configuration",
			func(mutate func(*scene.Config), want error) {
				mutate(&cfg)
				_, err := scene.New("hi", cfg, seeded(1), nil)
				Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)
			},
			Entry("zero width", func(c *scene.Config) { c.Width = 0 }, scene.ErrConfig),
			Entry("margin too large", func(c *scene.Config) { c.Margin = 250 }, scene.ErrConfig),
			Entry("negative phase spread", func(c *scene.Config) { c.PhaseSpread = -1 }, scene.ErrConfig),
			Entry("zero slow motion floor", func(c *scene.Config) { c.Pacing.SlowMoSpeed = 0 }, scene.ErrConfig),
			Entry("unknown clock", func(c *scene.Config) { c.Clock = "sundial" }, wave.ErrUnknownKind),
			Entry("unknown hue rule", func(c *scene.Config) { c.Hue = "rainbow" }, glyph.ErrUnknownHueRule),
		)

		DescribeTable("spaces n letters evenly across the width at time zero",
			func(n int) {
				prev := math.Inf(-1)
				for i := 0; i < n; i++ {
					w := wave.NewSine()
					Expect(w.SetCycle(1, scene.HorizontalPhase(i, n))).To(Succeed())
					Expect(w.SetRange(0, 600)).To(Succeed())

					x := w.ValueAt(0)
					Expect(x).To(BeNumerically("~", 600*float64(i+1)/float64(n+1), 1e-9))
					Expect(x).To(BeNumerically(">", prev))
					Expect(x).To(BeNumerically(">", 0))
					Expect(x).To(BeNumerically("<", 600))
					prev = x
				}
			},
			Entry("nine letters", 9),
			Entry("macalester", len("macalester")),
		)
	})

	Describe("stepping", func() {
		for _, variant := range []struct {
			clock wave.Kind
			hue   string
		}{
			{wave.KindLocal, "sparkle"},
			{wave.KindAbsolute, "drift"},
		} {
			variant := variant
			It("keeps every letter inside the margins for 1000 ticks with "+string(variant.clock)+" clocks", func() {
				cfg.Clock = variant.clock
				cfg.Hue = variant.hue
				sc, err := scene.New("macalester", cfg, seeded(2024), nil)
				Expect(err).NotTo(HaveOccurred())

				minX, maxX, minY, maxY := sc.Bounds()
				for i := 0; i < 1000; i++ {
					f := sc.Step()
					Expect(f.Index).To(Equal(i + 1))
					Expect(f.Dt).To(BeNumerically(">=", cfg.Pacing.Floor()))
					Expect(f.Dt).To(BeNumerically("<", cfg.Pacing.Ceiling()))
					for _, g := range sc.Glyphs() {
						s := g.Target().(*glyph.Sprite)
						Expect(s.X).To(BeNumerically(">=", minX))
						Expect(s.X).To(BeNumerically("<=", maxX))
						Expect(s.Y).To(BeNumerically(">=", minY))
						Expect(s.Y).To(BeNumerically("<=", maxY))
						Expect(s.Hue).To(BeNumerically(">=", 0))
						Expect(s.Hue).To(BeNumerically("<", 1))
					}
				}
				Expect(sc.Len()).To(Equal(10))
				Expect(sc.Frames()).To(Equal(1000))
			})
		}

		It("derives dt from the spread measured before the update", func() {
			sc, _ := scene.New("macalester", cfg, seeded(11), nil)
			before := sc.Spread()
			start := sc.Time()
			f := sc.Step()
			Expect(f.Spread).To(Equal(before))
			Expect(f.Dt).To(Equal(cfg.Pacing.Step(before)))
			Expect(sc.Time()).To(BeNumerically("~", start+f.Dt, 1e-12))
		})

		It("moves local and absolute clocks along the same curves", func() {
			local, _ := scene.New("wave", cfg, seeded(9), nil)
			cfg.Clock = wave.KindAbsolute
			absolute, _ := scene.New("wave", cfg, seeded(9), nil)

			for i := 0; i < 300; i++ {
				local.Step()
				absolute.Step()
			}
			lg, ag := local.Glyphs(), absolute.Glyphs()
			for i := range lg {
				lx, ly := lg[i].Position()
				ax, ay := ag[i].Position()
				Expect(lx).To(BeNumerically("~", ax, 1e-6))
				Expect(ly).To(BeNumerically("~", ay, 1e-6))
			}
		})
	})
})

var _ = Describe("Pacing", func() {
	p := scene.DefaultPacing()

	It("crawls at the slow-motion floor when letters line up", func() {
		Expect(p.Step(0)).To(Equal(scene.DefaultSlowMoSpeed))
		Expect(p.Step(-0.5)).To(Equal(scene.DefaultSlowMoSpeed))
		Expect(p.Step(1e-4)).To(BeNumerically("~", scene.DefaultSlowMoSpeed, 1e-12))
	})

	It("approaches full speed for a large spread", func() {
		full := scene.DefaultRegularSpeed + scene.DefaultSlowMoSpeed
		Expect(p.Step(100)).To(BeNumerically("~", full, full*0.01))
		Expect(p.Step(100)).To(BeNumerically("<=", full))
	})

	It("never speeds up as the spread shrinks", func() {
		prev := p.Step(2)
		for s := 2.0; s >= 0; s -= 0.001 {
			dt := p.Step(s)
			Expect(dt).To(BeNumerically("<=", prev))
			prev = dt
		}
	})

	It("validates its constants", func() {
		Expect(p.Validate()).To(Succeed())
		bad := p
		bad.Curve = 0
		Expect(bad.Validate()).To(MatchError(scene.ErrConfig))
	})
})
