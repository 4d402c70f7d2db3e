package fractal

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func randomRegion(rng *rand.Rand) Region {
	x := -2.5 + 3*rng.Float64()
	y := -1.5 + 3*rng.Float64()
	span := 0.001 + 2*rng.Float64()
	return Region{
		XMin:   x,
		XMax:   x + span,
		YMin:   y,
		YMax:   y + span*(0.5+rng.Float64()),
		Width:  1 + rng.Intn(24),
		Height: 1 + rng.Intn(24),
	}
}

var _ = Describe("escape-time grids", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(42))
	})

	DescribeTable("keep every cell within the iteration budget",
		func(kind Kind) {
			for i := 0; i < 40; i++ {
				p := Params{
					Kind:    kind,
					Region:  randomRegion(rng),
					MaxIter: rng.Intn(60),
					C:       complex(-1+2*rng.Float64(), -1+2*rng.Float64()),
				}

				g, err := Compute(p)
				Expect(err).NotTo(HaveOccurred())
				Expect(g.Width()).To(Equal(p.Region.Width))
				Expect(g.Height()).To(Equal(p.Region.Height))
				Expect(g.MaxIter()).To(Equal(p.MaxIter))

				lo, hi := g.Bounds()
				Expect(lo).To(BeNumerically(">=", 0))
				Expect(hi).To(BeNumerically("<=", p.MaxIter))
			}
		},
		Entry("mandelbrot", Mandelbrot),
		Entry("julia", Julia),
	)

	It("returns identical grids for identical inputs", func() {
		r := randomRegion(rng)
		a, err := ComputeMandelbrot(r, 75)
		Expect(err).NotTo(HaveOccurred())
		b, err := ComputeMandelbrot(r, 75)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Values()).To(Equal(b.Values()))
	})

	It("keeps Julia counts distinct from first-escape counts", func() {
		r := Region{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Width: 3, Height: 3}
		c := complex(-0.7, 0.27)
		g, err := ComputeJulia(r, c, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(1, 1)).To(Equal(10))
		Expect(g.At(0, 0)).To(Equal(JuliaBounded(complex(-2, -2), c, 10)))
	})

	DescribeTable("reject invalid input without a grid",
		func(p Params, want error) {
			g, err := Compute(p)
			Expect(err).To(MatchError(want))
			Expect(g).To(BeNil())
		},
		Entry("equal x bounds", Params{Kind: Mandelbrot, Region: Region{XMin: 0, XMax: 0, YMin: 0, YMax: 1, Width: 2, Height: 2}, MaxIter: 5}, ErrInvalidRegion),
		Entry("zero width", Params{Kind: Julia, Region: Region{XMin: 0, XMax: 1, YMin: 0, YMax: 1, Width: 0, Height: 2}, MaxIter: 5}, ErrInvalidResolution),
		Entry("negative budget", Params{Kind: Mandelbrot, Region: Region{XMin: 0, XMax: 1, YMin: 0, YMax: 1, Width: 2, Height: 2}, MaxIter: -4}, ErrInvalidIterations),
	)
})
