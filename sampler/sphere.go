package sampler

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// sphereSample draws one point uniformly on the dim-sphere of the given
// radius and returns its first record components: a standard-normal vector
// rescaled to norm radius.
func sphereSample(rng *rand.Rand, dim, record int, radius float64) []float64 {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	vec := make([]float64, dim)
	norm := 0.0
	for norm == 0 {
		for i := range vec {
			vec[i] = normal.Rand()
		}
		norm = floats.Norm(vec, 2)
	}
	floats.Scale(radius/norm, vec)

	return vec[:record:record]
}

// SampleSphere draws len(radii) points, one per radius, uniformly on the
// problem's hyper-spheres and returns them as a len(radii)×dim matrix. This
// is the batch counterpart of the per-point sampling run generation uses;
// callers that need full coordinate sets (posterior plots, custom
// estimators) get them in one call.
func (g *Generator) SampleSphere(rng *rand.Rand, radii []float64) (*mat.Dense, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}
	if len(radii) == 0 {
		return nil, fmt.Errorf("%w: no radii", ErrCount)
	}
	dim := g.prob.Dim()
	out := mat.NewDense(len(radii), dim, nil)
	for i, r := range radii {
		out.SetRow(i, sphereSample(rng, dim, dim, r))
	}

	return out, nil
}
