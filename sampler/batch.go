package sampler

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/shrink"
)

// StandardRuns generates n independent standard runs in parallel. Run i is
// driven by the substream derived from (seed, i), so results are identical
// for a given seed no matter how the work is scheduled. parallelism bounds
// the worker count; values below one mean GOMAXPROCS.
func (g *Generator) StandardRuns(n, nlive int, stop StopRule, seed uint64, parallelism int) ([]*core.Run, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrCount, n)
	}
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	runs := make([]*core.Run, n)
	var eg errgroup.Group
	eg.SetLimit(parallelism)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			run, err := g.StandardRun(shrink.DeriveRNG(seed, uint64(i)), nlive, stop)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			runs[i] = run

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return runs, nil
}
