package rsafermat

import (
	"context"
	"math/big"
	"runtime"
	"sync"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ParallelFermat stripes the Fermat window across several workers.
//
// Worker w examines candidates w, w+Workers, w+2*Workers, ... so the total
// number of candidates stays bounded by maxIterations. The first worker to hit
// a perfect square wins and the others are cancelled.
type ParallelFermat struct {
	// Workers controls parallelization (0 = runtime.NumCPU())
	Workers int
}

// Name returns the name of this strategy.
func (p *ParallelFermat) Name() string {
	return "ParallelFermat"
}

func (p *ParallelFermat) workers(maxIterations int) int {
	n := p.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > maxIterations {
		n = maxIterations
	}
	return n
}

// Factor implements the FactorStrategy interface.
func (p *ParallelFermat) Factor(ctx context.Context, n *big.Int, maxIterations int) (*Factors, error) {
	if err := checkFactorInput(n, maxIterations); err != nil {
		return nil, err
	}

	numWorkers := p.workers(maxIterations)
	log.WithFields(log.Fields{
		"bits":           n.BitLen(),
		"max_iterations": maxIterations,
		"workers":        numWorkers,
	}).Debug("Starting parallel Fermat search")

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once   sync.Once
		result *Factors
	)

	start := fermatStart(n)
	eg, egCtx := errgroup.WithContext(searchCtx)
	for w := 0; w < numWorkers; w++ {
		offset := w
		eg.Go(func() error {
			f, err := searchStripe(egCtx, n, start, offset, numWorkers, maxIterations)
			if err != nil {
				// Cancellation after another worker won is not a failure.
				if errors.Is(err, context.Canceled) && ctx.Err() == nil {
					return nil
				}
				return err
			}
			if f != nil {
				once.Do(func() {
					result = f
					cancel()
				})
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && result == nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, errors.Wrapf(ErrFactorizationFailed, "no perfect square within %d iterations", maxIterations)
}
