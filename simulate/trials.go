package simulate

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/aquarisk/campy-qmra/common"
	"github.com/aquarisk/campy-qmra/model"
	"github.com/aquarisk/campy-qmra/utils"
)

// RunOptions tunes execution of the trial loop without affecting results.
type RunOptions struct {
	// Workers is the worker pool size; 0 means MaxParallelism().
	Workers int
	// OnTrialDone, if set, is called once per finished trial. It may be
	// called from multiple goroutines.
	OnTrialDone func()
}

// MaxParallelism returns the usable degree of parallelism on this machine.
func MaxParallelism() int {
	maxProcs := runtime.GOMAXPROCS(0)
	numCPU := runtime.NumCPU()
	return utils.IntMin(maxProcs, numCPU)
}

// RunTrials repeats the cohort simulation TrialCount times and returns the
// ordered sequence of per-trial infected counts.
//
// Trials are independent, so they run on a worker pool. Each trial draws
// from its own seeded stream and writes to its own slice index, which makes
// the result identical for any worker count or scheduling order.
func RunTrials(ctx context.Context, cfg model.AssessmentConfig, opts RunOptions) ([]float64, error) {
	logger := utils.GetLogger(ctx)

	if cfg.TrialCount <= 0 {
		return nil, common.ErrorInvalidTrialCount
	}
	if cfg.CohortSize <= 0 {
		return nil, common.ErrorInvalidCohortSize
	}

	sim, err := NewCohortSimulator(cfg)
	if err != nil {
		logger.Error("NewCohortSimulator failed", zap.Error(err))
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = MaxParallelism()
	}
	workers = utils.IntMin(workers, cfg.TrialCount)

	outcomes := make([]float64, cfg.TrialCount)
	trials := make(chan int)

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range trials {
				src := rand.NewSource(trialSeed(cfg.Seed, i))
				cohort, err := sim.Run(cfg.CohortSize, src)
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					continue
				}
				outcomes[i] = float64(CountInfected(cohort))
				if opts.OnTrialDone != nil {
					opts.OnTrialDone()
				}
			}
		}()
	}

	for i := 0; i < cfg.TrialCount; i++ {
		trials <- i
	}
	close(trials)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return outcomes, nil
}

// trialSeed derives an independent stream seed from the master seed and the
// trial index (SplitMix64 finalizer). Nearby indices must not produce
// correlated streams.
func trialSeed(seed uint64, trial int) uint64 {
	z := seed + uint64(trial+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
