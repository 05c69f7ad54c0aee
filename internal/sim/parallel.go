package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/san-kum/welcome/internal/scene"
)

// Ensemble runs the same message under consecutive seeds. Every run gets its
// own scene and its own metrics, so runs share no state.
type Ensemble struct {
	message   string
	cfg       scene.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(message string, cfg scene.Config, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{message: message, cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			sc, err := scene.New(e.message, e.cfg, rand.New(rand.NewSource(cfgCopy.Seed)), nil)
			if err != nil {
				errs[idx] = err
				return
			}

			r := New()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, sc, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
