package stitch

import (
	"runtime"
	"sync"

	"github.com/10jackyhu24/Audio2Score/roll"
)

// StitchParallel partitions the predictions across workers, accumulates
// each partition into its own buffer, then merges all partial (sum,
// count) pairs before the single division. Equivalent to Stitch for any
// worker count; never exposes a partially accumulated buffer.
func StitchParallel(preds []Prediction, totalFrames, bins, workers int) (roll.DenseMatrix, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(preds) {
		workers = len(preds)
	}
	if workers <= 1 {
		return Stitch(preds, totalFrames, bins)
	}

	accs := make([]*Accumulator, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			acc, err := NewAccumulator(totalFrames, bins)
			if err != nil {
				errs[w] = err
				return
			}
			for i := w; i < len(preds); i += workers {
				if err := acc.Add(preds[i]); err != nil {
					errs[w] = err
					return
				}
			}
			accs[w] = acc
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return roll.DenseMatrix{}, err
		}
	}
	total := accs[0]
	for _, acc := range accs[1:] {
		if err := total.Merge(acc); err != nil {
			return roll.DenseMatrix{}, err
		}
	}
	return total.Finalize(), nil
}
