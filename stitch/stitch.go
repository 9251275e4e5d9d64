package stitch

import (
	"fmt"

	"github.com/10jackyhu24/Audio2Score/model"
	"github.com/10jackyhu24/Audio2Score/roll"
)

// Prediction is one window of model output placed on the global frame
// timeline.
type Prediction struct {
	StartFrame int
	Matrix     roll.DenseMatrix
}

// Accumulator folds overlapping window predictions into per-cell sums
// and coverage counts. Folding is associative and commutative, so
// windows may be added in any order and partial accumulators may be
// merged; the division happens exactly once, in Finalize.
type Accumulator struct {
	frames int
	bins   int
	sum    []float32
	count  []uint32
}

func NewAccumulator(totalFrames, bins int) (*Accumulator, error) {
	if totalFrames <= 0 || bins <= 0 {
		return nil, fmt.Errorf("%w: accumulator shape (%v,%v)", model.ErrInvalidInput, totalFrames, bins)
	}
	return &Accumulator{
		frames: totalFrames,
		bins:   bins,
		sum:    make([]float32, totalFrames*bins),
		count:  make([]uint32, totalFrames*bins),
	}, nil
}

// Add folds one window in. Frames falling outside the global timeline
// are ignored; a bin-count mismatch is a configuration error.
func (a *Accumulator) Add(p Prediction) error {
	if p.Matrix.Bins != a.bins {
		return fmt.Errorf("%w: prediction has %v bins, accumulator %v", model.ErrConfigMismatch, p.Matrix.Bins, a.bins)
	}
	for f := 0; f < p.Matrix.Frames; f++ {
		gf := p.StartFrame + f
		if gf < 0 || gf >= a.frames {
			continue
		}
		src := f * p.Matrix.Bins
		dst := gf * a.bins
		for b := 0; b < a.bins; b++ {
			a.sum[dst+b] += p.Matrix.Data[src+b]
			a.count[dst+b]++
		}
	}
	return nil
}

// Merge adds another accumulator's partial sums and counts into this
// one. Merging averaged outputs instead would weight windows wrongly;
// only (sum,count) pairs compose.
func (a *Accumulator) Merge(o *Accumulator) error {
	if o.frames != a.frames || o.bins != a.bins {
		return fmt.Errorf("%w: accumulator shapes (%v,%v) vs (%v,%v)",
			model.ErrConfigMismatch, a.frames, a.bins, o.frames, o.bins)
	}
	for i := range a.sum {
		a.sum[i] += o.sum[i]
		a.count[i] += o.count[i]
	}
	return nil
}

// Finalize divides each covered cell by its coverage count. Cells no
// window touched stay zero.
func (a *Accumulator) Finalize() roll.DenseMatrix {
	out := roll.NewDenseMatrix(a.frames, a.bins)
	for i, c := range a.count {
		if c > 0 {
			out.Data[i] = a.sum[i] / float32(c)
		}
	}
	return out
}

// Stitch folds all predictions sequentially and finalizes.
func Stitch(preds []Prediction, totalFrames, bins int) (roll.DenseMatrix, error) {
	acc, err := NewAccumulator(totalFrames, bins)
	if err != nil {
		return roll.DenseMatrix{}, err
	}
	for _, p := range preds {
		if err := acc.Add(p); err != nil {
			return roll.DenseMatrix{}, err
		}
	}
	return acc.Finalize(), nil
}
