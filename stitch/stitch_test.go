package stitch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/10jackyhu24/Audio2Score/model"
	"github.com/10jackyhu24/Audio2Score/roll"
)

func constMatrix(frames, bins int, v float32) roll.DenseMatrix {
	m := roll.NewDenseMatrix(frames, bins)
	for i := range m.Data {
		m.Data[i] = v
	}
	return m
}

func TestConstantWindowsStitchToConstant(t *testing.T) {
	preds := []Prediction{
		{StartFrame: 0, Matrix: constMatrix(10, 4, 0.7)},
		{StartFrame: 5, Matrix: constMatrix(10, 4, 0.7)},
		{StartFrame: 10, Matrix: constMatrix(10, 4, 0.7)},
	}

	out, err := Stitch(preds, 25, 4)

	assert := assert.New(t)
	assert.NoError(err)
	for f := 0; f < 20; f++ {
		for b := 0; b < 4; b++ {
			assert.InDelta(0.7, out.At(f, b), 1e-6)
		}
	}
	// frames no window covered stay zero
	for f := 20; f < 25; f++ {
		for b := 0; b < 4; b++ {
			assert.Equal(float32(0), out.At(f, b))
		}
	}
}

func TestOverlapIsAveraged(t *testing.T) {
	preds := []Prediction{
		{StartFrame: 0, Matrix: constMatrix(4, 2, 1.0)},
		{StartFrame: 2, Matrix: constMatrix(4, 2, 0.0)},
	}

	out, err := Stitch(preds, 6, 2)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(float32(1.0), out.At(0, 0))
	assert.Equal(float32(0.5), out.At(2, 0))
	assert.Equal(float32(0.5), out.At(3, 0))
	assert.Equal(float32(0.0), out.At(4, 0))
}

func TestStitchIsOrderIndependent(t *testing.T) {
	a := Prediction{StartFrame: 0, Matrix: constMatrix(4, 2, 0.2)}
	b := Prediction{StartFrame: 2, Matrix: constMatrix(4, 2, 0.8)}
	c := Prediction{StartFrame: 4, Matrix: constMatrix(4, 2, 0.4)}

	forward, err := Stitch([]Prediction{a, b, c}, 8, 2)
	assert.NoError(t, err)
	backward, err := Stitch([]Prediction{c, b, a}, 8, 2)
	assert.NoError(t, err)

	assert.Equal(t, forward, backward)
}

func TestMergedPartitionsEqualSequential(t *testing.T) {
	a := Prediction{StartFrame: 0, Matrix: constMatrix(4, 2, 0.2)}
	b := Prediction{StartFrame: 2, Matrix: constMatrix(4, 2, 0.8)}
	c := Prediction{StartFrame: 4, Matrix: constMatrix(4, 2, 0.4)}

	sequential, err := Stitch([]Prediction{a, b, c}, 8, 2)
	assert.NoError(t, err)

	left, _ := NewAccumulator(8, 2)
	right, _ := NewAccumulator(8, 2)
	assert.NoError(t, left.Add(a))
	assert.NoError(t, right.Add(b))
	assert.NoError(t, right.Add(c))
	assert.NoError(t, left.Merge(right))

	assert.Equal(t, sequential, left.Finalize())
}

func TestStitchParallelEqualsStitch(t *testing.T) {
	var preds []Prediction
	for i := 0; i < 17; i++ {
		preds = append(preds, Prediction{
			StartFrame: i * 3,
			// exact binary fractions keep partitioned float sums identical
			Matrix:     constMatrix(6, 3, float32(i%4)*0.25),
		})
	}

	sequential, err := Stitch(preds, 60, 3)
	assert.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 17} {
		parallel, err := StitchParallel(preds, 60, 3, workers)
		assert.NoError(t, err)
		assert.Equal(t, sequential, parallel)
	}
}

func TestAddRejectsMismatchedBins(t *testing.T) {
	acc, _ := NewAccumulator(10, 4)

	err := acc.Add(Prediction{StartFrame: 0, Matrix: constMatrix(4, 5, 0.5)})

	assert.ErrorIs(t, err, model.ErrConfigMismatch)
}

func TestFramesOutsideTimelineAreIgnored(t *testing.T) {
	acc, _ := NewAccumulator(5, 2)
	assert.NoError(t, acc.Add(Prediction{StartFrame: 3, Matrix: constMatrix(4, 2, 0.6)}))

	out := acc.Finalize()

	assert := assert.New(t)
	assert.InDelta(0.6, out.At(3, 0), 1e-6)
	assert.InDelta(0.6, out.At(4, 0), 1e-6)
	assert.Equal(float32(0), out.At(2, 0))
}

func TestAccumulatorRejectsDegenerateShape(t *testing.T) {
	_, err := NewAccumulator(0, 4)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
