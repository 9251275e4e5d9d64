package timebase

import (
	"fmt"
	"math"

	"github.com/10jackyhu24/Audio2Score/model"
)

// Timebase converts between annotation frame indices and seconds. It is
// the shared clock of the pipeline: every component in one run must be
// handed the same fps.
type Timebase struct {
	FPS float64
}

func New(fps float64) (Timebase, error) {
	if fps <= 0 {
		return Timebase{}, fmt.Errorf("%w: fps %v", model.ErrInvalidInput, fps)
	}
	return Timebase{FPS: fps}, nil
}

func (t Timebase) FrameToTime(frame int) float64 {
	return float64(frame) / t.FPS
}

// TimeToFrame floors, so a time exactly on a frame boundary maps to that
// frame.
func (t Timebase) TimeToFrame(seconds float64) int {
	return int(math.Floor(seconds * t.FPS))
}

// Check fails with ErrConfigMismatch when two pipeline stages were
// configured with different clocks.
func (t Timebase) Check(other Timebase) error {
	if t.FPS != other.FPS {
		return fmt.Errorf("%w: fps %v vs %v", model.ErrConfigMismatch, t.FPS, other.FPS)
	}
	return nil
}
