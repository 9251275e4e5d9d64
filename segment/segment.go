package segment

import (
	"fmt"
	"math"
	"sort"

	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/model"
	"github.com/10jackyhu24/Audio2Score/roll"
	"github.com/10jackyhu24/Audio2Score/timebase"
)

// Segmenter turns a continuous activation matrix into discrete note
// events with a per-pitch onset/offset state machine. Single forward
// pass, no backtracking.
type Segmenter struct {
	tb          timebase.Timebase
	threshold   float32
	minDuration float64
	minPitch    uint8
	numPitches  int
}

// activeNote is the transient scan state of one sounding pitch.
type activeNote struct {
	startFrame    int
	maxActivation float32
}

func NewSegmenter(cfg config.Config) (Segmenter, error) {
	tb, err := timebase.New(cfg.FramesPerSecond)
	if err != nil {
		return Segmenter{}, err
	}
	if cfg.ActivationThreshold <= 0 || cfg.ActivationThreshold >= 1 {
		return Segmenter{}, fmt.Errorf("%w: threshold %v not in (0,1)", model.ErrInvalidInput, cfg.ActivationThreshold)
	}
	if cfg.MinNoteDuration < 0 {
		return Segmenter{}, fmt.Errorf("%w: min note duration %v", model.ErrInvalidInput, cfg.MinNoteDuration)
	}
	return Segmenter{
		tb:          tb,
		threshold:   cfg.ActivationThreshold,
		minDuration: cfg.MinNoteDuration,
		minPitch:    cfg.MinPitch,
		numPitches:  cfg.NumSemitones(),
	}, nil
}

// Segment scans each pitch column independently. A column going above
// the threshold opens a note; the first frame at or below it closes the
// note, which is kept only when it lasted at least the minimum duration.
// Sub-threshold-duration activity is discarded outright, never merged
// into a later note. Columns still active after the last frame are
// closed at the end of the matrix under the same duration filter.
// The matrix must carry exactly one bin per pitch in the configured
// range; a contour-shaped matrix is a mismatch, not a wider piano.
func (s Segmenter) Segment(activation roll.DenseMatrix) ([]model.NoteEvent, error) {
	if activation.Bins != s.numPitches {
		return nil, fmt.Errorf("%w: %v bins for a %v-pitch range", model.ErrConfigMismatch, activation.Bins, s.numPitches)
	}

	var notes []model.NoteEvent
	for bin := 0; bin < activation.Bins; bin++ {
		pitch := s.minPitch + uint8(bin)
		var active *activeNote
		for f := 0; f < activation.Frames; f++ {
			a := activation.At(f, bin)
			if active == nil {
				if a > s.threshold {
					active = &activeNote{startFrame: f, maxActivation: a}
				}
				continue
			}
			if a > s.threshold {
				if a > active.maxActivation {
					active.maxActivation = a
				}
				continue
			}
			if n, ok := s.close(pitch, *active, f); ok {
				notes = append(notes, n)
			}
			active = nil
		}
		if active != nil {
			if n, ok := s.close(pitch, *active, activation.Frames); ok {
				notes = append(notes, n)
			}
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].Pitch < notes[j].Pitch
	})
	return notes, nil
}

func (s Segmenter) close(pitch uint8, a activeNote, endFrame int) (model.NoteEvent, bool) {
	duration := s.tb.FrameToTime(endFrame - a.startFrame)
	if duration < s.minDuration {
		return model.NoteEvent{}, false
	}
	return model.NoteEvent{
		Pitch:    pitch,
		Start:    s.tb.FrameToTime(a.startFrame),
		End:      s.tb.FrameToTime(endFrame),
		Velocity: Velocity(a.maxActivation),
	}, true
}

// Velocity maps peak activation to a MIDI velocity:
// clamp(round(a*100+27), 30, 127).
func Velocity(activation float32) uint8 {
	v := int(math.Round(float64(activation)*100 + 27))
	if v < 30 {
		v = 30
	}
	if v > 127 {
		v = 127
	}
	return uint8(v)
}
