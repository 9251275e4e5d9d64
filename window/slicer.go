package window

import (
	"fmt"

	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/model"
)

// Slicer cuts one track's audio and note timeline into fixed-length
// overlapping windows. It always emits windows with their note list,
// empty or not; discarding label-free windows is the caller's policy.
type Slicer struct {
	sampleRate    int
	windowSamples int
	hopSamples    int
	windowLen     float64
}

func NewSlicer(cfg config.Config) (Slicer, error) {
	if err := cfg.Validate(); err != nil {
		return Slicer{}, err
	}
	if cfg.HopSamples() <= 0 {
		return Slicer{}, fmt.Errorf("%w: hop ratio %v rounds to a zero-sample hop", model.ErrInvalidInput, cfg.HopRatio)
	}
	return Slicer{
		sampleRate:    cfg.SampleRate,
		windowSamples: cfg.EffectiveWindowSamples(),
		hopSamples:    cfg.HopSamples(),
		windowLen:     cfg.WindowLengthSec,
	}, nil
}

func (s Slicer) WindowSamples() int { return s.windowSamples }
func (s Slicer) HopSamples() int    { return s.hopSamples }

// Slice enumerates windows at start samples 0, hop, 2*hop, ... while a
// full window still fits. A track shorter than one window yields a
// single zero-padded window; only zero-length input is an error.
func (s Slicer) Slice(audio []float32, notes []model.NoteEvent) ([]model.Window, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: no audio samples", model.ErrInvalidInput)
	}

	var windows []model.Window
	for start := 0; start+s.windowSamples <= len(audio); start += s.hopSamples {
		windows = append(windows, s.makeWindow(len(windows), start, audio, notes))
	}
	if len(windows) == 0 {
		// guaranteed degenerate window, padded to full length
		windows = append(windows, s.makeWindow(0, 0, audio, notes))
	}
	return windows, nil
}

func (s Slicer) makeWindow(index, startSample int, audio []float32, notes []model.NoteEvent) model.Window {
	endSample := startSample + s.windowSamples
	startTime := float64(startSample) / float64(s.sampleRate)
	endTime := float64(endSample) / float64(s.sampleRate)

	buf := make([]float32, s.windowSamples)
	copy(buf, audio[startSample:min(endSample, len(audio))])

	return model.Window{
		Index:       index,
		StartSample: startSample,
		EndSample:   endSample,
		StartTime:   startTime,
		EndTime:     endTime,
		Audio:       buf,
		Notes:       s.cropNotes(notes, startTime, endTime),
	}
}

// cropNotes keeps every note overlapping [startTime, endTime] and
// re-bases it to window-local time, clipped to [0, windowLen]. Notes
// whose clipped duration collapses to zero are dropped silently.
func (s Slicer) cropNotes(notes []model.NoteEvent, startTime, endTime float64) []model.NoteEvent {
	var cropped []model.NoteEvent
	for _, n := range notes {
		if n.End < startTime || n.Start > endTime {
			continue
		}
		local := model.NoteEvent{
			Pitch:    n.Pitch,
			Start:    clip(n.Start-startTime, 0, s.windowLen),
			End:      clip(n.End-startTime, 0, s.windowLen),
			Velocity: n.Velocity,
		}
		if local.Duration() <= 0 {
			continue
		}
		cropped = append(cropped, local)
	}
	return cropped
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
