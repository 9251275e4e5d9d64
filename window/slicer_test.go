package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/model"
)

func newTestSlicer(t *testing.T) Slicer {
	s, err := NewSlicer(config.Reference())
	assert.NoError(t, err)
	return s
}

func TestWindowEnumeration(t *testing.T) {
	s := newTestSlicer(t)
	audio := make([]float32, 110250) // 5 s at 22050 Hz

	windows, err := s.Slice(audio, nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(21922, s.HopSamples())

	var starts []int
	for _, w := range windows {
		starts = append(starts, w.StartSample)
		assert.Len(w.Audio, 43844)
		assert.Equal(w.StartSample+43844, w.EndSample)
	}
	assert.Equal([]int{0, 21922, 43844, 65766}, starts)
	assert.InDelta(21922.0/22050.0, windows[1].StartTime, 1e-9)
}

func TestShortAudioYieldsOnePaddedWindow(t *testing.T) {
	s := newTestSlicer(t)
	audio := make([]float32, 1000)
	for i := range audio {
		audio[i] = 0.5
	}

	windows, err := s.Slice(audio, nil)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(windows, 1)
	assert.Len(windows[0].Audio, 43844)
	assert.Equal(float32(0.5), windows[0].Audio[999])
	for _, v := range windows[0].Audio[1000:] {
		assert.Equal(float32(0), v)
	}
}

func TestZeroSampleHopIsRejected(t *testing.T) {
	// a tiny but in-range hop ratio rounds to 0 samples, which could
	// never advance the window loop
	cfg := config.Reference()
	cfg.HopRatio = 0.00001

	_, err := NewSlicer(cfg)

	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestEmptyAudioIsAnError(t *testing.T) {
	s := newTestSlicer(t)

	_, err := s.Slice(nil, nil)

	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestNoteCropping(t *testing.T) {
	s := newTestSlicer(t)
	audio := make([]float32, 110250)
	notes := []model.NoteEvent{
		// spans the boundary of windows 0 and 1
		{Pitch: 60, Start: 1.5, End: 2.5, Velocity: 100},
		// entirely before window 2
		{Pitch: 64, Start: 0.1, End: 0.2, Velocity: 100},
	}

	windows, err := s.Slice(audio, notes)

	assert := assert.New(t)
	assert.NoError(err)

	w0 := windows[0] // covers 0 .. ~1.988 s
	assert.Len(w0.Notes, 2)
	assert.Equal(uint8(60), w0.Notes[0].Pitch)
	assert.InDelta(1.5, w0.Notes[0].Start, 1e-9)
	// clipped to the 2.0 s window length even though the note runs to 2.5 s
	assert.InDelta(2.0, w0.Notes[0].End, 1e-9)

	w1 := windows[1] // covers ~0.994 .. ~2.982 s
	assert.Len(w1.Notes, 1)
	assert.Equal(uint8(60), w1.Notes[0].Pitch)
	assert.InDelta(1.5-w1.StartTime, w1.Notes[0].Start, 1e-9)
	assert.InDelta(2.5-w1.StartTime, w1.Notes[0].End, 1e-9)

	w3 := windows[3] // covers ~2.982 .. ~4.971 s, nothing left
	assert.Empty(w3.Notes)
}

func TestZeroDurationNotesAreDropped(t *testing.T) {
	s := newTestSlicer(t)
	audio := make([]float32, 110250)
	// ends exactly at window 1's start time, so its clipped duration is 0
	hopTime := 21922.0 / 22050.0
	notes := []model.NoteEvent{{Pitch: 60, Start: 0.1, End: hopTime, Velocity: 100}}

	windows, err := s.Slice(audio, notes)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(windows[0].Notes, 1)
	assert.Empty(windows[1].Notes)
}

func TestEmptyWindowsAreStillEmitted(t *testing.T) {
	s := newTestSlicer(t)
	audio := make([]float32, 110250)

	windows, err := s.Slice(audio, []model.NoteEvent{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(windows, 4)
	for _, w := range windows {
		assert.Empty(w.Notes)
	}
}
