package config

import (
	"fmt"
	"math"

	"github.com/10jackyhu24/Audio2Score/model"
)

// Config carries every tunable the annotation pipeline consumes. All
// components take it (or values derived from it) explicitly; nothing in
// this repo reads a package-level default.
type Config struct {
	SampleRate      int
	WindowLengthSec float64

	// WindowSamples overrides round(WindowLengthSec*SampleRate) when
	// non-zero. The reference configuration needs this: its windows are
	// 43844 samples, not the 44100 the formula would give.
	WindowSamples int

	HopRatio            float64
	FramesPerSecond     float64
	ActivationThreshold float32
	MinNoteDuration     float64

	MinPitch uint8
	MaxPitch uint8

	NotesBinsPerSemitone    int
	ContoursBinsPerSemitone int
}

// Reference returns the configuration the training data was produced
// with: 22050 Hz audio, 2 s windows of 43844 samples with 50% overlap,
// 86 annotation frames per second, piano range A0..C8.
func Reference() Config {
	return Config{
		SampleRate:              22050,
		WindowLengthSec:         2.0,
		WindowSamples:           43844,
		HopRatio:                0.5,
		FramesPerSecond:         86.0,
		ActivationThreshold:     0.3,
		MinNoteDuration:         0.058,
		MinPitch:                21,
		MaxPitch:                108,
		NotesBinsPerSemitone:    1,
		ContoursBinsPerSemitone: 3,
	}
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", model.ErrInvalidInput, c.SampleRate)
	}
	if c.WindowLengthSec <= 0 {
		return fmt.Errorf("%w: window length %v", model.ErrInvalidInput, c.WindowLengthSec)
	}
	if c.HopRatio <= 0 || c.HopRatio > 1 {
		return fmt.Errorf("%w: hop ratio %v not in (0,1]", model.ErrInvalidInput, c.HopRatio)
	}
	if c.FramesPerSecond <= 0 {
		return fmt.Errorf("%w: frames per second %v", model.ErrInvalidInput, c.FramesPerSecond)
	}
	if c.MinPitch > c.MaxPitch {
		return fmt.Errorf("%w: pitch range [%v,%v]", model.ErrInvalidInput, c.MinPitch, c.MaxPitch)
	}
	if c.NotesBinsPerSemitone <= 0 || c.ContoursBinsPerSemitone <= 0 {
		return fmt.Errorf("%w: bins per semitone", model.ErrInvalidInput)
	}
	return nil
}

// EffectiveWindowSamples is WindowSamples when set, round(W*Fs) otherwise.
func (c Config) EffectiveWindowSamples() int {
	if c.WindowSamples > 0 {
		return c.WindowSamples
	}
	return int(math.Round(c.WindowLengthSec * float64(c.SampleRate)))
}

func (c Config) HopSamples() int {
	return int(math.Round(float64(c.EffectiveWindowSamples()) * c.HopRatio))
}

// AnnotFrames is the number of annotation frames covering one window.
func (c Config) AnnotFrames() int {
	return int(math.Round(c.WindowLengthSec * c.FramesPerSecond))
}

func (c Config) NumSemitones() int {
	return int(c.MaxPitch) - int(c.MinPitch) + 1
}

func (c Config) NotesBins() int {
	return c.NumSemitones() * c.NotesBinsPerSemitone
}

func (c Config) ContourBins() int {
	return c.NumSemitones() * c.ContoursBinsPerSemitone
}
