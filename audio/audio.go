// Package audio adapts WAV files into the mono float32 PCM buffers the
// slicing pipeline consumes. It is deliberately thin: decoding happens
// once up front and the numeric core never touches I/O.
package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/10jackyhu24/Audio2Score/model"
)

// ReadWavMono decodes a PCM WAV file to mono float32 samples in [-1,1]
// and reports the file's sample rate. Multi-channel input is averaged
// down to mono.
func ReadWavMono(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %v is not a valid wav file", model.ErrInvalidInput, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding wav: %w", err)
	}

	samples, err := toMonoFloat32(buf, int(dec.BitDepth))
	if err != nil {
		return nil, 0, err
	}
	return samples, buf.Format.SampleRate, nil
}

func toMonoFloat32(buf *gaudio.IntBuffer, bitDepth int) ([]float32, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: empty pcm buffer", model.ErrInvalidInput)
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %v channels", model.ErrInvalidInput, channels)
	}
	if bitDepth <= 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: bit depth %v", model.ErrInvalidInput, bitDepth)
	}

	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	frames := len(buf.Data) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var acc float64
		for c := 0; c < channels; c++ {
			acc += float64(buf.Data[i*channels+c]) * scale
		}
		out[i] = float32(acc / float64(channels))
	}
	return out, nil
}
