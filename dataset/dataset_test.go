package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/model"
)

func touch(t *testing.T, path string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, []byte{}, 0666))
}

func TestDiscoverPairs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.wav"))
	touch(t, filepath.Join(dir, "a.mid"))
	touch(t, filepath.Join(dir, "b.wav"))
	touch(t, filepath.Join(dir, "b.midi"))
	touch(t, filepath.Join(dir, "orphan.wav"))
	touch(t, filepath.Join(dir, "loose.mid"))

	pairs := DiscoverPairs(dir, 0)

	assert := assert.New(t)
	assert.Len(pairs, 2)
	assert.Equal("a", pairs[0].TrackID)
	assert.Equal(filepath.Join(dir, "a.mid"), pairs[0].MidiPath)
	assert.Equal("b", pairs[1].TrackID)
	assert.Equal(filepath.Join(dir, "b.midi"), pairs[1].MidiPath)
}

func TestDiscoverPairsHonorsMax(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.wav"))
	touch(t, filepath.Join(dir, "a.mid"))
	touch(t, filepath.Join(dir, "b.wav"))
	touch(t, filepath.Join(dir, "b.mid"))

	pairs := DiscoverPairs(dir, 1)

	assert.Len(t, pairs, 1)
}

func TestProcessTrackRecordsFailureInsteadOfAborting(t *testing.T) {
	dir := t.TempDir()
	pair := model.TrackPair{
		TrackID:   "missing",
		AudioPath: filepath.Join(dir, "missing.wav"),
		MidiPath:  filepath.Join(dir, "missing.mid"),
	}

	result, overviews := ProcessTrack(config.Reference(), pair, Options{OutDir: dir})

	assert := assert.New(t)
	assert.Equal(model.StatusFailed, result.Status)
	assert.NotEmpty(result.Reason)
	assert.Empty(overviews)
}

func TestBatchStatsAggregation(t *testing.T) {
	var stats model.BatchStats
	stats.Add(model.TrackResult{Status: model.StatusOK, WindowsTotal: 4, WindowsWritten: 3})
	stats.Add(model.TrackResult{Status: model.StatusFailed, Reason: "bad file"})
	stats.Add(model.TrackResult{Status: model.StatusSkipped, Reason: "sample rate 44100, want 22050"})

	assert := assert.New(t)
	assert.Equal(3, stats.Tracks)
	assert.Equal(1, stats.Succeeded)
	assert.Equal(1, stats.Failed)
	assert.Equal(1, stats.Skipped)
	assert.Equal(4, stats.WindowsTotal)
	assert.Equal(3, stats.WindowsWritten)
}
