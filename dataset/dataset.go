// Package dataset runs the label-generation batch: pairs of (wav, mid)
// files are sliced into overlapping windows, rasterized into sparse
// annotation records and persisted one file per window. A failing track
// is skipped with its reason recorded; the batch never aborts.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/10jackyhu24/Audio2Score/audio"
	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/midi"
	"github.com/10jackyhu24/Audio2Score/model"
	"github.com/10jackyhu24/Audio2Score/record"
	"github.com/10jackyhu24/Audio2Score/roll"
	"github.com/10jackyhu24/Audio2Score/timebase"
	"github.com/10jackyhu24/Audio2Score/util"
	"github.com/10jackyhu24/Audio2Score/window"
)

const ManifestName = "allRecords.dat"

// DiscoverPairs finds every wav under root that has a sibling .mid or
// .midi with the same base name. maxNum limits the result (0 means
// unlimited).
func DiscoverPairs(root string, maxNum int) []model.TrackPair {
	var pairs []model.TrackPair
	for _, wavPath := range util.GatherPaths(root, []string{".wav"}, 0) {
		base := strings.TrimSuffix(wavPath, ".wav")
		var midiPath string
		for _, ext := range []string{".mid", ".midi"} {
			if _, err := os.Stat(base + ext); err == nil {
				midiPath = base + ext
				break
			}
		}
		if midiPath == "" {
			continue
		}
		pairs = append(pairs, model.TrackPair{
			TrackID:   filepath.Base(base),
			AudioPath: wavPath,
			MidiPath:  midiPath,
		})
		if maxNum > 0 && len(pairs) >= maxNum {
			break
		}
	}
	return pairs
}

// Options tune the batch run. KeepEmpty retains windows whose notes
// channel came out empty; the default drops them, matching the
// training-data producer.
type Options struct {
	OutDir    string
	KeepEmpty bool
}

// ProcessTrack slices one track and writes one record file per window.
// Every failure mode turns into a TrackResult, never an error bubbling
// out of the batch.
func ProcessTrack(cfg config.Config, pair model.TrackPair, opts Options) (model.TrackResult, []model.RecordOverview) {
	res := model.TrackResult{TrackID: pair.TrackID, Status: model.StatusFailed}

	samples, sampleRate, err := audio.ReadWavMono(pair.AudioPath)
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}
	if sampleRate != cfg.SampleRate {
		res.Status = model.StatusSkipped
		res.Reason = fmt.Sprintf("sample rate %v, want %v", sampleRate, cfg.SampleRate)
		return res, nil
	}

	parsed, err := midi.ReadMidiFile(pair.MidiPath)
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}
	notes := midi.NoteEvents(parsed, cfg.MinPitch, cfg.MaxPitch)

	slicer, err := window.NewSlicer(cfg)
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}
	windows, err := slicer.Slice(samples, notes)
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}
	res.WindowsTotal = len(windows)

	tb := timebase.Timebase{FPS: cfg.FramesPerSecond}
	var overviews []model.RecordOverview
	for _, w := range windows {
		labels := roll.LabelsFromNotes(w.Notes, cfg)
		if labels.Empty() {
			if !opts.KeepEmpty {
				continue
			}
		} else {
			res.WindowsWithNotes++
		}

		overview := model.RecordOverview{
			Filename:    uuid.New().String() + ".rec",
			TrackID:     pair.TrackID,
			WindowIndex: w.Index,
			StartFrame:  int64(tb.TimeToFrame(w.StartTime)),
			NumNotes:    len(w.Notes),
		}
		h := record.Header{
			FileID:      fmt.Sprintf("%v_window_%04d", pair.TrackID, w.Index),
			Source:      "maestro",
			TrackID:     pair.TrackID,
			WindowIndex: w.Index,
			StartFrame:  overview.StartFrame,
		}
		if err := record.Write(filepath.Join(opts.OutDir, overview.Filename), h, labels); err != nil {
			res.Reason = err.Error()
			return res, nil
		}
		overviews = append(overviews, overview)
		res.WindowsWritten++
	}

	res.Status = model.StatusOK
	res.Reason = ""
	return res, overviews
}

// ProcessAll runs every pair, writes the gob manifest of all produced
// records and returns aggregated statistics.
func ProcessAll(cfg config.Config, pairs []model.TrackPair, opts Options) model.BatchStats {
	var stats model.BatchStats
	var allOverviews []model.RecordOverview

	for i, pair := range pairs {
		fmt.Printf("Processing %v of %v tracks\n", i+1, len(pairs))
		result, overviews := ProcessTrack(cfg, pair, opts)
		if result.Status != model.StatusOK {
			fmt.Printf("Skipping %v because: %v\n", pair.TrackID, result.Reason)
		}
		stats.Add(result)
		allOverviews = append(allOverviews, overviews...)
	}

	util.CreateBinary(filepath.Join(opts.OutDir, ManifestName), allOverviews)
	return stats
}
