package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/midi"
	"github.com/10jackyhu24/Audio2Score/record"
	"github.com/10jackyhu24/Audio2Score/roll"
	"github.com/10jackyhu24/Audio2Score/segment"
	"github.com/10jackyhu24/Audio2Score/stitch"
	"github.com/10jackyhu24/Audio2Score/util"
)

var (
	transcribeThreshold   float64
	transcribeMinDuration float64
	transcribeFPS         float64
	transcribeBPM         float64
	transcribeWorkers     int
)

func init() {
	transcribeCmd.Flags().Float64Var(&transcribeThreshold, "threshold", 0.3, "note activation threshold")
	transcribeCmd.Flags().Float64Var(&transcribeMinDuration, "min-duration", 0.058, "minimum note duration in seconds")
	transcribeCmd.Flags().Float64Var(&transcribeFPS, "fps", 86.0, "annotation frames per second")
	transcribeCmd.Flags().Float64Var(&transcribeBPM, "bpm", 120.0, "tempo of the written midi file")
	transcribeCmd.Flags().IntVar(&transcribeWorkers, "workers", 0, "stitching workers (0 = NumCPU)")
	rootCmd.AddCommand(transcribeCmd)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <records-dir> <out.mid>",
	Short: "Transcribes model output records to midi",
	Long:  `Stitches per-window model activation records back into one continuous matrix, segments it into notes and writes a midi file.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		transcribe(args[0], args[1])
	},
}

func transcribe(recordsDir, outPath string) {
	paths := util.GatherPaths(recordsDir, []string{".rec"}, 0)
	if len(paths) == 0 {
		panic("No record files under: " + recordsDir)
	}

	var preds []stitch.Prediction
	var totalFrames, bins int
	for _, path := range paths {
		h, labels, err := record.Read(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", filepath.Base(path), err)
			continue
		}
		dense, dropped, err := roll.DecodeRecord(labels.Notes)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", filepath.Base(path), err)
			continue
		}
		if dropped > 0 {
			fmt.Printf("Dropped %v out-of-range entries in %v\n", dropped, filepath.Base(path))
		}
		if bins == 0 {
			bins = dense.Bins
		}
		preds = append(preds, stitch.Prediction{StartFrame: int(h.StartFrame), Matrix: dense})
		if end := int(h.StartFrame) + dense.Frames; end > totalFrames {
			totalFrames = end
		}
	}
	if len(preds) == 0 {
		panic("No readable record files under: " + recordsDir)
	}

	stitched, err := stitch.StitchParallel(preds, totalFrames, bins, transcribeWorkers)
	if err != nil {
		panic("Could not stitch records: " + err.Error())
	}

	cfg := config.Reference()
	cfg.FramesPerSecond = transcribeFPS
	cfg.ActivationThreshold = float32(transcribeThreshold)
	cfg.MinNoteDuration = transcribeMinDuration

	seg, err := segment.NewSegmenter(cfg)
	if err != nil {
		panic("Bad segmenter config: " + err.Error())
	}
	notes, err := seg.Segment(stitched)
	if err != nil {
		panic("Could not segment activation matrix: " + err.Error())
	}
	fmt.Printf("Segmented %v notes from %v windows (%v frames)\n", len(notes), len(preds), totalFrames)

	if err := midi.WriteMidiFile(notes, transcribeBPM, outPath); err != nil {
		panic("Could not write midi: " + err.Error())
	}
	fmt.Printf("Wrote %v\n", outPath)
}
