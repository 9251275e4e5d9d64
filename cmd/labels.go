package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/10jackyhu24/Audio2Score/config"
	"github.com/10jackyhu24/Audio2Score/dataset"
	"github.com/10jackyhu24/Audio2Score/model"
	"github.com/10jackyhu24/Audio2Score/util"
)

var (
	labelsOut       string
	labelsHopRatio  float64
	labelsMaxTracks int
	labelsKeepEmpty bool
)

func init() {
	labelsCmd.Flags().StringVar(&labelsOut, "out", "./out", "output directory for record files")
	labelsCmd.Flags().Float64Var(&labelsHopRatio, "hop-ratio", 0.5, "window hop as a fraction of window length")
	labelsCmd.Flags().IntVar(&labelsMaxTracks, "max-tracks", 0, "limit number of tracks (0 = all)")
	labelsCmd.Flags().BoolVar(&labelsKeepEmpty, "keep-empty", false, "also write windows without any note labels")
	rootCmd.AddCommand(labelsCmd)
}

var labelsCmd = &cobra.Command{
	Use:   "labels <dataset-dir>",
	Short: "Creates sparse training labels",
	Long:  `Slices every wav+mid pair under the dataset directory into overlapping windows and writes one sparse annotation record per window.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runLabels(args[0])
	},
}

func runLabels(datasetDir string) {
	cfg := config.Reference()
	cfg.HopRatio = labelsHopRatio
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	util.RecreateDir(labelsOut)
	pairs := dataset.DiscoverPairs(datasetDir, labelsMaxTracks)
	fmt.Printf("Found %v track pairs\n", len(pairs))

	stats := dataset.ProcessAll(cfg, pairs, dataset.Options{
		OutDir:    labelsOut,
		KeepEmpty: labelsKeepEmpty,
	})

	fmt.Printf("Tracks: %v ok, %v skipped, %v failed\n", stats.Succeeded, stats.Skipped, stats.Failed)
	fmt.Printf("Windows: %v total, %v written\n", stats.WindowsTotal, stats.WindowsWritten)
	for _, r := range stats.Results {
		if r.Status != model.StatusOK {
			fmt.Printf("  %v: %v (%v)\n", r.TrackID, r.Status, r.Reason)
		}
	}
}
