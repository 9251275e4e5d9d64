package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/10jackyhu24/Audio2Score/record"
	"github.com/10jackyhu24/Audio2Score/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <records-dir>",
	Short: "Creates a report over a records directory",
	Long:  `Creates a report over a records directory`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		report(args[0])
	},
}

type recordsReport struct {
	numFiles   int64
	numBytes   int64
	numTracks  int
	numEntries map[string]int64
}

func analyzeRecords(dir string) recordsReport {
	rep := recordsReport{numEntries: make(map[string]int64)}
	tracks := make(map[string]bool)

	for _, path := range util.GatherPaths(dir, []string{".rec"}, 0) {
		h, err := record.ReadHeader(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", filepath.Base(path), err)
			continue
		}
		rep.numFiles++
		if stats, err := os.Stat(path); err == nil {
			rep.numBytes += stats.Size()
		}
		tracks[h.TrackID] = true
		rep.numEntries["notes"] += int64(h.Notes.Count)
		rep.numEntries["onsets"] += int64(h.Onsets.Count)
		rep.numEntries["contours"] += int64(h.Contours.Count)
	}
	rep.numTracks = len(tracks)
	return rep
}

func report(dir string) {
	rep := analyzeRecords(dir)
	fmt.Printf("numFiles: %v\n", rep.numFiles)
	fmt.Printf("numTracks: %v\n", rep.numTracks)
	fmt.Printf("numBytes: %v\n", rep.numBytes)
	kinds := util.GetKeys(rep.numEntries)
	sort.Strings(kinds)
	counts := make([]int64, 0, len(kinds))
	for _, kind := range kinds {
		fmt.Printf("%v entries: %v\n", kind, rep.numEntries[kind])
		counts = append(counts, rep.numEntries[kind])
	}
	fmt.Printf("total entries: %v\n", util.Sum(counts))
}
