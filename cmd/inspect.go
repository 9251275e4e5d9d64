package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/10jackyhu24/Audio2Score/record"
	"github.com/10jackyhu24/Audio2Score/roll"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <record-file>",
	Short: "Inspects a record file",
	Long:  `Inspects a record file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	h, labels, err := record.Read(path)
	if err != nil {
		panic("Could not read record: " + err.Error())
	}

	fmt.Printf("fileId: %v\n", h.FileID)
	fmt.Printf("source: %v\n", h.Source)
	fmt.Printf("track: %v window: %v startFrame: %v\n", h.TrackID, h.WindowIndex, h.StartFrame)
	for _, ch := range []roll.Record{labels.Notes, labels.Onsets, labels.Contours} {
		fmt.Printf("%v: shape (%v,%v), %v entries\n", ch.Kind, ch.Frames, ch.Bins, len(ch.Entries))
		for i, e := range ch.Entries {
			if i >= 5 {
				fmt.Printf("  ...\n")
				break
			}
			fmt.Printf("  frame %v bin %v value %v\n", e.Frame, e.Bin, e.Value)
		}
	}
}
