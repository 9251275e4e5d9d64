package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "audio2score",
	Short: "Audio-to-symbolic annotation tooling",
	Long:  `Tools for cutting audio+MIDI pairs into sparse training labels and for turning model activation output back into MIDI.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
