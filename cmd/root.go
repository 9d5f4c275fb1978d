package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "partita",
	Short: "Batch tools for reshaping MIDI files into ML datasets",
	Long: `Batch tools for quantizing, transposing, splitting and recombining
multipart MIDI files for machine learning dataset preparation.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
