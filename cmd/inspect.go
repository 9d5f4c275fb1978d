package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avollmer/partita/score"
	"github.com/avollmer/partita/voice"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Inspects a MIDI file",
	Long:  `Prints per-part statistics for one MIDI file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	sc, err := score.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("parts: %v\n", len(sc.Parts))
	fmt.Printf("notes: %v\n", sc.NoteCount())
	fmt.Printf("duration: %.2f sec\n", sc.End())
	fmt.Printf("signature changes: %v time, %v key\n",
		len(sc.TimeSignatures), len(sc.KeySignatures))

	for _, pr := range sc.PartRanges() {
		part := sc.Parts[pr.Part]
		res := voice.Partition(part.Events)
		fmt.Printf("part %q: %v events, range %v-%v, %v voice(s)\n",
			part.Name, len(part.Events), pr.Low, pr.High, len(res.Voices))
	}
	return nil
}
