package cmd

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avollmer/partita/constants"
	"github.com/avollmer/partita/score"
	"github.com/avollmer/partita/util"
)

var (
	splitTargetFolder string
	splitDuration     int
)

func init() {
	splitCmd.Flags().StringVar(&splitTargetFolder, "target-folder",
		constants.DefaultTargetFolder, "folder path where generated results are stored")
	splitCmd.Flags().IntVar(&splitDuration, "duration",
		constants.DefaultSplitSec, "duration of every slice in seconds")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split [paths]",
	Short: "Splits MIDI files into shorter sequences",
	Long:  `Breaks every input file into consecutive slices of a fixed duration.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if splitDuration < 1 {
			return fmt.Errorf("slice duration %v is not positive", splitDuration)
		}
		return split(util.GatherFiles(args), splitTargetFolder, splitDuration)
	},
}

func split(paths []string, targetFolder string, duration int) error {
	if len(paths) == 0 {
		return errors.New("could not find any files with this pattern")
	}
	if err := util.EnsureTargetDir(targetFolder); err != nil {
		return err
	}

	for i, path := range paths {
		if !util.IsMidiPath(path) {
			log.Warnf("File %q does not look like MIDI, ignoring it", path)
			continue
		}
		log.Infof("Processing %v of %v: %q", i+1, len(paths), path)

		sc, err := score.Load(path)
		if err != nil {
			log.Warnf("Skipping %q because: %v", path, err)
			continue
		}
		log.Infof("Score with %v parts, %v signature changes, %v key changes and duration of %.1f sec",
			len(sc.Parts), len(sc.TimeSignatures), len(sc.KeySignatures), sc.End())

		splits := score.SplitByDuration(sc, duration)
		for si, splitScore := range splits {
			outPath := util.MakeFilePath(path, targetFolder, "mid",
				fmt.Sprintf("split-%v", si+1))
			if err := score.Write(splitScore, outPath); err != nil {
				log.Warnf("Could not write %q because: %v", outPath, err)
				continue
			}
			log.Infof("Saved MIDI file at %q (%v notes)", outPath, splitScore.NoteCount())
		}
	}
	return nil
}
