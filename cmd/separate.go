package cmd

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avollmer/partita/constants"
	"github.com/avollmer/partita/model"
	"github.com/avollmer/partita/score"
	"github.com/avollmer/partita/util"
	"github.com/avollmer/partita/voice"
)

var separateTargetFolder string

func init() {
	separateCmd.Flags().StringVar(&separateTargetFolder, "target-folder",
		constants.DefaultTargetFolder, "folder path where generated results are stored")
	rootCmd.AddCommand(separateCmd)
}

var separateCmd = &cobra.Command{
	Use:   "separate [paths]",
	Short: "Separates overlapping notes into single voices",
	Long: `Partitions every part's notes into the smallest manageable number of
non-overlapping voices and writes one track per voice.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return separate(util.GatherFiles(args), separateTargetFolder)
	},
}

func separate(paths []string, targetFolder string) error {
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

		out := &model.Score{
			TimeSignatures: sc.TimeSignatures,
			KeySignatures:  sc.KeySignatures,
		}
		for _, part := range sc.Parts {
			if len(part.Events) == 0 {
				continue
			}
			res := voice.Partition(part.Events)
			log.Infof("Part %q into %v voice(s), %v split and %v merge relocations",
				part.Name, len(res.Voices), res.SplitMoves, res.MergeMoves)
			for vi, v := range res.Voices {
				out.Parts = append(out.Parts, model.Part{
					Name:    fmt.Sprintf("%v-v%v", part.Name, vi+1),
					Channel: part.Channel,
					Program: part.Program,
					Events:  v.Events,
				})
			}
		}

		outPath := util.MakeFilePath(path, targetFolder, "mid", "separated")
		if err := score.Write(out, outPath); err != nil {
			log.Warnf("Skipping %q because: %v", path, err)
			continue
		}
		log.Infof("Saved MIDI file at %q", outPath)
	}
	return nil
}
