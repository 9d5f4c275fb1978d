package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/avollmer/partita/constants"
	"github.com/avollmer/partita/model"
	"github.com/avollmer/partita/util"
)

var reportTargetFolder string

func init() {
	reportCmd.Flags().StringVar(&reportTargetFolder, "target-folder",
		constants.DefaultTargetFolder, "folder path holding run manifests")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregates run manifests",
	Long:  `Summarizes every preprocess run manifest found in the target folder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(reportTargetFolder)
	},
}

var manifestNameRe = regexp.MustCompile(
	`^run-[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}\.dat$`)

type runReport struct {
	numRuns         int64
	numFiles        int64
	numSkipped      int64
	numParts        []int64
	numCombinations []int64
}

func analyzeManifests(targetFolder string) (runReport, error) {
	var rep runReport

	files, err := os.ReadDir(targetFolder)
	if err != nil {
		return rep, fmt.Errorf("could not read target folder: %w", err)
	}

	for _, file := range files {
		if !manifestNameRe.MatchString(file.Name()) {
			continue
		}
		manifest := util.ReadBinaryOrPanic[model.RunManifest](
			filepath.Join(targetFolder, file.Name()))
		rep.numRuns++
		for _, fr := range manifest.Files {
			rep.numFiles++
			if fr.Skipped {
				rep.numSkipped++
				continue
			}
			rep.numParts = append(rep.numParts, int64(fr.Parts))
			rep.numCombinations = append(rep.numCombinations, int64(fr.Combinations))
		}
	}
	return rep, nil
}

func report(targetFolder string) error {
	rep, err := analyzeManifests(targetFolder)
	if err != nil {
		return err
	}

	fmt.Printf("runs: %v\n", rep.numRuns)
	fmt.Printf("files: %v\n", rep.numFiles)
	fmt.Printf("skipped: %v\n", rep.numSkipped)
	fmt.Printf("parts kept: %v\n", util.Sum(rep.numParts))
	fmt.Printf("combinations generated: %v\n", util.Sum(rep.numCombinations))
	if n := rep.numFiles - rep.numSkipped; n > 0 {
		fmt.Printf("combinations per file: %.1f\n",
			float64(util.Sum(rep.numCombinations))/float64(n))
	}
	return nil
}
