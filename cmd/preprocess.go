package cmd

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avollmer/partita/ambitus"
	"github.com/avollmer/partita/combination"
	"github.com/avollmer/partita/config"
	"github.com/avollmer/partita/constants"
	"github.com/avollmer/partita/db"
	"github.com/avollmer/partita/model"
	"github.com/avollmer/partita/score"
	"github.com/avollmer/partita/util"
)

var preprocessOpts = config.Default()
var preprocessConfigPath string

func init() {
	f := preprocessCmd.Flags()
	f.StringVar(&preprocessOpts.TargetFolder, "target-folder", preprocessOpts.TargetFolder,
		"folder path where generated results are stored")
	f.IntVar(&preprocessOpts.VoiceNum, "voice-num", preprocessOpts.VoiceNum,
		"converts to this number of parts")
	f.Float64SliceVar(&preprocessOpts.Distribution, "voice-distribution", preprocessOpts.Distribution,
		"target size of alternative options per voice (0.0-1.0 each, summing to 1.0)")
	f.IntSliceVar(&preprocessOpts.Quantization, "quantization", preprocessOpts.Quantization,
		"quantize grid divisors per quarter note")
	f.Float64Var(&preprocessOpts.PartRatio, "part-ratio", preprocessOpts.PartRatio,
		"note ratio threshold below which parts are removed")
	f.IntVar(&preprocessOpts.IntervalLow, "interval-low", preprocessOpts.IntervalLow,
		"lower C octave of the transpose interval")
	f.IntVar(&preprocessOpts.IntervalHigh, "interval-high", preprocessOpts.IntervalHigh,
		"higher C octave of the transpose interval")
	f.StringVar(&preprocessConfigPath, "config", "",
		"optional YAML file with preprocess defaults")
	rootCmd.AddCommand(preprocessCmd)
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [paths]",
	Short: "Quantizes, regroups and recombines MIDI files",
	Long: `Reduces every input score to a fixed number of voices grouped by
pitch range, then lays out one synthetic section per possible part
combination, concatenated in time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if preprocessConfigPath != "" {
			cfg, err := config.Load(preprocessConfigPath)
			if err != nil {
				return err
			}
			// file values only where the user did not set a flag
			applyConfig(cmd, &preprocessOpts, cfg)
		}
		return preprocess(util.GatherFiles(args), preprocessOpts)
	},
}

func applyConfig(cmd *cobra.Command, opts *config.Preprocess, cfg config.Preprocess) {
	if !cmd.Flags().Changed("target-folder") {
		opts.TargetFolder = cfg.TargetFolder
	}
	if !cmd.Flags().Changed("voice-num") {
		opts.VoiceNum = cfg.VoiceNum
	}
	if !cmd.Flags().Changed("voice-distribution") {
		opts.Distribution = cfg.Distribution
	}
	if !cmd.Flags().Changed("quantization") {
		opts.Quantization = cfg.Quantization
	}
	if !cmd.Flags().Changed("part-ratio") {
		opts.PartRatio = cfg.PartRatio
	}
	if !cmd.Flags().Changed("interval-low") {
		opts.IntervalLow = cfg.IntervalLow
	}
	if !cmd.Flags().Changed("interval-high") {
		opts.IntervalHigh = cfg.IntervalHigh
	}
}

func preprocess(paths []string, opts config.Preprocess) error {
	if opts.IntervalHigh < opts.IntervalLow {
		return errors.New("interval range is smaller than 0")
	}
	var sum float64
	for _, p := range opts.Distribution {
		sum += p
	}
	if rest := 1.0 - sum; rest > 0.001 || rest < 0 {
		return fmt.Errorf("voice distribution sum is %v, not 1.0", sum)
	}
	if len(opts.Distribution) != opts.VoiceNum {
		return errors.New("length of voice distribution does not equal the number of voices")
	}
	if len(paths) == 0 {
		return errors.New("could not find any files with this pattern")
	}
	if err := util.EnsureTargetDir(opts.TargetFolder); err != nil {
		return err
	}

	manifest := model.RunManifest{
		RunID: uuid.New().String(),
		Tool:  "preprocess",
	}

	for i, path := range paths {
		if !util.IsMidiPath(path) {
			log.Warnf("File %q does not look like MIDI, ignoring it", path)
			continue
		}
		log.Infof("Processing %v of %v: %q", i+1, len(paths), path)
		report := preprocessFile(path, opts)
		if report.Skipped {
			log.Warnf("Skipping %q because: %v", path, report.Reason)
		}
		manifest.Files = append(manifest.Files, report)
	}

	attachMetadata(manifest.Files)

	manifestPath := filepath.Join(opts.TargetFolder, "run-"+manifest.RunID+".dat")
	util.CreateBinary(manifestPath, manifest)
	log.Infof("Wrote run manifest to %q", manifestPath)
	return nil
}

func preprocessFile(path string, opts config.Preprocess) model.FileReport {
	report := model.FileReport{Source: path}

	sc, err := score.Load(path)
	if err != nil {
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}
	if sc.NoteCount() > 10000 {
		log.Warnf("%q is a rather large MIDI file and might take some time to process", path)
	}

	score.Quantize(sc, opts.Quantization)
	report.RemovedParts = score.RemoveSparseParts(sc, opts.PartRatio)
	report.Parts = len(sc.Parts)

	groups, err := ambitus.Group(sc.PartRanges(), opts.VoiceNum, opts.Distribution)
	if err != nil {
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}
	report.Groups = groups

	options := make([][]int, opts.VoiceNum)
	for partIndex, group := range groups {
		options[group] = append(options[group], partIndex)
	}
	for g, opt := range options {
		log.Infof("Parts %v in group %v (size = %v)", opt, g, len(opt))
	}

	combos, err := combination.Enumerate(options)
	if err != nil {
		// empty group: cancellation, not a failure of the batch
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}
	report.Combinations = len(combos)
	log.Infof("Found %v possible combinations", len(combos))

	out := layoutCombinations(sc, combos, opts)
	outPath := util.MakeFilePath(path, opts.TargetFolder, "mid", "processed")
	if err := score.Write(out, outPath); err != nil {
		report.Skipped = true
		report.Reason = err.Error()
		return report
	}
	report.Outputs = []string{outPath}
	log.Infof("Saved MIDI file at %q", outPath)
	return report
}

// layoutCombinations builds the augmented score: one section per
// combination, each section holding the chosen part per voice slot,
// concatenated on whole-measure boundaries.
func layoutCombinations(sc *model.Score, combos [][]int, opts config.Preprocess) *model.Score {
	span := math.Ceil(sc.End()/constants.SecondsPerMeasure) * constants.SecondsPerMeasure

	out := &model.Score{}
	for v := 0; v < opts.VoiceNum; v++ {
		out.Parts = append(out.Parts, model.Part{Name: fmt.Sprintf("voice-%v", v+1)})
	}

	low := score.OctavePitch(opts.IntervalLow)
	high := score.OctavePitch(opts.IntervalHigh)

	for ci, combo := range combos {
		offset := float64(ci) * span
		for v, partIndex := range combo {
			for _, ev := range sc.Parts[partIndex].Events {
				ev = ev.Shifted(offset)
				ev.Pitch = uint8(score.FitOctave(int(ev.Pitch), low, high))
				out.Parts[v].Events = append(out.Parts[v].Events, ev)
			}
		}
	}
	return out
}

// attachMetadata enriches reports with catalog metadata when a lookup
// table is configured, batching ten file names per request.
func attachMetadata(reports []model.FileReport) {
	if !db.Enabled() || len(reports) == 0 {
		return
	}

	byBase := make(map[string][]int)
	for i, r := range reports {
		base := filepath.Base(r.Source)
		byBase[base] = append(byBase[base], i)
	}

	names := util.GetKeys(byBase)
	for start := 0; start < len(names); start += 10 {
		batch := names[start:util.Min(start+10, len(names))]
		metadatas, err := db.GetMidiMetadatas(batch)
		if err != nil {
			log.Warnf("Metadata lookup failed: %v", err)
			return
		}
		for name, meta := range metadatas {
			meta := meta
			for _, i := range byBase[name] {
				reports[i].Metadata = &meta
			}
		}
	}
}
