package constants

import "os"

// Defaults for the preprocess pipeline, overridable per flag or config file.
const (
	DefaultTargetFolder = "./generated"
	DefaultVoiceNum     = 5
	DefaultPartRatio    = 0.015
	DefaultIntervalLow  = 3
	DefaultIntervalHigh = 5
	DefaultSplitSec     = 60
)

func DefaultDistribution() []float64 {
	return []float64{0.1, 0.2, 0.3, 0.2, 0.2}
}

func DefaultQuantization() []int {
	return []int{4, 3}
}

// Output files are written on a fixed metric grid; decoding flattens the
// source tempo map into seconds first.
const (
	TicksPerQuarter = 960
	DefaultBPM      = 120
	// 120 BPM, so a quarter lasts half a second.
	SecondsPerQuarter = 0.5
	SecondsPerMeasure = 4 * SecondsPerQuarter
)

func GetMetadataTable() string {
	return os.Getenv("PARTITA_METADATA_TABLE")
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("PARTITA_METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}
