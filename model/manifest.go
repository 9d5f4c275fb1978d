package model

// MidiMetadata is optional catalog information about a source file.
type MidiMetadata struct {
	Artist  string
	Release string
	Title   string
	Year    uint
}

// FileReport is the per-file outcome of one batch tool run. Skipped files
// carry a Reason; processed files carry the pipeline numbers.
type FileReport struct {
	Source       string
	Skipped      bool
	Reason       string
	Parts        int
	RemovedParts []string
	Groups       []int
	Combinations int
	Outputs      []string
	Metadata     *MidiMetadata
}

// RunManifest is everything one tool invocation did, persisted into the
// target folder so the report command can aggregate batches later.
type RunManifest struct {
	RunID string
	Tool  string
	Files []FileReport
}
